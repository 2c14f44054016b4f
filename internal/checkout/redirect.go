package checkout

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SuccessPath is the page a completed checkout lands on.
const SuccessPath = "/order-success"

// MobileRedirectDelay lets cart-clearing settle before navigating on mobile browsers.
const MobileRedirectDelay = 500 * time.Millisecond

var mobileUA = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini|mobile`)

// SuccessURL builds the success page URL. orderID must be the persisted order
// id, never the gateway's order id.
func SuccessURL(paymentID, orderID string, amountMinor int64, guest bool) string {
	var b strings.Builder
	b.WriteString(SuccessPath)
	b.WriteString("?payment_id=" + url.QueryEscape(paymentID))
	b.WriteString("&order_id=" + url.QueryEscape(orderID))
	b.WriteString("&amount=" + strconv.FormatInt(amountMinor, 10))
	if guest {
		b.WriteString("&guest=true")
	}
	return b.String()
}

func RedirectDelay(userAgent string) time.Duration {
	if mobileUA.MatchString(userAgent) {
		return MobileRedirectDelay
	}
	return 0
}

// onSuccessPage reports whether path/query describe the success page.
func onSuccessPage(path, rawQuery string) bool {
	if strings.HasPrefix(path, SuccessPath) {
		return true
	}
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return false
	}
	return q.Get("payment_id") != "" && q.Get("order_id") != ""
}
