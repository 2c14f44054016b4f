package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{
		Email:         "asha@example.com",
		FirstName:     "Asha",
		LastName:      "Rao",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		City:          "New Delhi",
		State:         "Delhi",
		Pincode:       "110001",
		AcceptTerms:   true,
		AcceptPrivacy: true,
	}
}

func TestFormValidate(t *testing.T) {
	assert.Empty(t, validForm().Validate())

	errs := Form{}.Validate()
	for _, field := range []string{"email", "firstName", "lastName", "phone", "address", "city", "state", "pincode", "acceptTerms", "acceptPrivacy"} {
		assert.Contains(t, errs, field)
	}

	f := validForm()
	f.Email = "asha@example"
	f.Phone = "5876543210"
	errs = f.Validate()
	assert.Len(t, errs, 2)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Contains(t, errs, "phone")

	f = validForm()
	f.Phone = "98765"
	assert.Contains(t, f.Validate(), "phone")
}

func TestSuccessURL(t *testing.T) {
	assert.Equal(t,
		"/order-success?payment_id=pay_1&order_id=0b8f&amount=109900&guest=true",
		SuccessURL("pay_1", "0b8f", 109900, true))
	assert.Equal(t,
		"/order-success?payment_id=pay_1&order_id=0b8f&amount=119900",
		SuccessURL("pay_1", "0b8f", 119900, false))
}

func TestRedirectDelay(t *testing.T) {
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148"
	android := "Mozilla/5.0 (Linux; Android 14; Pixel 8) Chrome/120.0 Mobile Safari/537.36"
	desktop := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0 Safari/537.36"

	assert.Equal(t, 500*time.Millisecond, RedirectDelay(iphone))
	assert.Equal(t, 500*time.Millisecond, RedirectDelay(android))
	assert.Zero(t, RedirectDelay(desktop))
	assert.Zero(t, RedirectDelay(""))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_gateway_widget", AwaitingGatewayWidget.String())
	assert.Equal(t, "unknown", State(42).String())
}
