package checkout

import (
	"strings"

	"github.com/emberandwick/candle-shop/internal/profile"
)

// Form is the shipping form filled in on the checkout page.
type Form struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	AcceptTerms   bool   `json:"acceptTerms"`
	AcceptPrivacy bool   `json:"acceptPrivacy"`
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// Validate returns every failing field at once; an empty map means the form
// can be submitted.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}

	required := []struct {
		field string
		value string
		msg   string
	}{
		{"email", f.Email, "Email is required"},
		{"firstName", f.FirstName, "First name is required"},
		{"lastName", f.LastName, "Last name is required"},
		{"phone", f.Phone, "Phone number is required"},
		{"address", f.Address, "Address is required"},
		{"city", f.City, "City is required"},
		{"state", f.State, "State is required"},
		{"pincode", f.Pincode, "Pincode is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.msg
		}
	}

	if _, ok := errs["email"]; !ok && !profile.ValidEmail(strings.TrimSpace(f.Email)) {
		errs["email"] = "Please enter a valid email address"
	}
	if _, ok := errs["phone"]; !ok && !profile.ValidMobile(strings.TrimSpace(f.Phone)) {
		errs["phone"] = "Please enter a valid 10-digit mobile number"
	}
	if !f.AcceptTerms {
		errs["acceptTerms"] = "You must accept the terms and conditions"
	}
	if !f.AcceptPrivacy {
		errs["acceptPrivacy"] = "You must accept the privacy policy"
	}
	return errs
}

// FullName joins first and last name for the gateway prefill.
func (f Form) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

// State is the orchestrator's position in the checkout flow.
type State int

const (
	FormEntry State = iota
	Validating
	CreatingGatewayOrder
	AwaitingGatewayWidget
	Reconciling
	Completed
)

func (s State) String() string {
	switch s {
	case FormEntry:
		return "form_entry"
	case Validating:
		return "validating"
	case CreatingGatewayOrder:
		return "creating_gateway_order"
	case AwaitingGatewayWidget:
		return "awaiting_gateway_widget"
	case Reconciling:
		return "reconciling"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}
