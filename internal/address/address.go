package address

import (
	"strings"

	"github.com/emberandwick/candle-shop/internal/delivery"
	"github.com/emberandwick/candle-shop/internal/profile"
)

// Address is a saved shipping address that prefills the checkout form.
type Address struct {
	ID        int    `json:"addressId"`
	ProfileID int    `json:"profileId"`
	Label     string `json:"label"`
	Line      string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DeliveryFee is the fee checkout will charge for this destination.
func (a Address) DeliveryFee() int {
	return delivery.Fee(a.State, a.City)
}

func (a Address) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.Line) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(a.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(a.State) == "" {
		errs["state"] = "state is required"
	}
	if len(strings.TrimSpace(a.Pincode)) != 6 {
		errs["pincode"] = "pincode must be 6 digits"
	}
	if a.Phone != "" && !profile.ValidMobile(profile.NormalizePhone(a.Phone)) {
		errs["phone"] = "phone must be a 10-digit mobile number"
	}
	return errs
}
