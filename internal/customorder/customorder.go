package customorder

import (
	"fmt"
	"strings"

	"github.com/emberandwick/candle-shop/internal/profile"
)

// Status of a custom candle request as handled by the workshop.
type Status string

const (
	StatusNew       Status = "new"
	StatusQuoted    Status = "quoted"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusNew:      {StatusQuoted, StatusRejected},
	StatusQuoted:   {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusNew, StatusQuoted, StatusAccepted, StatusRejected, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CanTransition allows the workshop flow new → quoted → accepted → completed,
// with rejection possible until a quote is accepted.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Request is a bespoke candle enquiry from the storefront form.
type Request struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func (r Request) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if !profile.ValidEmail(profile.NormalizeEmail(r.Email)) {
		errs["email"] = "a valid email is required"
	}
	if r.Phone != "" && !profile.ValidMobile(profile.NormalizePhone(r.Phone)) {
		errs["phone"] = "phone must be a 10-digit mobile number"
	}
	if len(strings.TrimSpace(r.Description)) < 10 {
		errs["description"] = "tell us a little more about the candle (10+ characters)"
	}
	if r.Quantity < 1 {
		errs["quantity"] = "quantity must be at least 1"
	}
	return errs
}
