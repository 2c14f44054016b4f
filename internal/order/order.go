package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a purchased line, priced at checkout time.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type Address struct {
	Line    string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Order is a paid purchase. It exists only after the gateway signature was
// verified, so GatewayPaymentID is always set and unique.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       *int            `json:"customerId,omitempty"`
	CustomerName     string          `json:"customerName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	IsGuest          bool            `json:"isGuest"`
	Items            []Item          `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DeliveryFee      decimal.Decimal `json:"deliveryFee"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Currency         string          `json:"currency"`
	Status           Status          `json:"status"`
	ShippingAddress  Address         `json:"shippingAddress"`
	GatewayOrderID   string          `json:"gatewayOrderId"`
	GatewayPaymentID string          `json:"gatewayPaymentId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// OwnedBy reports whether the order belongs to the registered customer id.
func (o Order) OwnedBy(customerID int) bool {
	return o.CustomerID != nil && *o.CustomerID == customerID
}

func itemsSubtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
