package recommended

import "github.com/shopspring/decimal"

// Item is a bestseller card on the storefront home page.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	UnitsSold int             `json:"unitsSold"`
}
