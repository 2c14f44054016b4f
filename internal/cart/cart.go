package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one line in a shopping cart. Stock is the known upper bound for
// Quantity; zero means unknown.
type Item struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int             `json:"stock,omitempty"`
}

// LineTotal is UnitPrice × Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a session cart safe for concurrent use. Item order is insertion
// order.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

func New(items ...Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add merges it into the cart, summing quantities for an existing product.
func (c *Cart) Add(it Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == it.ProductID {
			c.items[i].Quantity = clamp(c.items[i].Quantity+it.Quantity, maxStock(c.items[i].Stock, it.Stock))
			if it.Stock > 0 {
				c.items[i].Stock = it.Stock
			}
			return
		}
	}
	it.Quantity = clamp(it.Quantity, it.Stock)
	c.items = append(c.items, it)
}

// SetQuantity overwrites the quantity of productID. It reports false when
// the product is not in the cart.
func (c *Cart) SetQuantity(productID, qty int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = clamp(qty, c.items[i].Stock)
			return true
		}
	}
	return false
}

func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

func clamp(qty, stock int) int {
	if qty < 1 {
		qty = 1
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	return qty
}

func maxStock(a, b int) int {
	if b > 0 {
		return b
	}
	return a
}
