package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCart_AddMergesAndClamps(t *testing.T) {
	c := New()
	c.Add(Item{ProductID: 1, Name: "Rose Pillar", Quantity: 2, UnitPrice: decimal.NewFromInt(450), Stock: 3})
	c.Add(Item{ProductID: 1, Name: "Rose Pillar", Quantity: 5, UnitPrice: decimal.NewFromInt(450), Stock: 3})
	c.Add(Item{ProductID: 2, Name: "Tealights", Quantity: 0, UnitPrice: decimal.NewFromInt(299)})

	items := c.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 4, c.Count())
	assert.True(t, decimal.NewFromInt(1649).Equal(c.Subtotal()))
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	c := New(Item{ProductID: 7, Quantity: 1, UnitPrice: decimal.NewFromInt(100), Stock: 4})

	assert.True(t, c.SetQuantity(7, 10))
	assert.Equal(t, 4, c.Items()[0].Quantity)
	assert.True(t, c.SetQuantity(7, -2))
	assert.Equal(t, 1, c.Items()[0].Quantity)
	assert.False(t, c.SetQuantity(8, 1))

	c.Remove(7)
	assert.True(t, c.IsEmpty())
	c.Remove(7)
}

func TestCart_ClearIsIdempotent(t *testing.T) {
	c := New(Item{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(500)})

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Subtotal().IsZero())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}
