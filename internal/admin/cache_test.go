package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCache_TTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewStatusCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, true)
	c.Set(2, false)
	isAdmin, ok := c.Get(1)
	assert.True(t, ok)
	assert.True(t, isAdmin)
	isAdmin, ok = c.Get(2)
	assert.True(t, ok)
	assert.False(t, isAdmin)

	now = now.Add(5 * time.Minute)
	_, ok = c.Get(1)
	assert.False(t, ok, "entry should expire at the TTL")
	assert.Equal(t, 1, c.Len())
}

func TestStatusCache_InvalidateAndClear(t *testing.T) {
	c := NewStatusCache(time.Hour)
	c.Set(1, true)
	c.Set(2, true)

	c.Invalidate(1)
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)

	c.Invalidate(99)
	c.Clear()
	assert.Zero(t, c.Len())
}

func TestStatusCache_ZeroTTLDisablesCaching(t *testing.T) {
	c := NewStatusCache(0)
	c.Set(1, true)
	_, ok := c.Get(1)
	assert.False(t, ok)
}
