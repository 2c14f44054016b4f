package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("cart not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrOutOfStock         = errors.New("product out of stock")
)

// Repository persists the cart of a registered customer. Save replaces the
// stored lines with items.
type Repository interface {
	Load(profileID int) ([]Item, error)
	Save(profileID int, items []Item, updatedAt string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]Item
}

func NewInMemoryRepository(seed map[int][]Item) *InMemoryRepository {
	r := &InMemoryRepository{carts: make(map[int][]Item, len(seed))}
	for id, items := range seed {
		r.carts[id] = append([]Item(nil), items...)
	}
	return r
}

func (r *InMemoryRepository) Load(profileID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Item(nil), r.carts[profileID]...), nil
}

func (r *InMemoryRepository) Save(profileID int, items []Item, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(items) == 0 {
		delete(r.carts, profileID)
		return nil
	}
	r.carts[profileID] = append([]Item(nil), items...)
	return nil
}
