package recommended

import (
	"sort"
	"sync"
)

// Repository ranks active products by units sold.
type Repository interface {
	List(limit, offset int) ([]Item, error)
}

// InMemoryRepository ranks a fixed item set; used in tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Item
}

func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	return &InMemoryRepository{items: append([]Item(nil), seed...)}
}

func (r *InMemoryRepository) List(limit, offset int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]Item(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if offset >= len(out) {
		return []Item{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
