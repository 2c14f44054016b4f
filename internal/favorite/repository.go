package favorite

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

// Repository stores each customer's wishlist as ordered product ids.
type Repository interface {
	Add(profileID, productID int, createdAt string) error
	Remove(profileID, productID int) error
	List(profileID int) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[int][]int
}

func NewInMemoryRepository(seed map[int][]int) *InMemoryRepository {
	r := &InMemoryRepository{data: map[int][]int{}}
	for pid, ids := range seed {
		r.data[pid] = append([]int(nil), ids...)
	}
	return r
}

func (r *InMemoryRepository) Add(profileID, productID int, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.data[profileID] {
		if id == productID {
			return ErrAlreadyFavorite
		}
	}
	r.data[profileID] = append(r.data[profileID], productID)
	return nil
}

func (r *InMemoryRepository) Remove(profileID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.data[profileID]
	for i, id := range ids {
		if id == productID {
			r.data[profileID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *InMemoryRepository) List(profileID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]int{}, r.data[profileID]...), nil
}
