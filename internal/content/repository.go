package content

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("banner not found")

// Repository provides access to banners.
type Repository interface {
	List(limit int) ([]Banner, error)
	Create(b Banner) (Banner, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	banners []Banner
	nextID  int
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	repo := &InMemoryRepository{banners: append([]Banner(nil), seed...), nextID: 1}
	for _, b := range seed {
		if b.ID >= repo.nextID {
			repo.nextID = b.ID + 1
		}
	}
	return repo
}

// List orders by position, then id.
func (r *InMemoryRepository) List(limit int) ([]Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]Banner(nil), r.banners...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Create(b Banner) (Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.banners = append(r.banners, b)
	return b, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.banners {
		if b.ID == id {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
