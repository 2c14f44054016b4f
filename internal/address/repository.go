package address

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	List(profileID int) ([]Address, error)
	Create(a Address) (Address, error)
	Update(a Address) (Address, error)
	Delete(profileID, id int) error
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	mu     sync.RWMutex
	data   map[int][]Address // keyed by profile id
	nextID int
}

func NewInMemoryRepository(seed map[int][]Address) *InMemoryRepository {
	repo := &InMemoryRepository{data: map[int][]Address{}, nextID: 1}
	for pid, addrs := range seed {
		repo.data[pid] = append([]Address(nil), addrs...)
		for _, a := range addrs {
			if a.ID >= repo.nextID {
				repo.nextID = a.ID + 1
			}
		}
	}
	return repo
}

func (r *InMemoryRepository) List(profileID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Address{}, r.data[profileID]...), nil
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	if a.IsDefault {
		r.clearDefault(a.ProfileID)
	}
	r.data[a.ProfileID] = append(r.data[a.ProfileID], a)
	return a, nil
}

func (r *InMemoryRepository) Update(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := r.data[a.ProfileID]
	for i := range addrs {
		if addrs[i].ID == a.ID {
			if a.IsDefault {
				r.clearDefault(a.ProfileID)
			}
			a.CreatedAt = addrs[i].CreatedAt
			addrs[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(profileID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addrs := r.data[profileID]
	for i, a := range addrs {
		if a.ID == id {
			r.data[profileID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) clearDefault(profileID int) {
	for i := range r.data[profileID] {
		r.data[profileID][i].IsDefault = false
	}
}
