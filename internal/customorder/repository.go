package customorder

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound          = errors.New("custom order not found")
	ErrInvalidStatus     = errors.New("invalid custom order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStatusConflict    = errors.New("custom order status changed concurrently")
)

type Repository interface {
	Create(r Request) (Request, error)
	GetByID(id int) (Request, error)
	List(status Status) ([]Request, error)
	// UpdateStatus sets to only while the stored status still equals from.
	UpdateStatus(id int, from, to Status, updatedAt string) (Request, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	requests map[int]Request
	nextID   int
}

func NewInMemoryRepository(seed []Request) *InMemoryRepository {
	repo := &InMemoryRepository{requests: map[int]Request{}, nextID: 1}
	for _, r := range seed {
		repo.requests[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (m *InMemoryRepository) Create(r Request) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	m.requests[r.ID] = r
	return r, nil
}

func (m *InMemoryRepository) GetByID(id int) (Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return r, nil
}

// List returns newest first.
func (m *InMemoryRepository) List(status Status) ([]Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Request, 0, len(m.requests))
	for _, r := range m.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *InMemoryRepository) UpdateStatus(id int, from, to Status, updatedAt string) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	if r.Status != from {
		return Request{}, ErrStatusConflict
	}
	r.Status = to
	r.UpdatedAt = updatedAt
	m.requests[id] = r
	return r, nil
}
