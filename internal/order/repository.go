package order

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

type Repository interface {
	// Upsert inserts o unless an order with the same GatewayPaymentID
	// exists, in which case that order is returned and created is false.
	Upsert(o Order) (stored Order, created bool, err error)
	GetByID(id uuid.UUID) (Order, error)
	ListByCustomer(customerID int) ([]Order, error)
	// List returns every order, newest first; an empty status means all.
	List(status Status) ([]Order, error)
	// UpdateStatus moves the order from -> to and fails with
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(id uuid.UUID, from, to Status, updatedAt time.Time) (Order, error)
}

type InMemoryRepository struct {
	mu        sync.RWMutex
	orders    map[uuid.UUID]Order
	byPayment map[string]uuid.UUID
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		orders:    make(map[uuid.UUID]Order, len(seed)),
		byPayment: make(map[string]uuid.UUID, len(seed)),
	}
	for _, o := range seed {
		r.orders[o.ID] = o
		if o.GatewayPaymentID != "" {
			r.byPayment[o.GatewayPaymentID] = o.ID
		}
	}
	return r
}

func (r *InMemoryRepository) Upsert(o Order) (Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byPayment[o.GatewayPaymentID]; ok {
		return r.orders[id], false, nil
	}
	r.orders[o.ID] = o
	r.byPayment[o.GatewayPaymentID] = o.ID
	return o, true, nil
}

func (r *InMemoryRepository) GetByID(id uuid.UUID) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.OwnedBy(customerID) }), nil
}

func (r *InMemoryRepository) List(status Status) ([]Order, error) {
	return r.filter(func(o Order) bool { return status == "" || o.Status == status }), nil
}

func (r *InMemoryRepository) filter(keep func(Order) bool) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *InMemoryRepository) UpdateStatus(id uuid.UUID, from, to Status, updatedAt time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if o.Status != from {
		return Order{}, ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return o, nil
}
