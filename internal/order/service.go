package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emberandwick/candle-shop/internal/events"
	"github.com/google/uuid"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// Record persists a verified purchase. Calling it again with the same
// gateway payment id returns the order stored the first time.
func (s *Service) Record(ctx context.Context, o Order) (Order, error) {
	if o.GatewayPaymentID == "" {
		return Order{}, fmt.Errorf("record order: missing gateway payment id")
	}
	now := s.now().UTC()
	o.ID = s.newID()
	o.Status = StatusConfirmed
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Subtotal.IsZero() {
		o.Subtotal = itemsSubtotal(o.Items)
	}

	stored, created, err := s.repo.Upsert(o)
	if err != nil {
		return Order{}, fmt.Errorf("record order: %w", err)
	}
	if !created {
		s.logger.Info("duplicate verification ignored",
			"order_id", stored.ID, "gateway_payment_id", stored.GatewayPaymentID)
		return stored, nil
	}

	s.publish(ctx, events.Event{
		Type:      events.OrderConfirmed,
		OrderID:   stored.ID.String(),
		Status:    string(stored.Status),
		PaymentID: stored.GatewayPaymentID,
		Total:     stored.TotalAmount.StringFixed(2),
		IsGuest:   stored.IsGuest,
	})
	return stored, nil
}

func (s *Service) Get(id uuid.UUID) (Order, error) {
	return s.repo.GetByID(id)
}

// GetForViewer hides orders the viewer does not own behind ErrNotFound.
func (s *Service) GetForViewer(id uuid.UUID, viewerID int, isAdmin bool) (Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && !o.OwnedBy(viewerID) {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByCustomer(customerID int) ([]Order, error) {
	return s.repo.ListByCustomer(customerID)
}

func (s *Service) List(status Status) ([]Order, error) {
	return s.repo.List(status)
}

// UpdateStatus applies an admin status change after checking it is a legal
// transition from the stored status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (Order, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !current.Status.CanTransition(to) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(id, current.Status, to, s.now().UTC())
	if err != nil {
		return Order{}, err
	}
	s.logger.Info("order status changed", "order_id", id, "from", current.Status, "to", to)

	s.publish(ctx, events.Event{
		Type:    events.OrderStatusChanged,
		OrderID: updated.ID.String(),
		Status:  string(updated.Status),
		IsGuest: updated.IsGuest,
	})
	return updated, nil
}

// publish is best effort; the order row is the source of truth.
func (s *Service) publish(ctx context.Context, ev events.Event) {
	ev.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("order event not published", "type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}
