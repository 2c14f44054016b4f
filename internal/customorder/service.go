package customorder

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emberandwick/candle-shop/internal/profile"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Submit stores a new enquiry. Callers validate first.
func (s *Service) Submit(r Request) (Request, error) {
	now := s.now().UTC().Format(time.RFC3339)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = profile.NormalizeEmail(r.Email)
	r.Phone = profile.NormalizePhone(r.Phone)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = StatusNew
	r.CreatedAt = now
	r.UpdatedAt = now

	created, err := s.repo.Create(r)
	if err != nil {
		return Request{}, err
	}
	s.logger.Info("custom order received", "custom_order_id", created.ID, "quantity", created.Quantity)
	return created, nil
}

func (s *Service) List(status Status) ([]Request, error) {
	return s.repo.List(status)
}

func (s *Service) UpdateStatus(id int, to Status) (Request, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Request{}, err
	}
	if !current.Status.CanTransition(to) {
		return Request{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	updated, err := s.repo.UpdateStatus(id, current.Status, to, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return Request{}, err
	}
	s.logger.Info("custom order status changed", "custom_order_id", id, "from", current.Status, "to", to)
	return updated, nil
}
