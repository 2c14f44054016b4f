package category

import "log/slog"

// Service provides business logic for categories.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(r Repository, logger *slog.Logger) *Service {
	return &Service{repo: r, logger: logger}
}

// List returns up to `limit` categories. A storage failure degrades to an
// empty list so the storefront navigation still renders.
func (s *Service) List(limit int) []Category {
	items, err := s.repo.List(limit)
	if err != nil {
		s.logger.Warn("category list failed", "error", err)
		return []Category{}
	}
	return items
}
