package recommended

import "log/slog"

// Service provides business logic for recommended items.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns up to limit bestsellers starting at offset. Errors degrade to
// an empty list; the home page renders without the strip.
func (s *Service) List(limit, offset int) []Item {
	items, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Warn("bestsellers unavailable", "error", err)
		return []Item{}
	}
	return items
}
