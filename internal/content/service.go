package content

import (
	"log/slog"
	"time"
)

const defaultLimit = 10

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(r Repository, logger *slog.Logger) *Service {
	return &Service{repo: r, logger: logger, now: time.Now}
}

// List returns up to limit banners. A failing store yields an empty list so
// the homepage can fall back to its static slides.
func (s *Service) List(limit int) []Banner {
	if limit <= 0 {
		limit = defaultLimit
	}
	items, err := s.repo.List(limit)
	if err != nil {
		s.logger.Warn("banner list unavailable", "error", err)
		return []Banner{}
	}
	return items
}

func (s *Service) Create(b Banner) (Banner, error) {
	b.CreatedAt = s.now().UTC().Format(time.RFC3339)
	return s.repo.Create(b)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
