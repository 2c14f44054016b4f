package product

import "time"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the catalog, optionally narrowed to one category. Inactive
// products are only included for admin callers.
func (s *Service) List(category string, includeInactive bool) ([]Product, error) {
	all, err := s.repo.List(category)
	if err != nil {
		return nil, err
	}
	if includeInactive {
		return all, nil
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	now := s.timestamp()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	p.UpdatedAt = s.timestamp()
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) SetColors(id int, colors []Color) error {
	return s.repo.SetColors(id, colors)
}

func (s *Service) SetImages(id int, images []Image) error {
	return s.repo.SetImages(id, images)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	now := s.timestamp()
	for i := range products {
		if products[i].CreatedAt == "" {
			products[i].CreatedAt = now
		}
		products[i].UpdatedAt = now
	}
	return s.repo.Reset(products)
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
