package favorite

import (
	"errors"
	"time"

	"github.com/emberandwick/candle-shop/internal/product"
)

// Catalog resolves wishlist ids to products.
type Catalog interface {
	GetByID(id int) (product.Product, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

// Add wishlists an active product.
func (s *Service) Add(profileID, productID int) error {
	p, err := s.catalog.GetByID(productID)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return product.ErrNotFound
	}
	return s.repo.Add(profileID, productID, s.now().UTC().Format(time.RFC3339))
}

func (s *Service) Remove(profileID, productID int) error {
	return s.repo.Remove(profileID, productID)
}

// List returns the wishlisted products that still exist and are on sale.
func (s *Service) List(profileID int) ([]product.Product, error) {
	ids, err := s.repo.List(profileID)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.GetByID(id)
		if errors.Is(err, product.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}
