package cart

import (
	"errors"
	"time"

	"github.com/emberandwick/candle-shop/internal/product"
)

// Catalog resolves product details for new cart lines.
type Catalog interface {
	GetByID(id int) (product.Product, error)
}

// Service orchestrates the persisted carts of registered customers.
type Service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

func (s *Service) Get(profileID int) (*Cart, error) {
	if profileID <= 0 {
		return nil, ErrNotFound
	}
	items, err := s.repo.Load(profileID)
	if err != nil {
		return nil, err
	}
	return New(items...), nil
}

// Add changes the quantity of productID by delta. A resulting quantity of
// zero or less removes the line; a positive one is clamped to stock.
func (s *Service) Add(profileID, productID, delta int) (*Cart, error) {
	c, err := s.Get(profileID)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return c, nil
	}

	current := 0
	for _, it := range c.Items() {
		if it.ProductID == productID {
			current = it.Quantity
		}
	}

	next := current + delta
	switch {
	case next <= 0:
		c.Remove(productID)
	case current > 0:
		c.SetQuantity(productID, next)
	default:
		p, err := s.catalog.GetByID(productID)
		if errors.Is(err, product.ErrNotFound) || (err == nil && !p.IsActive) {
			return nil, ErrProductUnavailable
		}
		if err != nil {
			return nil, err
		}
		if p.Stock <= 0 {
			return nil, ErrOutOfStock
		}
		c.Add(Item{ProductID: p.ID, Name: p.Name, Quantity: next, UnitPrice: p.Price, Stock: p.Stock})
	}

	if err := s.repo.Save(profileID, c.Items(), s.timestamp()); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Remove(profileID, productID int) (*Cart, error) {
	c, err := s.Get(profileID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.repo.Save(profileID, c.Items(), s.timestamp()); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties a customer's cart. Clearing an empty cart succeeds.
func (s *Service) Clear(profileID int) error {
	if profileID <= 0 {
		return ErrNotFound
	}
	return s.repo.Save(profileID, nil, s.timestamp())
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
