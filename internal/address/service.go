package address

import (
	"strings"
	"time"

	"github.com/emberandwick/candle-shop/internal/profile"
)

// Service manages a customer's saved shipping addresses.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(profileID int) ([]Address, error) {
	return s.repo.List(profileID)
}

func (s *Service) Add(profileID int, a Address) (Address, error) {
	now := s.now().UTC().Format(time.RFC3339)
	a = normalize(a)
	a.ProfileID = profileID
	a.CreatedAt = now
	a.UpdatedAt = now

	existing, err := s.repo.List(profileID)
	if err != nil {
		return Address{}, err
	}
	// the first saved address becomes the default
	if len(existing) == 0 {
		a.IsDefault = true
	}
	return s.repo.Create(a)
}

func (s *Service) Update(profileID, id int, a Address) (Address, error) {
	a = normalize(a)
	a.ID = id
	a.ProfileID = profileID
	a.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return s.repo.Update(a)
}

func (s *Service) Delete(profileID, id int) error {
	return s.repo.Delete(profileID, id)
}

func normalize(a Address) Address {
	a.Label = strings.TrimSpace(a.Label)
	a.Line = strings.TrimSpace(a.Line)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Pincode = strings.TrimSpace(a.Pincode)
	a.Phone = profile.NormalizePhone(a.Phone)
	return a
}
