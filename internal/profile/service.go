package profile

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrMissingContact = errors.New("phone or email is required")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List() ([]Profile, error) {
	profiles, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i] = sanitize(profiles[i])
	}
	return profiles, nil
}

func (s *Service) GetByID(id int) (Profile, error) {
	return s.repo.GetByID(id)
}

// IsAdmin is the authoritative admin lookup behind the admin status cache.
func (s *Service) IsAdmin(id int) (bool, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	return p.IsAdmin, nil
}

// Register creates a full account. A guest profile is upgraded in place only
// when it holds exactly the registering phone and email, so earlier guest
// orders follow their owner. A guest matching just one of them is a conflict.
func (s *Service) Register(p Profile) (Profile, error) {
	p.Email = NormalizeEmail(p.Email)
	p.Phone = NormalizePhone(p.Phone)

	byPhone, phoneTaken, err := s.lookup(s.repo.GetByPhone, p.Phone)
	if err != nil {
		return Profile{}, err
	}
	byEmail, emailTaken, err := s.lookup(s.repo.GetByEmail, p.Email)
	if err != nil {
		return Profile{}, err
	}

	var upgrade *Profile
	switch {
	case emailTaken && !byEmail.IsGuest:
		return Profile{}, ErrEmailExists
	case phoneTaken && !byPhone.IsGuest:
		return Profile{}, ErrPhoneExists
	case phoneTaken && emailTaken && byPhone.ID == byEmail.ID:
		upgrade = &byPhone
	case phoneTaken:
		return Profile{}, ErrPhoneExists
	case emailTaken:
		return Profile{}, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, err
	}
	p.Password = string(hashed)

	now := s.now().UTC().Format(time.RFC3339)
	p.UpdatedAt = now
	p.IsGuest = false
	p.IsAdmin = false

	if upgrade != nil {
		p.CreatedAt = upgrade.CreatedAt
		return s.repo.Update(upgrade.ID, p)
	}
	p.CreatedAt = now
	return s.repo.Create(p)
}

func (s *Service) lookup(get func(string) (Profile, error), key string) (Profile, bool, error) {
	if key == "" {
		return Profile{}, false, nil
	}
	p, err := get(key)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s *Service) Authenticate(email, password string) (Profile, error) {
	p, err := s.repo.GetByEmail(NormalizeEmail(email))
	if err != nil || p.IsGuest || p.Password == "" {
		return Profile{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)) != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return p, nil
}

// EnsureGuest returns the profile for the given phone/email, creating a
// minimal guest record when none exists. created reports whether a row was
// inserted by this call.
func (s *Service) EnsureGuest(req GuestRequest) (p Profile, created bool, err error) {
	phone := NormalizePhone(req.Phone)
	email := NormalizeEmail(req.Email)
	if phone == "" && email == "" {
		return Profile{}, false, ErrMissingContact
	}

	if existing, err := s.findByContact(phone, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, false, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	p, err = s.repo.Create(Profile{
		Email:     email,
		Phone:     phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsGuest:   true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, ErrPhoneExists) || errors.Is(err, ErrEmailExists) {
		// lost a race with a concurrent checkout for the same shopper
		existing, lookupErr := s.findByContact(phone, email)
		if lookupErr != nil {
			return Profile{}, false, lookupErr
		}
		return existing, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

// FindGuest resolves a guest shopper to a profile without creating one. The
// stored phone and email must both equal the given ones.
func (s *Service) FindGuest(phone, email string) (Profile, error) {
	phone, email = NormalizePhone(phone), NormalizeEmail(email)
	p, err := s.findByContact(phone, email)
	if err != nil {
		return Profile{}, err
	}
	if p.Phone != phone || p.Email != email {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) findByContact(phone, email string) (Profile, error) {
	if phone != "" {
		p, err := s.repo.GetByPhone(phone)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return p, err
		}
	}
	if email != "" {
		return s.repo.GetByEmail(email)
	}
	return Profile{}, ErrNotFound
}
