package profile

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone already exists")
)

type Repository interface {
	List() ([]Profile, error)
	GetByID(id int) (Profile, error)
	GetByEmail(email string) (Profile, error)
	GetByPhone(phone string) (Profile, error)
	Create(p Profile) (Profile, error)
	Update(id int, p Profile) (Profile, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles []Profile
	nextID   int
}

func NewInMemoryRepository(seed []Profile) *InMemoryRepository {
	repo := &InMemoryRepository{
		profiles: make([]Profile, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, p := range seed {
		repo.profiles = append(repo.profiles, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if email != "" && p.Email == email {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) GetByPhone(phone string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if phone != "" && p.Phone == phone {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

// Create enforces the same uniqueness the profiles table does: one row per
// phone and one per email.
func (r *InMemoryRepository) Create(p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.profiles {
		if p.Phone != "" && existing.Phone == p.Phone {
			return Profile{}, ErrPhoneExists
		}
		if p.Email != "" && existing.Email == p.Email {
			return Profile{}, ErrEmailExists
		}
	}

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.profiles = append(r.profiles, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, upd Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.profiles {
		if p.ID == id {
			p.Email = upd.Email
			p.FirstName = upd.FirstName
			p.LastName = upd.LastName
			p.Phone = upd.Phone
			p.IsGuest = upd.IsGuest
			p.IsAdmin = upd.IsAdmin
			if upd.Password != "" {
				p.Password = upd.Password
			}
			if upd.UpdatedAt != "" {
				p.UpdatedAt = upd.UpdatedAt
			}
			r.profiles[i] = p
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}
