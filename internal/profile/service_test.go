package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeNow() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

func newTestService(seed []Profile) *Service {
	s := NewService(NewInMemoryRepository(seed))
	s.now = timeNow
	return s
}

func TestEnsureGuest_Idempotent(t *testing.T) {
	s := newTestService(nil)

	first, created, err := s.EnsureGuest(GuestRequest{Phone: "098765 43210", FirstName: "Meera"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.IsGuest)
	assert.Equal(t, "9876543210", first.Phone)

	again, created, err := s.EnsureGuest(GuestRequest{Phone: "9876543210"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	byEmail, created, err := s.EnsureGuest(GuestRequest{Email: "ONLY@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "only@example.com", byEmail.Email)
}

func TestEnsureGuest_MissingContact(t *testing.T) {
	s := newTestService(nil)
	_, _, err := s.EnsureGuest(GuestRequest{FirstName: "x"})
	assert.ErrorIs(t, err, ErrMissingContact)
}

type racingRepo struct {
	*InMemoryRepository
	misses int
}

// GetByPhone reports a miss once so EnsureGuest reaches Create after another
// writer has already inserted the row.
func (r *racingRepo) GetByPhone(phone string) (Profile, error) {
	if r.misses > 0 {
		r.misses--
		return Profile{}, ErrNotFound
	}
	return r.InMemoryRepository.GetByPhone(phone)
}

func (r *racingRepo) GetByEmail(email string) (Profile, error) {
	return Profile{}, ErrNotFound
}

func TestEnsureGuest_LostRace(t *testing.T) {
	repo := &racingRepo{
		InMemoryRepository: NewInMemoryRepository([]Profile{{ID: 5, Phone: "9876543210", IsGuest: true}}),
		misses:             1,
	}
	s := NewService(repo)

	p, created, err := s.EnsureGuest(GuestRequest{Phone: "9876543210"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, p.ID)
}

func TestRegister_UpgradesGuest(t *testing.T) {
	s := newTestService([]Profile{{ID: 9, Phone: "9876543210", Email: "meera@example.com", IsGuest: true, CreatedAt: "2025-12-01T00:00:00Z"}})

	p, err := s.Register(Profile{Email: "meera@example.com", Password: "pw", FirstName: "Meera", LastName: "K", Phone: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, 9, p.ID)
	assert.False(t, p.IsGuest)

	_, err = s.Register(Profile{Email: "meera@example.com", Password: "pw", Phone: "9876543210"})
	assert.True(t, errors.Is(err, ErrEmailExists))

	authed, err := s.Authenticate("MEERA@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, 9, authed.ID)
}

func TestRegister_GuestMatchedOnOneContactIsNotUpgraded(t *testing.T) {
	s := newTestService([]Profile{
		{ID: 9, Phone: "9876543210", Email: "meera@example.com", IsGuest: true},
		{ID: 10, Phone: "9123456780", IsGuest: true},
	})

	_, err := s.Register(Profile{Email: "other@example.com", Password: "pw", Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrPhoneExists)

	_, err = s.Register(Profile{Email: "meera@example.com", Password: "pw", Phone: "9000000001"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = s.Register(Profile{Email: "new@example.com", Password: "pw", Phone: "9123456780"})
	assert.ErrorIs(t, err, ErrPhoneExists)

	guest, err := s.GetByID(9)
	require.NoError(t, err)
	assert.True(t, guest.IsGuest)
	assert.Equal(t, "meera@example.com", guest.Email)
}

func TestFindGuest_RequiresBothContacts(t *testing.T) {
	s := newTestService([]Profile{{ID: 9, Phone: "9876543210", Email: "meera@example.com", IsGuest: true}})

	p, err := s.FindGuest("98765 43210", "Meera@Example.com")
	require.NoError(t, err)
	assert.Equal(t, 9, p.ID)

	_, err = s.FindGuest("9876543210", "other@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindGuest("9876543210", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate_RejectsGuests(t *testing.T) {
	s := newTestService([]Profile{{ID: 1, Email: "g@example.com", IsGuest: true}})
	_, err := s.Authenticate("g@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIsAdmin(t *testing.T) {
	s := newTestService([]Profile{{ID: 1, IsAdmin: true}, {ID: 2}})
	ok, err := s.IsAdmin(1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAdmin(2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.IsAdmin(3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+91 98765 43210": "9876543210",
		"09876543210":     "9876543210",
		"(987) 654-3210":  "9876543210",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
	assert.True(t, ValidMobile("9876543210"))
	assert.False(t, ValidMobile("5876543210"))
}
