package customorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusQuoted, true},
		{StatusNew, StatusRejected, true},
		{StatusNew, StatusAccepted, false},
		{StatusQuoted, StatusAccepted, true},
		{StatusQuoted, StatusRejected, true},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusQuoted, false},
		{StatusCompleted, StatusNew, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Quoted ")
	require.NoError(t, err)
	assert.Equal(t, StatusQuoted, st)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRequestValidate(t *testing.T) {
	ok := Request{Name: "Kavya", Email: "kavya@example.com", Description: "Twelve lavender jars for a wedding", Quantity: 12}
	assert.Empty(t, ok.Validate())

	errs := Request{Phone: "123"}.Validate()
	for _, k := range []string{"name", "email", "phone", "description", "quantity"} {
		assert.Contains(t, errs, k)
	}
}
