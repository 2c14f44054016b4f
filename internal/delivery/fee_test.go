package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFee(t *testing.T) {
	cases := []struct {
		name  string
		state string
		city  string
		want  int
	}{
		{"empty address", "", "", 0},
		{"whitespace only", "   ", "  ", 0},
		{"delhi state", "Delhi", "", MetroFee},
		{"delhi lowercase", "delhi", "Rohini", MetroFee},
		{"new delhi", "new delhi", "", MetroFee},
		{"new delhi extra spaces", "  New   Delhi ", "", MetroFee},
		{"gurugram", "Haryana", "Gurugram", MetroFee},
		{"gurgaon substring", "Haryana", "Gurgaon Sector 45", MetroFee},
		{"ghaziabad", "Uttar Pradesh", "ghaziabad", MetroFee},
		{"faridabad", "Haryana", "FARIDABAD", MetroFee},
		{"bahadurgarh", "Haryana", "Bahadurgarh", MetroFee},
		{"noida", "Uttar Pradesh", "Noida", MetroFee},
		{"greater noida excluded", "Uttar Pradesh", "Greater Noida", StandardFee},
		{"greater noida odd spacing", "Uttar Pradesh", "greater   noida", StandardFee},
		{"mumbai", "Maharashtra", "Mumbai", StandardFee},
		{"city only elsewhere", "", "Pune", StandardFee},
		{"state only elsewhere", "Karnataka", "", StandardFee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Fee(tc.state, tc.city))
		})
	}
}

func TestFee_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, MetroFee, Fee("Delhi", "Dwarka"))
	}
}
