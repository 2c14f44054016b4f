package delivery

import "strings"

const (
	// MetroFee applies to Delhi and the NCR satellite cities.
	MetroFee = 99
	// StandardFee applies to every other destination in the country.
	StandardFee = 199
)

var delhiStates = []string{"delhi", "new delhi"}

// ncrCities are matched as substrings of the normalised city.
var ncrCities = []string{"gurgaon", "gurugram", "ghaziabad", "faridabad", "bahadurgarh"}

// Fee returns the delivery fee in major currency units for a destination.
// Nothing entered yet means no fee is shown.
func Fee(state, city string) int {
	s := normalize(state)
	c := normalize(city)
	if s == "" && c == "" {
		return 0
	}
	if IsMetro(s, c) {
		return MetroFee
	}
	return StandardFee
}

// IsMetro reports whether the destination falls in the Delhi/NCR tier.
func IsMetro(state, city string) bool {
	s := normalize(state)
	c := normalize(city)

	for _, d := range delhiStates {
		if s == d {
			return true
		}
	}
	for _, n := range ncrCities {
		if c != "" && strings.Contains(c, n) {
			return true
		}
	}
	// Greater Noida is billed at the standard rate.
	if strings.Contains(c, "noida") && !strings.Contains(c, "greater noida") {
		return true
	}
	return false
}

func normalize(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}
