package resolver

import (
	"strings"

	"github.com/biter777/countries"
)

// IsIndia reports whether a country name or ISO code refers to India.
// Both the name builder and the scorer classify through this one predicate.
func IsIndia(country, countryCode string) bool {
	for _, s := range []string{countryCode, country} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if countries.ByName(strings.ToUpper(s)) == countries.India {
			return true
		}
	}
	return false
}
