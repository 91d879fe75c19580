package resolver

import "github.com/ngmaloney/weathernow/internal/nominatim"

// firstNonEmpty returns the first non-empty string
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// BuildName derives the human-facing place name from an address payload.
//
// Indian addresses are rendered hierarchically as "village, taluka, district",
// skipping levels that repeat a previous part. Everything else uses the most
// granular single field available. The result is empty when nothing usable exists.
func BuildName(a nominatim.Address) string {
	if !IsIndia(a.Country, a.CountryCode) {
		return firstNonEmpty(
			a.Village, a.Hamlet, a.Locality, a.Suburb, a.Neighbourhood,
			a.City, a.Town, a.Municipality,
			a.Subdistrict, a.StateDistrict, a.County,
		)
	}

	village := firstNonEmpty(a.Village, a.Hamlet, a.Locality, a.Suburb, a.Neighbourhood)
	taluka := firstNonEmpty(a.Taluka, a.Subdistrict, a.County)
	district := firstNonEmpty(a.District, a.StateDistrict)

	switch {
	case village != "":
		name := village
		if taluka != "" && taluka != village {
			name += ", " + taluka
		}
		if district != "" && district != taluka && district != village {
			name += ", " + district
		}
		return name
	case taluka != "":
		name := taluka
		if district != "" && district != taluka {
			name += ", " + district
		}
		return name
	case district != "":
		return district
	default:
		return firstNonEmpty(a.City, a.Town, a.Municipality)
	}
}

// BuildAdmin1 picks the first-level administrative division
func BuildAdmin1(a nominatim.Address) string {
	return firstNonEmpty(a.State, a.StateDistrict, a.Region)
}
