package resolver

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ngmaloney/weathernow/internal/geo"
	"github.com/ngmaloney/weathernow/internal/models"
)

// DefaultMajorCities are suppressed in favour of nearby smaller settlements in India
var DefaultMajorCities = []string{"Pune", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata"}

// preferredFeatureCodes are GeoNames populated-place codes
var preferredFeatureCodes = map[string]bool{
	"PPLA": true, "PPLA2": true, "PPLA3": true, "PPLA4": true,
	"PPLC": true, "PPL": true, "PPLG": true, "PPLL": true, "PPLS": true,
}

// largeCityPopulation marks a city as large regardless of its name
const largeCityPopulation = 1_000_000

var (
	settlementRegex = regexp.MustCompile(`(?i)village|hamlet|locality`)
	largeCityRegex  = regexp.MustCompile(`(?i)city|metropolitan`)
	populatedRegex  = regexp.MustCompile(`(?i)city|town|village`)
)

// ScoredCandidate pairs a candidate with its rank for one resolution request
type ScoredCandidate struct {
	models.PlaceCandidate
	DistanceKm float64
	TypeScore  int
	Score      float64
}

// Scorer ranks candidates by proximity first, then place type, then population
type Scorer struct {
	majorCities *regexp.Regexp
}

// NewScorer creates a scorer. majorCities is matched case-insensitively
// against candidate names; nil or empty disables name-based suppression.
func NewScorer(majorCities []string) *Scorer {
	s := &Scorer{}
	quoted := make([]string, 0, len(majorCities))
	for _, c := range majorCities {
		if c = strings.TrimSpace(c); c != "" {
			quoted = append(quoted, regexp.QuoteMeta(c))
		}
	}
	if len(quoted) > 0 {
		s.majorCities = regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
	}
	return s
}

// TypeScore rates how well the candidate's place type fits a weather lookup
func (s *Scorer) TypeScore(c models.PlaceCandidate) int {
	typeScore := 0
	if preferredFeatureCodes[c.FeatureCode] {
		typeScore = 3
	}

	if IsIndia(c.Country, c.CountryCode) {
		if settlementRegex.MatchString(c.FeatureText) || settlementRegex.MatchString(c.Name) {
			typeScore = max(typeScore, 4)
		}
		if largeCityRegex.MatchString(c.FeatureText) && (c.Population > largeCityPopulation || s.isMajorCity(c.Name)) {
			typeScore = min(typeScore, 1)
		}
		return typeScore
	}

	if populatedRegex.MatchString(c.FeatureText) {
		typeScore = max(typeScore, 2)
	}
	return typeScore
}

func (s *Scorer) isMajorCity(name string) bool {
	return s.majorCities != nil && s.majorCities.MatchString(name)
}

// Score ranks c against target. Distance dominates: one kilometre outweighs
// any type or population difference.
func (s *Scorer) Score(c models.PlaceCandidate, target models.Coordinate) ScoredCandidate {
	km := geo.Distance(target, c.Coordinate())
	typeScore := s.TypeScore(c)
	return ScoredCandidate{
		PlaceCandidate: c,
		DistanceKm:     km,
		TypeScore:      typeScore,
		Score:          -km*1_000_000 + float64(typeScore)*1_000 + float64(c.Population)*0.1,
	}
}

// Rank scores all candidates and orders them best first. Equal scores keep input order.
func (s *Scorer) Rank(candidates []models.PlaceCandidate, target models.Coordinate) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = s.Score(c, target)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
