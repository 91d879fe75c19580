// Package resolver turns a coordinate pair into the best-matching named place.
//
// Resolution queries the reverse geocoder at two detail levels, derives one
// candidate per answer, deduplicates by rounded coordinates and picks the
// highest-scoring candidate. Provider failures only remove candidates; a
// coordinate-labelled fallback guarantees a usable result.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ngmaloney/weathernow/internal/geo"
	"github.com/ngmaloney/weathernow/internal/metrics"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/nominatim"
)

// DefaultNearbyCount caps the nearby-alternatives list
const DefaultNearbyCount = 10

// ErrInvalidCoordinate is returned for non-finite or out-of-range input
var ErrInvalidCoordinate = errors.New("latitude and longitude must be finite numbers within range")

// ReverseGeocoder looks up the address at a coordinate
type ReverseGeocoder interface {
	Reverse(ctx context.Context, c models.Coordinate, zoom int) (*nominatim.Place, error)
}

// Options configures a Resolver. Zero values select the defaults.
type Options struct {
	Observer    Observer
	MajorCities []string // nil selects DefaultMajorCities
	NearbyCount int
}

// Resolver is the reverse resolution engine
type Resolver struct {
	geocoder    ReverseGeocoder
	scorer      *Scorer
	observer    Observer
	nearbyCount int
}

type tier struct {
	zoom   int
	source models.Source
}

// Queried concurrently; results are combined in this order.
var tiers = []tier{
	{zoom: nominatim.ZoomPrecise, source: models.SourceReversePrecise},
	{zoom: nominatim.ZoomCoarse, source: models.SourceReverseCoarse},
}

// New creates a resolver over the given reverse geocoder
func New(geocoder ReverseGeocoder, opts Options) *Resolver {
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.MajorCities == nil {
		opts.MajorCities = DefaultMajorCities
	}
	if opts.NearbyCount <= 0 {
		opts.NearbyCount = DefaultNearbyCount
	}
	return &Resolver{
		geocoder:    geocoder,
		scorer:      NewScorer(opts.MajorCities),
		observer:    opts.Observer,
		nearbyCount: opts.NearbyCount,
	}
}

// Resolve returns the best named place for c. It fails only for invalid
// coordinates or when ctx is canceled; provider failures fall back to a
// candidate named after the coordinates.
func (r *Resolver) Resolve(ctx context.Context, c models.Coordinate) (models.PlaceCandidate, error) {
	if !geo.Valid(c.Latitude, c.Longitude) {
		return models.PlaceCandidate{}, fmt.Errorf("resolving %v, %v: %w", c.Latitude, c.Longitude, ErrInvalidCoordinate)
	}

	perTier := make([][]models.PlaceCandidate, len(tiers))
	var wg sync.WaitGroup
	for i, t := range tiers {
		wg.Add(1)
		go func(i int, t tier) {
			defer wg.Done()
			perTier[i] = r.query(ctx, c, t)
		}(i, t)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return models.PlaceCandidate{}, err
	}

	var candidates []models.PlaceCandidate
	for _, cs := range perTier {
		candidates = append(candidates, cs...)
	}
	if len(candidates) == 0 {
		r.observer.Debug("resolve_fallback", "lat", c.Latitude, "lon", c.Longitude)
		candidates = append(candidates, Fallback(c))
	}

	unique := DedupeByCoordinate(candidates)
	ranked := r.scorer.Rank(unique, c)
	best := ranked[0]

	r.observer.Debug("place_resolved",
		"name", best.Name,
		"source", string(best.Source),
		"candidates", len(candidates),
		"unique", len(unique),
		"score", best.Score,
	)
	metrics.ResolutionsTotal.WithLabelValues(string(best.Source)).Inc()

	return best.PlaceCandidate, nil
}

// query runs one reverse lookup and converts it to at most one named candidate
func (r *Resolver) query(ctx context.Context, c models.Coordinate, t tier) []models.PlaceCandidate {
	place, err := r.geocoder.Reverse(ctx, c, t.zoom)
	if err != nil {
		r.observer.Debug("reverse_query_failed", "source", string(t.source), "zoom", t.zoom, "err", err)
		return nil
	}

	candidate := candidateFromPlace(c, place, t.source)
	r.observer.Debug("reverse_query_ok",
		"source", string(candidate.Source),
		"zoom", t.zoom,
		"name", candidate.Name,
		"feature", candidate.FeatureText,
		"country", candidate.Country,
	)
	if candidate.Name == "" {
		return nil
	}
	return []models.PlaceCandidate{candidate}
}

// candidateFromPlace builds a candidate positioned at the queried coordinate
func candidateFromPlace(c models.Coordinate, place *nominatim.Place, source models.Source) models.PlaceCandidate {
	a := place.Address
	name := BuildName(a)
	if name == "" {
		name = place.Name
	}
	return models.PlaceCandidate{
		ID:          models.PlaceID(c.Latitude, c.Longitude),
		Name:        name,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Country:     a.Country,
		CountryCode: strings.ToUpper(a.CountryCode),
		Admin1:      BuildAdmin1(a),
		Timezone:    models.TimezoneAuto,
		Source:      source,
		FeatureText: place.FeatureText(),
	}
}

// Fallback is the candidate used when no provider produced a named place
func Fallback(c models.Coordinate) models.PlaceCandidate {
	return models.PlaceCandidate{
		ID:        models.PlaceID(c.Latitude, c.Longitude),
		Name:      models.CoordinateLabel(c.Latitude, c.Longitude),
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Timezone:  models.TimezoneAuto,
		Source:    models.SourceCoordinateFallback,
	}
}

// DedupeByCoordinate keeps the first candidate per coordinate rounded to 4 decimals
func DedupeByCoordinate(candidates []models.PlaceCandidate) []models.PlaceCandidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]models.PlaceCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := models.PlaceID(c.Latitude, c.Longitude)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}
