package models

import (
	"fmt"
	"strings"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 // [-90, 90]
	Longitude float64 // [-180, 180]
}

// Source records where a PlaceCandidate came from
type Source string

const (
	SourceNameSearch         Source = "name-search"
	SourceReversePrecise     Source = "reverse-precise"
	SourceReverseCoarse      Source = "reverse-coarse"
	SourceCoordinateFallback Source = "coordinate-fallback"
)

// TimezoneAuto asks the forecast provider to pick the zone from the coordinates
const TimezoneAuto = "auto"

// PlaceCandidate is a named place with coordinates, produced by name search,
// reverse geocoding or the coordinate fallback.
type PlaceCandidate struct {
	ID          string
	Name        string
	Latitude    float64
	Longitude   float64
	Country     string
	CountryCode string // ISO 3166-1 alpha-2 when the provider reports it
	Admin1      string // state / region
	Timezone    string // IANA id or TimezoneAuto
	Source      Source

	// Scoring hints, never shown to the user
	FeatureCode string // GeoNames code, e.g. "PPLA2"
	FeatureText string // free-form place type, e.g. "village"
	Population  int64
}

// ResolvedPlace is the candidate the user confirmed. It is replaced, never mutated.
type ResolvedPlace = PlaceCandidate

// PlaceID builds the stable candidate key from coordinates
func PlaceID(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// CoordinateLabel formats a coordinate pair the way the fallback candidate names itself
func CoordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// Coordinate returns the candidate position
func (p PlaceCandidate) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Label renders "name, admin1, country", skipping empty parts.
func (p PlaceCandidate) Label() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.Admin1, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Region renders "admin1, country" for secondary display lines
func (p PlaceCandidate) Region() string {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.Admin1, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// DisplayName never returns an empty string: unnamed candidates fall back to their coordinates.
func (p PlaceCandidate) DisplayName() string {
	if label := p.Label(); label != "" {
		return label
	}
	return CoordinateLabel(p.Latitude, p.Longitude)
}
