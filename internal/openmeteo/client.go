// Package openmeteo wraps the keyless Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"fmt"

	"github.com/ngmaloney/weathernow/internal/models"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com"
	DefaultForecastURL  = "https://api.open-meteo.com"
)

// Searcher resolves free text to named place candidates
type Searcher interface {
	// Search returns up to count candidates for query in the given language
	Search(ctx context.Context, query string, opts SearchOptions) ([]models.PlaceCandidate, error)
}

// ForecastFetcher retrieves weather for a resolved place
type ForecastFetcher interface {
	// Fetch returns current conditions and the hourly temperature series
	Fetch(ctx context.Context, place models.PlaceCandidate, unit models.TemperatureUnit) (*models.Forecast, error)
}

// StatusError is returned when the API answers with a non-success status
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed (%d)", e.Op, e.StatusCode)
}
