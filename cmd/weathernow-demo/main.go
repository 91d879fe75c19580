package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weathernow/internal/geolocation"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/openmeteo"
	"github.com/ngmaloney/weathernow/internal/resolver"
	"github.com/ngmaloney/weathernow/internal/ui"
)

// This demo runs the UI against canned places and weather; nothing touches the network
func main() {
	m := ui.NewModel(ui.Options{
		Searcher:     demoSearcher{},
		Forecaster:   demoForecaster{},
		Resolver:     demoResolver{},
		Locator:      geolocation.NewStatic("16.1853,74.4622"),
		InitialQuery: "Pune",
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}

var demoPlaces = []models.PlaceCandidate{
	{Name: "Pune", Latitude: 18.51957, Longitude: 73.85535, Country: "India", CountryCode: "IN",
		Admin1: "Maharashtra", Timezone: "Asia/Kolkata", FeatureCode: "PPLA2", Population: 3124458},
	{Name: "Punjab", Latitude: 31, Longitude: 75.5, Country: "Pakistan", CountryCode: "PK",
		Admin1: "Punjab", Timezone: "Asia/Karachi", FeatureCode: "ADM1"},
	{Name: "London", Latitude: 51.50853, Longitude: -0.12574, Country: "United Kingdom", CountryCode: "GB",
		Admin1: "England", Timezone: "Europe/London", FeatureCode: "PPLC", Population: 8961989},
	{Name: "San Francisco", Latitude: 37.77493, Longitude: -122.41942, Country: "United States", CountryCode: "US",
		Admin1: "California", Timezone: "America/Los_Angeles", FeatureCode: "PPLA2", Population: 864816},
}

type demoSearcher struct{}

func (demoSearcher) Search(ctx context.Context, query string, opts openmeteo.SearchOptions) ([]models.PlaceCandidate, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.PlaceCandidate
	for _, p := range demoPlaces {
		if strings.HasPrefix(strings.ToLower(p.Name), q) {
			p.ID = models.PlaceID(p.Latitude, p.Longitude)
			p.Source = models.SourceNameSearch
			out = append(out, p)
		}
	}
	return out, nil
}

type demoResolver struct{}

func (demoResolver) Resolve(ctx context.Context, c models.Coordinate) (models.PlaceCandidate, error) {
	p := resolver.Fallback(c)
	if geoNear(c, models.Coordinate{Latitude: 16.1853, Longitude: 74.4622}) {
		p.Name = "Basardge, Gadhinglaj, Kolhapur"
		p.Admin1 = "Maharashtra"
		p.Country = "India"
		p.Source = models.SourceReversePrecise
	}
	return p, nil
}

func (demoResolver) Nearby(ctx context.Context, c models.Coordinate, selected *models.PlaceCandidate) ([]models.PlaceCandidate, error) {
	alts := []models.PlaceCandidate{
		{Name: "Gadhinglaj, Kolhapur", Admin1: "Maharashtra", Country: "India", Latitude: c.Latitude, Longitude: c.Longitude, Timezone: models.TimezoneAuto},
		{Name: "Kolhapur", Admin1: "Maharashtra", Country: "India", Latitude: 16.705, Longitude: 74.2433, Timezone: "Asia/Kolkata"},
	}
	exclude := ""
	if selected != nil {
		exclude = selected.Label()
	}
	return resolver.FilterNearby(alts, exclude, resolver.DefaultNearbyCount), nil
}

func geoNear(a, b models.Coordinate) bool {
	return math.Abs(a.Latitude-b.Latitude) < 0.01 && math.Abs(a.Longitude-b.Longitude) < 0.01
}

type demoForecaster struct{}

func (demoForecaster) Fetch(ctx context.Context, place models.PlaceCandidate, unit models.TemperatureUnit) (*models.Forecast, error) {
	// A smooth daily cycle peaking mid-afternoon
	temps := make([]float64, 48)
	for i := range temps {
		temps[i] = 24 + 6*math.Sin(float64(i-9)*math.Pi/12)
	}
	current := models.CurrentConditions{
		Temperature: temps[len(temps)-1], ApparentTemperature: temps[len(temps)-1] + 1.5,
		IsDay: true, WindSpeed: 12.4, WindDirection: 250, RelativeHumidity: 58, WeatherCode: 2,
	}
	if unit == models.Fahrenheit {
		for i, t := range temps {
			temps[i] = t*9/5 + 32
		}
		current.Temperature = current.Temperature*9/5 + 32
		current.ApparentTemperature = current.ApparentTemperature*9/5 + 32
	}

	tz := place.Timezone
	if tz == "" || tz == models.TimezoneAuto {
		tz = "Asia/Kolkata"
	}
	return &models.Forecast{
		Timezone:    tz,
		Unit:        unit,
		Current:     current,
		HourlyTemps: temps,
		FetchedAt:   time.Now(),
	}, nil
}
