package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weathernow/internal/geolocation"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/openmeteo"
	"github.com/ngmaloney/weathernow/internal/preferences"
)

// clockInterval is how often the local time of the selected place refreshes
const clockInterval = time.Minute

func debounceSearch(d time.Duration, seq int, query string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

func searchPlaces(ctx context.Context, id string, s openmeteo.Searcher, query string, opts openmeteo.SearchOptions) tea.Cmd {
	return func() tea.Msg {
		places, err := s.Search(ctx, query, opts)
		return suggestionsMsg{taskID: id, query: query, places: places, err: err}
	}
}

func resolveCoordinate(ctx context.Context, id string, r PlaceResolver, c models.Coordinate) tea.Cmd {
	return func() tea.Msg {
		place, err := r.Resolve(ctx, c)
		return placeResolvedMsg{taskID: id, place: place, err: err}
	}
}

// useMyLocation reads the device position and resolves it, asking for
// nearby alternatives once the place is shown
func useMyLocation(ctx context.Context, id string, l geolocation.Locator, r PlaceResolver) tea.Cmd {
	return func() tea.Msg {
		c, err := l.Locate(ctx)
		if err != nil {
			return locationFailedMsg{taskID: id, err: err}
		}
		place, err := r.Resolve(ctx, c)
		return placeResolvedMsg{taskID: id, place: place, nearbyAt: &c, err: err}
	}
}

func loadNearby(ctx context.Context, id string, r PlaceResolver, c models.Coordinate, selected models.PlaceCandidate) tea.Cmd {
	return func() tea.Msg {
		places, err := r.Nearby(ctx, c, &selected)
		return nearbyMsg{taskID: id, places: places, err: err}
	}
}

func fetchForecast(ctx context.Context, id string, f openmeteo.ForecastFetcher, place models.ResolvedPlace, unit models.TemperatureUnit) tea.Cmd {
	return func() tea.Msg {
		forecast, err := f.Fetch(ctx, place, unit)
		return forecastMsg{taskID: id, forecast: forecast, err: err}
	}
}

func clockTick(gen int) tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg{gen: gen, at: t}
	})
}

// savePreferences persists p unless a later toggle reserved a newer generation
func savePreferences(s *preferences.Saver, gen uint64, p preferences.Preferences) tea.Cmd {
	return func() tea.Msg {
		saved, err := s.Save(gen, p)
		return prefsSavedMsg{prefs: p, saved: saved, err: err}
	}
}
