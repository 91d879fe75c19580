package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weathernow/internal/geolocation"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/openmeteo"
	"github.com/ngmaloney/weathernow/internal/preferences"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]models.PlaceCandidate
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, opts openmeteo.SearchOptions) ([]models.PlaceCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

type fakeForecaster struct {
	mu       sync.Mutex
	forecast *models.Forecast
	err      error
	units    []models.TemperatureUnit
	places   []string
}

func (f *fakeForecaster) Fetch(ctx context.Context, place models.PlaceCandidate, unit models.TemperatureUnit) (*models.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units = append(f.units, unit)
	f.places = append(f.places, place.Name)
	if f.err != nil {
		return nil, f.err
	}
	fc := *f.forecast
	fc.Unit = unit
	return &fc, nil
}

type fakeResolver struct {
	mu       sync.Mutex
	place    models.PlaceCandidate
	nearby   []models.PlaceCandidate
	err      error
	resolved []models.Coordinate
}

func (f *fakeResolver) Resolve(ctx context.Context, c models.Coordinate) (models.PlaceCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, c)
	if f.err != nil {
		return models.PlaceCandidate{}, f.err
	}
	p := f.place
	p.Latitude, p.Longitude = c.Latitude, c.Longitude
	return p, nil
}

func (f *fakeResolver) Nearby(ctx context.Context, c models.Coordinate, selected *models.PlaceCandidate) ([]models.PlaceCandidate, error) {
	return f.nearby, nil
}

var (
	pune = models.PlaceCandidate{
		ID: "18.5196,73.8554", Name: "Pune", Latitude: 18.51957, Longitude: 73.85535,
		Country: "India", CountryCode: "IN", Admin1: "Maharashtra", Timezone: "Asia/Kolkata",
		Source: models.SourceNameSearch, FeatureCode: "PPLA2", Population: 3124458,
	}
	punjab = models.PlaceCandidate{
		ID: "31.0000,75.5000", Name: "Punjab", Latitude: 31, Longitude: 75.5,
		Country: "Pakistan", Admin1: "Punjab", Timezone: "Asia/Karachi", Source: models.SourceNameSearch,
	}
	basardge = models.PlaceCandidate{
		Name: "Basardge, Gadhinglaj, Kolhapur", Country: "India", CountryCode: "IN",
		Admin1: "Maharashtra", Timezone: models.TimezoneAuto, Source: models.SourceReversePrecise,
	}
)

func testForecast() *models.Forecast {
	temps := make([]float64, 30)
	for i := range temps {
		temps[i] = 20 + float64(i%10)
	}
	return &models.Forecast{
		Timezone:         "Asia/Kolkata",
		UTCOffsetSeconds: 19800,
		Current: models.CurrentConditions{
			Temperature: 27.4, ApparentTemperature: 29.1, IsDay: true,
			WindSpeed: 11.2, WindDirection: 240, RelativeHumidity: 62, WeatherCode: 2,
		},
		HourlyTemps: temps,
	}
}

type fixture struct {
	searcher   *fakeSearcher
	forecaster *fakeForecaster
	resolver   *fakeResolver
	store      *preferences.Memory
}

func newFixture() *fixture {
	return &fixture{
		searcher: &fakeSearcher{results: map[string][]models.PlaceCandidate{
			"Pun":  {pune, punjab},
			"Pune": {pune},
		}},
		forecaster: &fakeForecaster{forecast: testForecast()},
		resolver:   &fakeResolver{place: basardge},
		store:      &preferences.Memory{},
	}
}

func (f *fixture) model(location string) Model {
	m := NewModel(Options{
		Searcher:    f.searcher,
		Forecaster:  f.forecaster,
		Resolver:    f.resolver,
		Locator:     geolocation.NewStatic(location),
		Preferences: f.store,
		Debounce:    time.Millisecond,
	})
	m.now = func() time.Time { return time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC) }
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs cmd, expanding batches, and returns the messages produced
// promptly. Timer-driven commands (ticks, cursor blink) are left behind.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// settle feeds every promptly produced message back into the model until
// nothing is left, returning the final model
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := drain(t, cmd)
	for i := 0; i < 50 && len(queue) > 0; i++ {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case debounceMsg, suggestionsMsg, placeResolvedMsg, locationFailedMsg, nearbyMsg, forecastMsg, prefsSavedMsg:
		default:
			continue
		}
		var next tea.Cmd
		m, next = update(m, msg)
		queue = append(queue, drain(t, next)...)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}
