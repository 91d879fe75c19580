package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/weathernow/internal/geo"
	"github.com/ngmaloney/weathernow/internal/geolocation"
	"github.com/ngmaloney/weathernow/internal/logger"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/openmeteo"
	"github.com/ngmaloney/weathernow/internal/preferences"
	"github.com/ngmaloney/weathernow/internal/resolver"
	"github.com/ngmaloney/weathernow/internal/task"
)

// PlaceResolver turns coordinates into named places
type PlaceResolver interface {
	Resolve(ctx context.Context, c models.Coordinate) (models.PlaceCandidate, error)
	Nearby(ctx context.Context, c models.Coordinate, selected *models.PlaceCandidate) ([]models.PlaceCandidate, error)
}

// Options wires the model to its collaborators
type Options struct {
	Searcher    openmeteo.Searcher
	Forecaster  openmeteo.ForecastFetcher
	Resolver    PlaceResolver
	Locator     geolocation.Locator
	Preferences preferences.Store
	Logger      *slog.Logger

	Debounce    time.Duration
	SearchCount int
	MinChars    int
	Language    string

	// InitialQuery is searched (or resolved, for coordinates) on start
	InitialQuery string
}

// Model represents the application's state
type Model struct {
	width  int
	height int
	err    string

	prefs  preferences.Preferences
	styles styles

	// Search
	searchInput    textinput.Model
	suggestions    []models.PlaceCandidate
	activeIndex    int
	loadingSuggest bool
	debounceSeq    int
	lastSearched   string // query of the last completed search

	// Selection
	place          *models.ResolvedPlace
	forecast       *models.Forecast
	nearby         []models.PlaceCandidate
	loadingPlace   bool
	loadingWeather bool
	localTime      string
	clockGen       int

	spinner spinner.Model

	// Collaborators
	searcher   openmeteo.Searcher
	forecaster openmeteo.ForecastFetcher
	resolver   PlaceResolver
	locator    geolocation.Locator
	saver      *preferences.Saver
	logger     *slog.Logger

	// One in-flight task per kind; starting a new one supersedes the last
	searchTask   *task.Tracker
	resolveTask  *task.Tracker
	nearbyTask   *task.Tracker
	forecastTask *task.Tracker

	debounce     time.Duration
	searchOpts   openmeteo.SearchOptions
	minChars     int
	initialQuery string
	now          func() time.Time
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.SearchCount <= 0 {
		opts.SearchCount = 6
	}
	if opts.MinChars <= 0 {
		opts.MinChars = 2
	}
	if opts.Preferences == nil {
		opts.Preferences = &preferences.Memory{}
	}
	if opts.Locator == nil {
		opts.Locator = geolocation.NewStatic("")
	}
	if opts.Logger == nil {
		opts.Logger = logger.L()
	}

	prefs, err := opts.Preferences.Load()
	if err != nil {
		opts.Logger.Warn("preferences_load_failed", "err", err)
		prefs = preferences.Defaults()
	}

	ti := textinput.New()
	ti.Placeholder = "e.g., Hyderabad, London, 16.1853, 74.4622"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.SetValue(opts.InitialQuery)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		prefs:        prefs,
		searchInput:  ti,
		activeIndex:  -1,
		spinner:      s,
		searcher:     opts.Searcher,
		forecaster:   opts.Forecaster,
		resolver:     opts.Resolver,
		locator:      opts.Locator,
		saver:        preferences.NewSaver(opts.Preferences),
		logger:       opts.Logger,
		searchTask:   &task.Tracker{},
		resolveTask:  &task.Tracker{},
		nearbyTask:   &task.Tracker{},
		forecastTask: &task.Tracker{},
		debounce:     opts.Debounce,
		searchOpts:   openmeteo.SearchOptions{Count: opts.SearchCount, Language: opts.Language},
		minChars:     opts.MinChars,
		initialQuery: strings.TrimSpace(opts.InitialQuery),
		now:          time.Now,
	}
	m.applyTheme()
	return m
}

// Init starts the cursor, the spinner and any initial lookup
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}

	if q := m.initialQuery; q != "" {
		if c, ok := geo.Parse(q); ok {
			ctx, id := m.resolveTask.Start(context.Background())
			cmds = append(cmds, resolveCoordinate(ctx, id, m.resolver, c))
		} else if len([]rune(q)) >= m.minChars {
			cmds = append(cmds, func() tea.Msg { return debounceMsg{seq: 0, query: q} })
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		// A newer keystroke restarted the timer
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		ctx, id := m.searchTask.Start(context.Background())
		m.loadingSuggest = true
		return m, searchPlaces(ctx, id, m.searcher, msg.query, m.searchOpts)

	case suggestionsMsg:
		if !m.searchTask.IsCurrent(msg.taskID) {
			return m, nil
		}
		m.searchTask.Finish(msg.taskID)
		m.loadingSuggest = false
		m.lastSearched = msg.query
		m.activeIndex = -1
		if msg.err != nil {
			m.logger.Warn("search_failed", "query", msg.query, "err", msg.err)
			m.suggestions = nil
			return m, nil
		}
		m.suggestions = msg.places
		return m, nil

	case placeResolvedMsg:
		if !m.resolveTask.IsCurrent(msg.taskID) {
			return m, nil
		}
		m.resolveTask.Finish(msg.taskID)
		m.loadingPlace = false
		if msg.err != nil {
			m.logger.Warn("resolve_failed", "err", msg.err)
			m.err = msg.err.Error()
			return m, nil
		}
		cmd := m.selectPlace(msg.place)
		if msg.nearbyAt != nil {
			ctx, id := m.nearbyTask.Start(context.Background())
			cmd = tea.Batch(cmd, loadNearby(ctx, id, m.resolver, *msg.nearbyAt, msg.place))
		}
		return m, cmd

	case locationFailedMsg:
		if !m.resolveTask.IsCurrent(msg.taskID) {
			return m, nil
		}
		m.resolveTask.Finish(msg.taskID)
		m.loadingPlace = false
		m.logger.Info("location_unavailable", "err", msg.err)
		m.err = locationUnavailableText
		return m, nil

	case nearbyMsg:
		if !m.nearbyTask.IsCurrent(msg.taskID) {
			return m, nil
		}
		m.nearbyTask.Finish(msg.taskID)
		if msg.err != nil {
			m.logger.Warn("nearby_failed", "err", msg.err)
			m.nearby = nil
			return m, nil
		}
		m.nearby = msg.places
		return m, nil

	case forecastMsg:
		if !m.forecastTask.IsCurrent(msg.taskID) {
			return m, nil
		}
		m.forecastTask.Finish(msg.taskID)
		m.loadingWeather = false
		if msg.err != nil {
			m.logger.Warn("forecast_failed", "err", msg.err)
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.forecast = msg.forecast
		m.localTime = m.formatLocalTime(m.now())
		return m, nil

	case clockTickMsg:
		// Started for a previous selection
		if msg.gen != m.clockGen || m.place == nil {
			return m, nil
		}
		m.localTime = m.formatLocalTime(msg.at)
		return m, clockTick(m.clockGen)

	case prefsSavedMsg:
		switch {
		case msg.err != nil:
			m.logger.Warn("preferences_save_failed", "err", msg.err)
		case !msg.saved:
			m.logger.Debug("preferences_save_superseded", "unit", msg.prefs.Unit, "theme", msg.prefs.Theme)
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "down":
		if n := len(m.suggestions); n > 0 {
			m.activeIndex = (m.activeIndex + 1) % n
		}
		return m, nil

	case "up":
		if n := len(m.suggestions); n > 0 {
			if m.activeIndex < 0 {
				m.activeIndex = n - 1
			} else {
				m.activeIndex = (m.activeIndex - 1 + n) % n
			}
		}
		return m, nil

	case "enter":
		return m.handleEnter()

	case "esc":
		m.suggestions = nil
		m.activeIndex = -1
		m.nearby = nil
		m.searchTask.Cancel()
		m.loadingSuggest = false
		m.debounceSeq++
		return m, nil

	case "ctrl+l":
		m.err = ""
		m.loadingPlace = true
		ctx, id := m.resolveTask.Start(context.Background())
		return m, useMyLocation(ctx, id, m.locator, m.resolver)

	case "ctrl+u":
		m.prefs.Unit = m.prefs.Unit.Toggle()
		cmds := []tea.Cmd{savePreferences(m.saver, m.saver.Next(), m.prefs)}
		if m.place != nil {
			cmds = append(cmds, m.startForecast())
		}
		return m, tea.Batch(cmds...)

	case "ctrl+t":
		m.prefs.Theme = m.prefs.Theme.Toggle()
		m.applyTheme()
		return m, savePreferences(m.saver, m.saver.Next(), m.prefs)

	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		alts := m.visibleNearby()
		i := int(msg.Runes[0] - '1')
		if i < len(alts) {
			cmd := m.selectPlace(alts[i])
			return m, cmd
		}
		return m, nil
	}

	// Update text input
	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	searchCmd := m.queryChanged()
	return m, tea.Batch(cmd, searchCmd)
}

// handleEnter resolves typed coordinates, otherwise confirms the highlighted suggestion
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if c, ok := geo.Parse(m.searchInput.Value()); ok {
		m.err = ""
		m.loadingPlace = true
		ctx, id := m.resolveTask.Start(context.Background())
		return m, resolveCoordinate(ctx, id, m.resolver, c)
	}

	if m.activeIndex >= 0 && m.activeIndex < len(m.suggestions) {
		cmd := m.selectPlace(m.suggestions[m.activeIndex])
		return m, cmd
	}
	return m, nil
}

// queryChanged restarts the debounce timer for the current input
func (m *Model) queryChanged() tea.Cmd {
	m.err = ""
	m.activeIndex = -1
	m.debounceSeq++
	m.searchTask.Cancel()

	q := m.searchInput.Value()
	if len([]rune(strings.TrimSpace(q))) < m.minChars {
		m.suggestions = nil
		m.loadingSuggest = false
		return nil
	}
	m.loadingSuggest = true
	return debounceSearch(m.debounce, m.debounceSeq, q)
}

// selectPlace makes p the current place, fetches its weather and restarts the clock
func (m *Model) selectPlace(p models.ResolvedPlace) tea.Cmd {
	m.place = &p
	m.forecast = nil
	m.err = ""

	label := p.Label()
	if label == "" {
		label = p.DisplayName()
	}
	m.searchInput.SetValue(label)
	m.searchInput.CursorEnd()

	m.suggestions = nil
	m.activeIndex = -1
	m.loadingSuggest = false
	m.debounceSeq++
	m.searchTask.Cancel()

	m.nearby = nil
	m.nearbyTask.Cancel()

	m.clockGen++
	m.localTime = m.formatLocalTime(m.now())

	m.logger.Info("place_selected", "label", label, "source", string(p.Source))
	return tea.Batch(m.startForecast(), clockTick(m.clockGen))
}

func (m *Model) startForecast() tea.Cmd {
	m.loadingWeather = true
	ctx, id := m.forecastTask.Start(context.Background())
	return fetchForecast(ctx, id, m.forecaster, *m.place, m.prefs.Unit)
}

// visibleNearby filters alternatives against the current selection
func (m Model) visibleNearby() []models.PlaceCandidate {
	exclude := ""
	if m.place != nil {
		exclude = m.place.Label()
	}
	return resolver.FilterNearby(m.nearby, exclude, maxNearbyShown)
}

// formatLocalTime renders t in the selected place's zone, empty when unknown
func (m Model) formatLocalTime(t time.Time) string {
	if m.place == nil {
		return ""
	}
	var loc *time.Location
	if tz := m.place.Timezone; tz != "" && tz != models.TimezoneAuto {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	if loc == nil && m.forecast != nil {
		loc = m.forecast.Location()
	}
	if loc == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

func (m *Model) applyTheme() {
	m.styles = newStyles(m.prefs.Theme)
	m.spinner.Style = m.styles.spinner
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	title := m.styles.title.Render("☁ WeatherNow")
	unit := m.styles.muted.Render(fmt.Sprintf("%s · %s theme", m.prefs.Unit.Symbol(), m.prefs.Theme))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", unit))
	sections = append(sections, m.styles.subtitle.Render("Current weather for any city or coordinate"))
	sections = append(sections, "")
	sections = append(sections, m.styles.searchBox.Render(m.searchInput.View()))

	switch {
	case m.loadingSuggest:
		sections = append(sections, fmt.Sprintf("%s %s", m.spinner.View(), m.styles.muted.Render("Searching...")))
	case len(m.suggestions) > 0:
		sections = append(sections, m.renderSuggestions())
	case m.showNoMatches():
		sections = append(sections, m.styles.muted.Render("No matches"))
	}

	if m.err != "" {
		sections = append(sections, "", m.styles.errorBanner.Render("✗ "+m.err))
	}

	if m.loadingPlace {
		sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), m.styles.muted.Render("Finding place...")))
	}

	sections = append(sections, "", m.renderWeatherPane())

	help := m.styles.help.Render("↑/↓: Select • Enter: Confirm • Ctrl+L: Use my location • Ctrl+U: °C/°F • Ctrl+T: Theme • Ctrl+C: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// showNoMatches reports whether the last completed search for the current query found nothing
func (m Model) showNoMatches() bool {
	q := m.searchInput.Value()
	if len([]rune(strings.TrimSpace(q))) < m.minChars {
		return false
	}
	return m.lastSearched == q
}
