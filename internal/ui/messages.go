package ui

import (
	"time"

	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/preferences"
)

// Message types for async operations. Results carry the ID of the task that
// produced them; the model drops any whose task is no longer current.

// locationUnavailableText is shown when the device position cannot be read
const locationUnavailableText = "Unable to get location"

// debounceMsg fires after the typing pause; only the latest sequence searches
type debounceMsg struct {
	seq   int
	query string
}

// suggestionsMsg is sent when a name search completes
type suggestionsMsg struct {
	taskID string
	query  string
	places []models.PlaceCandidate
	err    error
}

// placeResolvedMsg is sent when a coordinate has been resolved to a place.
// nearbyAt is set when alternatives around the position should be loaded.
type placeResolvedMsg struct {
	taskID   string
	place    models.ResolvedPlace
	nearbyAt *models.Coordinate
	err      error
}

// locationFailedMsg is sent when the device position is unavailable
type locationFailedMsg struct {
	taskID string
	err    error
}

// nearbyMsg carries alternatives around the device position
type nearbyMsg struct {
	taskID string
	places []models.PlaceCandidate
	err    error
}

// forecastMsg is sent when weather for the selected place has been fetched
type forecastMsg struct {
	taskID   string
	forecast *models.Forecast
	err      error
}

// clockTickMsg refreshes the local time of the selection it was started for
type clockTickMsg struct {
	gen int
	at  time.Time
}

// prefsSavedMsg reports the outcome of persisting preferences
type prefsSavedMsg struct {
	prefs preferences.Preferences
	saved bool // false when superseded by a newer change
	err   error
}
