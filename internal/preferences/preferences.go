// Package preferences persists the user's display choices.
package preferences

import (
	"strings"

	"github.com/ngmaloney/weathernow/internal/models"
)

// Theme selects the colour palette
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle flips between dark and light
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme maps anything that is not "light" to the dark theme
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeLight)) {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences are the two persisted user flags
type Preferences struct {
	Unit  models.TemperatureUnit
	Theme Theme
}

// Defaults are used until the user changes something
func Defaults() Preferences {
	return Preferences{Unit: models.Celsius, Theme: ThemeDark}
}

// Store loads and saves preferences
type Store interface {
	Load() (Preferences, error)
	Save(p Preferences) error
}

// Memory is a Store that keeps preferences for the process lifetime only
type Memory struct {
	prefs Preferences
	saved bool
}

func (m *Memory) Load() (Preferences, error) {
	if !m.saved {
		return Defaults(), nil
	}
	return m.prefs, nil
}

func (m *Memory) Save(p Preferences) error {
	m.prefs = p
	m.saved = true
	return nil
}
