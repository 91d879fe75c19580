package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/weathernow/internal/models"
)

// maxNearbyShown limits the "Did you mean" list
const maxNearbyShown = 5

// suggestionItem wraps a PlaceCandidate for display in the suggestion list
type suggestionItem struct {
	place models.PlaceCandidate
}

// Title is the place name
func (s suggestionItem) Title() string {
	return s.place.Name
}

// Description is the region plus population when known
func (s suggestionItem) Description() string {
	desc := s.place.Region()
	if s.place.Population > 0 {
		pop := "pop. " + humanize.Comma(s.place.Population)
		if desc == "" {
			return pop
		}
		desc += " · " + pop
	}
	return desc
}

// renderSuggestions draws the suggestion list with the active row highlighted
func (m Model) renderSuggestions() string {
	var b strings.Builder
	for i, p := range m.suggestions {
		item := suggestionItem{place: p}
		if i == m.activeIndex {
			b.WriteString(m.styles.activeSuggest.Render("› " + item.Title()))
		} else {
			b.WriteString(m.styles.suggestion.Render("  " + item.Title()))
		}
		if d := item.Description(); d != "" {
			b.WriteString("  " + m.styles.muted.Render(d))
		}
		if i < len(m.suggestions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderNearby draws alternatives around the device position. A single
// alternative is offered directly; several are listed with their shortcut.
func (m Model) renderNearby() string {
	alts := m.visibleNearby()
	switch len(alts) {
	case 0:
		return ""
	case 1:
		return m.styles.value.Render("Set to: "+alts[0].Label()) + "  " + m.styles.muted.Render("(alt+1)")
	}

	lines := []string{m.styles.label.Render("Did you mean:")}
	for i, p := range alts {
		lines = append(lines, fmt.Sprintf("  %s %s",
			m.styles.muted.Render(fmt.Sprintf("alt+%d", i+1)),
			m.styles.value.Render(p.Label()),
		))
	}
	return strings.Join(lines, "\n")
}
