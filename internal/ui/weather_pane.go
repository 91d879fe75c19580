package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/weathernow/internal/models"
)

const (
	historyHours    = 24
	sparklineWidth  = 48
	sparklineHeight = 3
)

// renderWeatherPane renders the selected place and its current conditions
func (m Model) renderWeatherPane() string {
	if m.place == nil {
		return m.styles.muted.Render("Search a city to see current weather.")
	}

	var content strings.Builder

	content.WriteString(m.styles.title.Render(m.place.Label()))
	content.WriteString("\n")
	content.WriteString(m.styles.muted.Render(models.CoordinateLabel(m.place.Latitude, m.place.Longitude)))
	content.WriteString("\n")

	if nearby := m.renderNearby(); nearby != "" {
		content.WriteString("\n")
		content.WriteString(nearby)
		content.WriteString("\n")
	}

	if m.localTime != "" {
		content.WriteString("\n")
		content.WriteString(m.styles.label.Render("Local time: "))
		content.WriteString(m.styles.value.Render(m.localTime))
		content.WriteString("\n")
	}

	if m.loadingWeather {
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s Loading weather...", m.spinner.View()))
		return m.styles.card.Render(content.String())
	}

	if m.forecast == nil {
		return m.styles.card.Render(content.String())
	}

	symbol := m.forecast.Unit.Symbol()
	if temps := m.forecast.LastTemps(historyHours); len(temps) > 0 {
		lo, hi := slices.Min(temps), slices.Max(temps)
		content.WriteString("\n")
		content.WriteString(m.styles.label.Render("Past 24h  "))
		content.WriteString(m.styles.muted.Render(fmt.Sprintf("%.0f%s – %.0f%s", lo, symbol, hi, symbol)))
		content.WriteString("\n")
		content.WriteString(m.styles.sparkline.Render(renderSparkline(temps, sparklineWidth, sparklineHeight)))
		content.WriteString("\n")
	}

	cur := m.forecast.Current
	content.WriteString("\n")
	content.WriteString(metricLine(m, "Temperature", fmt.Sprintf("%.1f%s", cur.Temperature, symbol),
		"Feels like", fmt.Sprintf("%.1f%s", cur.ApparentTemperature, symbol)))
	content.WriteString("\n")
	content.WriteString(metricLine(m, "Humidity", fmt.Sprintf("%.0f%%", cur.RelativeHumidity),
		"Wind", fmt.Sprintf("%.1f km/h", cur.WindSpeed)))
	content.WriteString("\n\n")
	content.WriteString(m.styles.value.Bold(true).Render(cur.Description()))

	if !m.forecast.FetchedAt.IsZero() {
		content.WriteString("\n")
		content.WriteString(m.styles.muted.Render("Updated " + humanize.RelTime(m.forecast.FetchedAt, m.now(), "ago", "from now")))
	}

	return m.styles.card.Render(content.String())
}

func metricLine(m Model, l1, v1, l2, v2 string) string {
	return fmt.Sprintf("%s %s   %s %s",
		m.styles.label.Render(l1+":"), m.styles.value.Render(v1),
		m.styles.label.Render(l2+":"), m.styles.value.Render(v2),
	)
}

// renderSparkline draws the series scaled between its own minimum and maximum.
// Values are shifted above zero since the chart's baseline is zero.
func renderSparkline(values []float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	lo := slices.Min(values)

	sl := sparkline.New(width, height)
	shifted := make([]float64, len(values))
	for i, v := range values {
		shifted[i] = v - lo + 1
	}
	sl.PushAll(shifted)
	sl.Draw()
	return sl.View()
}
