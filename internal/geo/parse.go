// Package geo parses user-entered coordinates and measures distances between them.
package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ngmaloney/weathernow/internal/models"
)

var (
	// "18.5246, 73.8786", "-33.8688,151.2093"
	decimalRegex = regexp.MustCompile(`^\s*([+-]?\d{1,3}(?:\.\d+)?)\s*,\s*([+-]?\d{1,3}(?:\.\d+)?)\s*$`)

	// 16°11'07.0"N, 74°27'43.8"E, 16d11m07sN. Separators are any run of non-digits;
	// the tail after the seconds is checked by hemisphere.
	dmsRegex = regexp.MustCompile(`^(\d{1,3})\D+(\d{1,2})\D+(\d{1,2}(?:\.\d+)?)(\D*)$`)
)

// Parse converts free-form text into a coordinate. It understands decimal
// "lat,lon" and a pair of whitespace-separated DMS tokens. ok is false when
// the text is not a coordinate; callers fall back to name search.
func Parse(text string) (c models.Coordinate, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Coordinate{}, false
	}

	if m := decimalRegex.FindStringSubmatch(text); m != nil {
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lon, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && Valid(lat, lon) {
			return models.Coordinate{Latitude: lat, Longitude: lon}, true
		}
	}

	parts := strings.Fields(text)
	if len(parts) != 2 {
		return models.Coordinate{}, false
	}
	lat, ok := ParseDMS(parts[0], true)
	if !ok {
		return models.Coordinate{}, false
	}
	lon, ok := ParseDMS(parts[1], false)
	if !ok {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Latitude: lat, Longitude: lon}, true
}

// ParseDMS converts one degrees-minutes-seconds token to decimal degrees.
// S and W negate the value. Without a hemisphere letter, degrees above 90
// (latitude) or 180 (longitude) are rejected.
func ParseDMS(token string, isLat bool) (float64, bool) {
	m := dmsRegex.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, false
	}
	deg, _ := strconv.ParseFloat(m[1], 64)
	min, _ := strconv.ParseFloat(m[2], 64)
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	hemi, ok := hemisphere(m[4])
	if !ok {
		return 0, false
	}

	switch hemi {
	case "":
		if isLat && deg > 90 {
			return 0, false
		}
		if !isLat && deg > 180 {
			return 0, false
		}
	case "N", "S":
		if !isLat {
			return 0, false
		}
	case "E", "W":
		if isLat {
			return 0, false
		}
	}

	val := deg + min/60 + sec/3600
	if hemi == "S" || hemi == "W" {
		val = -val
	}

	limit := 180.0
	if isLat {
		limit = 90.0
	}
	if math.Abs(val) > limit {
		return 0, false
	}
	return val, true
}

// hemisphere extracts the hemisphere letter from the text following the
// seconds. Punctuation is ignored. A lone letter must be N, S, E or W; two
// letters are read as a seconds marker "s" followed by the hemisphere. Any
// other letters reject the token.
func hemisphere(tail string) (string, bool) {
	var letters []rune
	for _, r := range tail {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
	}
	if len(letters) == 2 && letters[0] == 'S' {
		letters = letters[1:]
	}
	switch len(letters) {
	case 0:
		return "", true
	case 1:
		if strings.ContainsRune("NSEW", letters[0]) {
			return string(letters[0]), true
		}
	}
	return "", false
}

// Valid reports whether lat/lon are finite and inside the WGS84 ranges
func Valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
