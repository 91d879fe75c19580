// Package config loads runtime settings from .env files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the application reads at startup
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	LogFile   string

	NominatimURL   string
	GeocodingURL   string
	ForecastURL    string
	UserAgent      string
	Language       string
	HTTPTimeout    time.Duration
	NominatimRPS   float64
	SearchDebounce time.Duration
	SearchCount    int
	SearchMinChars int
	NearbyCount    int
	MajorCities    []string
	MetricsAddr    string // empty disables the metrics endpoint
	DeviceLocation string // "lat,lon"; empty means unavailable
}

// Load reads .env and data/env/.env (missing files are ignored) and then
// builds a Config from the environment. Variables already set win over
// values in the files.
func Load() Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() Config {
	return Config{
		DBPath:    getString("WEATHERNOW_DB_PATH", filepath.Join("data", "weathernow.db")),
		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "text"),
		LogFile:   getString("LOG_FILE", filepath.Join("data", "weathernow.log")),

		NominatimURL:   getString("NOMINATIM_URL", ""),
		GeocodingURL:   getString("OPEN_METEO_GEOCODING_URL", ""),
		ForecastURL:    getString("OPEN_METEO_FORECAST_URL", ""),
		UserAgent:      getString("WEATHERNOW_USER_AGENT", "weathernow-app/1.0"),
		Language:       getString("WEATHERNOW_LANGUAGE", "en"),
		HTTPTimeout:    time.Duration(getInt("HTTP_TIMEOUT_S", 10)) * time.Second,
		NominatimRPS:   getFloat("NOMINATIM_RPS", 1),
		SearchDebounce: time.Duration(getInt("SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		SearchCount:    getInt("SEARCH_COUNT", 6),
		SearchMinChars: getInt("SEARCH_MIN_CHARS", 2),
		NearbyCount:    getInt("NEARBY_COUNT", 10),
		MajorCities:    getList("MAJOR_CITIES", []string{"Pune", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata"}),
		MetricsAddr:    getString("METRICS_ADDR", ""),
		DeviceLocation: getString("DEVICE_LOCATION", ""),
	}
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

// getInt falls back to def for missing, malformed or negative values
func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

// getList splits a comma-separated value. An explicitly empty value yields
// an empty, non-nil list.
func getList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
