package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weathernow/internal/config"
	"github.com/ngmaloney/weathernow/internal/database"
	"github.com/ngmaloney/weathernow/internal/geolocation"
	"github.com/ngmaloney/weathernow/internal/logger"
	"github.com/ngmaloney/weathernow/internal/metrics"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/nominatim"
	"github.com/ngmaloney/weathernow/internal/openmeteo"
	"github.com/ngmaloney/weathernow/internal/preferences"
	"github.com/ngmaloney/weathernow/internal/resolver"
	"github.com/ngmaloney/weathernow/internal/ui"
)

func main() {
	location := flag.String("location", "", "Place name or coordinates to look up on start (e.g. \"Pune\" or \"16.1853, 74.4622\")")
	at := flag.String("at", "", "Device location used by Ctrl+L, as \"lat,lon\" (overrides DEVICE_LOCATION)")
	unit := flag.String("unit", "", "Temperature unit to use and remember: celsius or fahrenheit")
	theme := flag.String("theme", "", "Colour theme to use and remember: dark or light")
	flag.Parse()

	if *unit != "" && *unit != string(models.Celsius) && *unit != string(models.Fahrenheit) {
		fmt.Println("Error: --unit must be celsius or fahrenheit.")
		os.Exit(1)
	}
	if *theme != "" && *theme != string(preferences.ThemeDark) && *theme != string(preferences.ThemeLight) {
		fmt.Println("Error: --theme must be dark or light.")
		os.Exit(1)
	}

	cfg := config.Load()

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	l := logger.Setup(cfg.LogLevel, cfg.LogFormat, logFile)
	l.Info("startup", "db", cfg.DBPath, "metrics", cfg.MetricsAddr)

	if err := database.EnsureUserSchema(cfg.DBPath); err != nil {
		fmt.Printf("Error preparing database: %v\n", err)
		os.Exit(1)
	}
	store := preferences.NewRepository(cfg.DBPath)
	if err := applyPreferenceFlags(store, *unit, *theme); err != nil {
		l.Warn("preferences_flags_failed", "err", err)
	}

	if cfg.MetricsAddr != "" {
		srv := startMetrics(cfg.MetricsAddr, l)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	device := cfg.DeviceLocation
	if *at != "" {
		device = *at
	}
	locator := geolocation.NewStatic(device)
	switch {
	case locator.Available():
	case *at != "":
		fmt.Println("Error: --at must be \"lat,lon\" or a DMS pair.")
		os.Exit(1)
	default:
		l.Info("device_location_unset", "configured", device != "")
	}

	geocoder := nominatim.NewClient(nominatim.Config{
		BaseURL:        cfg.NominatimURL,
		UserAgent:      cfg.UserAgent,
		Language:       cfg.Language,
		RequestsPerSec: cfg.NominatimRPS,
		Timeout:        cfg.HTTPTimeout,
	})

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	geocodingURL := cfg.GeocodingURL
	if geocodingURL == "" {
		geocodingURL = openmeteo.DefaultGeocodingURL
	}
	forecastURL := cfg.ForecastURL
	if forecastURL == "" {
		forecastURL = openmeteo.DefaultForecastURL
	}

	m := ui.NewModel(ui.Options{
		Searcher:   openmeteo.NewSearchClientWithHTTP(httpClient, geocodingURL),
		Forecaster: openmeteo.NewForecastClientWithHTTP(httpClient, forecastURL),
		Resolver: resolver.New(geocoder, resolver.Options{
			Observer:    resolver.SlogObserver{Logger: l},
			MajorCities: cfg.MajorCities,
			NearbyCount: cfg.NearbyCount,
		}),
		Locator:      locator,
		Preferences:  store,
		Logger:       l,
		Debounce:     cfg.SearchDebounce,
		SearchCount:  cfg.SearchCount,
		MinChars:     cfg.SearchMinChars,
		Language:     cfg.Language,
		InitialQuery: *location,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// applyPreferenceFlags stores the unit and theme given on the command line
func applyPreferenceFlags(store preferences.Store, unit, theme string) error {
	if unit == "" && theme == "" {
		return nil
	}
	prefs, err := store.Load()
	if err != nil {
		return err
	}
	if unit != "" {
		prefs.Unit = models.ParseTemperatureUnit(unit)
	}
	if theme != "" {
		prefs.Theme = preferences.ParseTheme(theme)
	}
	return store.Save(prefs)
}

// startMetrics serves Prometheus metrics in the background
func startMetrics(addr string, l *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           logger.AccessMiddleware(l, "/metrics")(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("metrics_server_failed", "addr", addr, "err", err)
		}
	}()
	l.Info("metrics_server_started", "addr", addr)
	return srv
}
