package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/weathernow/internal/metrics"
	"github.com/ngmaloney/weathernow/internal/models"
)

// currentFields are requested in this order; the response echoes them by name.
var currentFields = []string{
	"temperature_2m",
	"apparent_temperature",
	"is_day",
	"precipitation",
	"wind_speed_10m",
	"wind_direction_10m",
	"relative_humidity_2m",
	"weather_code",
}

// ForecastClient implements ForecastFetcher using the Open-Meteo forecast API
type ForecastClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewForecastClient creates a new forecast client
func NewForecastClient() *ForecastClient {
	return NewForecastClientWithHTTP(&http.Client{Timeout: 30 * time.Second}, DefaultForecastURL)
}

// NewForecastClientWithHTTP creates a forecast client with a custom HTTP client and base URL
func NewForecastClientWithHTTP(client *http.Client, baseURL string) *ForecastClient {
	return &ForecastClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

type forecastResponse struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Current          struct {
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		Precipitation       float64 `json:"precipitation"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Temperature []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// Fetch retrieves current conditions and hourly temperatures for place
func (c *ForecastClient) Fetch(ctx context.Context, place models.PlaceCandidate, unit models.TemperatureUnit) (forecast *models.Forecast, err error) {
	start := time.Now()
	defer func() { metrics.ObserveProvider("open-meteo-forecast", start, err) }()

	tz := place.Timezone
	if tz == "" {
		tz = models.TimezoneAuto
	}
	unit = models.ParseTemperatureUnit(string(unit))

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	params.Set("current", strings.Join(currentFields, ","))
	params.Set("hourly", "temperature_2m")
	params.Set("timezone", tz)
	params.Set("temperature_unit", string(unit))
	params.Set("wind_speed_unit", "kmh")

	reqURL := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "Weather", StatusCode: resp.StatusCode}
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	forecast = &models.Forecast{
		Timezone:         data.Timezone,
		UTCOffsetSeconds: data.UTCOffsetSeconds,
		Unit:             unit,
		Current: models.CurrentConditions{
			Temperature:         data.Current.Temperature,
			ApparentTemperature: data.Current.ApparentTemperature,
			IsDay:               data.Current.IsDay == 1,
			Precipitation:       data.Current.Precipitation,
			WindSpeed:           data.Current.WindSpeed,
			WindDirection:       data.Current.WindDirection,
			RelativeHumidity:    data.Current.RelativeHumidity,
			WeatherCode:         data.Current.WeatherCode,
		},
		HourlyTemps: make([]float64, 0, len(data.Hourly.Temperature)),
		FetchedAt:   time.Now(),
	}
	// Gaps in the series are dropped rather than plotted as zero
	for _, t := range data.Hourly.Temperature {
		if t != nil {
			forecast.HourlyTemps = append(forecast.HourlyTemps, *t)
		}
	}

	return forecast, nil
}
