// Package nominatim is a small client for the OpenStreetMap Nominatim reverse endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ngmaloney/weathernow/internal/metrics"
	"github.com/ngmaloney/weathernow/internal/models"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "weathernow-app/1.0" // Required by Nominatim ToS

	// ZoomPrecise asks for building-level address detail
	ZoomPrecise = 20
	// ZoomCoarse asks for suburb/village-level address detail
	ZoomCoarse = 16
)

// Config configures a Client. Zero values select the defaults.
type Config struct {
	BaseURL        string
	UserAgent      string
	Language       string
	RequestsPerSec float64 // Nominatim allows at most 1
	Timeout        time.Duration
}

// Client performs reverse geocoding against Nominatim
type Client struct {
	baseURL    string
	userAgent  string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Nominatim client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
	}
}

// Reverse looks up the address at c with the given zoom level
func (n *Client) Reverse(ctx context.Context, c models.Coordinate, zoom int) (place *Place, err error) {
	start := time.Now()
	defer func() { metrics.ObserveProvider("nominatim", start, err) }()

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	params.Set("accept-language", n.language)
	params.Set("zoom", strconv.Itoa(zoom))
	params.Set("addressdetails", "1")

	reqURL := fmt.Sprintf("%s/reverse?%s", n.baseURL, params.Encode())

	// Rate limiting: Nominatim requires 1 req/sec max
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d", resp.StatusCode)
	}

	var result Place
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("nominatim: %s", result.Error)
	}

	return &result, nil
}
