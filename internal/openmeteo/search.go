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
	"github.com/patrickmn/go-cache"
)

// SearchOptions tunes a name search
type SearchOptions struct {
	Count    int    // default 5
	Language string // default "en"
}

// SearchClient implements Searcher against the Open-Meteo geocoding API
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewSearchClient creates a search client with default settings
func NewSearchClient() *SearchClient {
	return NewSearchClientWithHTTP(&http.Client{Timeout: 10 * time.Second}, DefaultGeocodingURL)
}

// NewSearchClientWithHTTP creates a search client with a custom HTTP client and base URL
func NewSearchClientWithHTTP(client *http.Client, baseURL string) *SearchClient {
	return &SearchClient{
		baseURL:    baseURL,
		httpClient: client,
		// Suggestions are memoized for the session only
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	FeatureCode string  `json:"feature_code"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
	Population  int64   `json:"population"`
}

// Search converts a free-text query to candidates. Empty queries return no
// results without a request.
func (c *SearchClient) Search(ctx context.Context, query string, opts SearchOptions) (places []models.PlaceCandidate, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PlaceCandidate{}, nil
	}
	if opts.Count <= 0 {
		opts.Count = 5
	}
	if opts.Language == "" {
		opts.Language = "en"
	}

	cacheKey := fmt.Sprintf("%s|%d|%s", strings.ToLower(query), opts.Count, opts.Language)
	if cached, found := c.cache.Get(cacheKey); found {
		metrics.SearchCacheHitsTotal.Inc()
		return append([]models.PlaceCandidate(nil), cached.([]models.PlaceCandidate)...), nil
	}

	start := time.Now()
	defer func() { metrics.ObserveProvider("open-meteo-search", start, err) }()

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(opts.Count))
	params.Set("language", opts.Language)
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s/v1/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "Geocoding", StatusCode: resp.StatusCode}
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	places = make([]models.PlaceCandidate, 0, len(data.Results))
	for _, r := range data.Results {
		places = append(places, models.PlaceCandidate{
			ID:          models.PlaceID(r.Latitude, r.Longitude),
			Name:        r.Name,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Admin1:      r.Admin1,
			Timezone:    r.Timezone,
			Source:      models.SourceNameSearch,
			FeatureCode: r.FeatureCode,
			Population:  r.Population,
		})
	}

	c.cache.Set(cacheKey, append([]models.PlaceCandidate(nil), places...), cache.DefaultExpiration)
	return places, nil
}
