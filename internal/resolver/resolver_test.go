package resolver

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/nominatim"
)

type reply struct {
	place *nominatim.Place
	err   error
}

// fakeGeocoder answers by zoom level and records the calls it received
type fakeGeocoder struct {
	mu      sync.Mutex
	replies map[int]reply
	calls   []int
}

func (f *fakeGeocoder) Reverse(ctx context.Context, c models.Coordinate, zoom int) (*nominatim.Place, error) {
	f.mu.Lock()
	f.calls = append(f.calls, zoom)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := f.replies[zoom]
	if !ok {
		return nil, errors.New("no reply configured")
	}
	return r.place, r.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (o *recordingObserver) Debug(msg string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, msg)
}

func (o *recordingObserver) has(msg string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range o.events {
		if e == msg {
			return true
		}
	}
	return false
}

var basardge = models.Coordinate{Latitude: 16.18531, Longitude: 74.46223}

func basardgePlace() *nominatim.Place {
	return &nominatim.Place{
		AddressType: "village",
		Name:        "Basardge",
		Address: nominatim.Address{
			Village: "Basardge", County: "Gadhinglaj", StateDistrict: "Kolhapur",
			State: "Maharashtra", Country: "India", CountryCode: "in",
		},
	}
}

func TestResolvePrecise(t *testing.T) {
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomPrecise: {place: basardgePlace()},
		nominatim.ZoomCoarse: {place: &nominatim.Place{
			AddressType: "county",
			Address:     nominatim.Address{County: "Gadhinglaj", StateDistrict: "Kolhapur", Country: "India", CountryCode: "in"},
		}},
	}}
	r := New(geocoder, Options{})

	place, err := r.Resolve(context.Background(), basardge)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if place.Name != "Basardge, Gadhinglaj, Kolhapur" {
		t.Errorf("expected hierarchical name, got %q", place.Name)
	}
	if place.Source != models.SourceReversePrecise {
		t.Errorf("expected precise source, got %s", place.Source)
	}
	if place.Admin1 != "Maharashtra" {
		t.Errorf("expected admin1 Maharashtra, got %q", place.Admin1)
	}
	if place.CountryCode != "IN" {
		t.Errorf("expected country code IN, got %q", place.CountryCode)
	}
	if place.Timezone != models.TimezoneAuto {
		t.Errorf("expected auto timezone, got %q", place.Timezone)
	}
	if place.Latitude != basardge.Latitude || place.Longitude != basardge.Longitude {
		t.Errorf("expected queried coordinates, got %v,%v", place.Latitude, place.Longitude)
	}
	if place.ID != "16.1853,74.4622" {
		t.Errorf("unexpected id %q", place.ID)
	}
	if len(geocoder.calls) != 2 {
		t.Errorf("expected both tiers queried, got %v", geocoder.calls)
	}
}

func TestResolveCoarseWhenPreciseFails(t *testing.T) {
	obs := &recordingObserver{}
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomPrecise: {err: errors.New("timeout")},
		nominatim.ZoomCoarse:  {place: basardgePlace()},
	}}
	r := New(geocoder, Options{Observer: obs})

	place, err := r.Resolve(context.Background(), basardge)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if place.Source != models.SourceReverseCoarse {
		t.Errorf("expected coarse source, got %s", place.Source)
	}
	if !obs.has("reverse_query_failed") {
		t.Error("expected failure to be reported to the observer")
	}
}

func TestResolveFallback(t *testing.T) {
	tests := []struct {
		name    string
		replies map[int]reply
	}{
		{
			name: "all providers fail",
			replies: map[int]reply{
				nominatim.ZoomPrecise: {err: errors.New("boom")},
				nominatim.ZoomCoarse:  {err: errors.New("boom")},
			},
		},
		{
			name: "only unnamed answers",
			replies: map[int]reply{
				nominatim.ZoomPrecise: {place: &nominatim.Place{Address: nominatim.Address{State: "Maharashtra"}}},
				nominatim.ZoomCoarse:  {place: &nominatim.Place{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeGeocoder{replies: tt.replies}, Options{})
			c := models.Coordinate{Latitude: 12.34567, Longitude: -45.6789}

			place, err := r.Resolve(context.Background(), c)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if place.Source != models.SourceCoordinateFallback {
				t.Errorf("expected fallback source, got %s", place.Source)
			}
			if place.Name != "12.3457, -45.6789" {
				t.Errorf("expected coordinate name, got %q", place.Name)
			}
			if place.Timezone != models.TimezoneAuto {
				t.Errorf("expected auto timezone, got %q", place.Timezone)
			}
		})
	}
}

func TestResolvePayloadNameFallback(t *testing.T) {
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomPrecise: {place: &nominatim.Place{Name: "Point Nemo", Type: "sea"}},
		nominatim.ZoomCoarse:  {err: errors.New("boom")},
	}}
	r := New(geocoder, Options{})

	place, err := r.Resolve(context.Background(), models.Coordinate{Latitude: -48.8767, Longitude: -123.3933})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if place.Name != "Point Nemo" {
		t.Errorf("expected payload name, got %q", place.Name)
	}
	if place.FeatureText != "sea" {
		t.Errorf("expected feature text sea, got %q", place.FeatureText)
	}
}

func TestResolveInvalidCoordinate(t *testing.T) {
	geocoder := &fakeGeocoder{}
	r := New(geocoder, Options{})

	for _, c := range []models.Coordinate{
		{Latitude: 91, Longitude: 0},
		{Latitude: 0, Longitude: -181},
		{Latitude: math.NaN(), Longitude: 0},
		{Latitude: 0, Longitude: math.Inf(1)},
	} {
		if _, err := r.Resolve(context.Background(), c); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Resolve(%v): expected ErrInvalidCoordinate, got %v", c, err)
		}
	}
	if len(geocoder.calls) != 0 {
		t.Errorf("expected no provider calls, got %v", geocoder.calls)
	}
}

func TestResolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(&fakeGeocoder{replies: map[int]reply{}}, Options{})
	if _, err := r.Resolve(ctx, basardge); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDedupeByCoordinate(t *testing.T) {
	candidates := []models.PlaceCandidate{
		{Name: "first", Latitude: 16.18531, Longitude: 74.46223},
		{Name: "second", Latitude: 16.18529, Longitude: 74.46221},
		{Name: "other", Latitude: 16.2, Longitude: 74.46223},
	}

	unique := DedupeByCoordinate(candidates)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique candidates, got %d", len(unique))
	}
	if unique[0].Name != "first" || unique[1].Name != "other" {
		t.Errorf("unexpected order: %s, %s", unique[0].Name, unique[1].Name)
	}
}

func TestFallback(t *testing.T) {
	f := Fallback(models.Coordinate{Latitude: 16.18531, Longitude: 74.46223})
	if f.Name != "16.1853, 74.4622" {
		t.Errorf("unexpected name %q", f.Name)
	}
	if f.DisplayName() != f.Name {
		t.Errorf("expected display name to equal name, got %q", f.DisplayName())
	}
}
