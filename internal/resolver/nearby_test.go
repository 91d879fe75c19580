package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/nominatim"
)

func TestNearby(t *testing.T) {
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomCoarse: {place: &nominatim.Place{
			AddressType: "county",
			Address:     nominatim.Address{County: "Gadhinglaj", StateDistrict: "Kolhapur", State: "Maharashtra", Country: "India", CountryCode: "in"},
		}},
	}}
	r := New(geocoder, Options{})

	nearby, err := r.Nearby(context.Background(), basardge, nil)
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(nearby) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(nearby))
	}
	if nearby[0].Label() != "Gadhinglaj, Kolhapur, Maharashtra, India" {
		t.Errorf("unexpected label %q", nearby[0].Label())
	}
	if len(geocoder.calls) != 1 || geocoder.calls[0] != nominatim.ZoomCoarse {
		t.Errorf("expected a single coarse query, got %v", geocoder.calls)
	}
}

func TestNearbyExcludesSelected(t *testing.T) {
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomCoarse: {place: basardgePlace()},
	}}
	r := New(geocoder, Options{})

	selected, err := r.Resolve(context.Background(), basardge)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	nearby, err := r.Nearby(context.Background(), basardge, &selected)
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(nearby) != 0 {
		t.Errorf("expected selected place to be excluded, got %v", nearby)
	}
}

func TestNearbyProviderFailure(t *testing.T) {
	geocoder := &fakeGeocoder{replies: map[int]reply{
		nominatim.ZoomCoarse: {err: errors.New("503")},
	}}
	r := New(geocoder, Options{})

	nearby, err := r.Nearby(context.Background(), basardge, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(nearby) != 0 {
		t.Errorf("expected empty list, got %d", len(nearby))
	}
}

func TestNearbyInvalidCoordinate(t *testing.T) {
	r := New(&fakeGeocoder{}, Options{})
	if _, err := r.Nearby(context.Background(), models.Coordinate{Latitude: 100}, nil); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestFilterNearby(t *testing.T) {
	var candidates []models.PlaceCandidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, models.PlaceCandidate{Name: fmt.Sprintf("Place %d", i), Country: "India"})
	}
	candidates = append(candidates[:3], append([]models.PlaceCandidate{
		{Name: "Place 1", Country: "India"}, // duplicate label
		{},                                  // empty label
	}, candidates[3:]...)...)

	got := FilterNearby(candidates, "Place 0, India", 10)
	if len(got) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(got))
	}
	if got[0].Name != "Place 1" {
		t.Errorf("expected excluded label to be skipped, first is %q", got[0].Name)
	}

	seen := map[string]bool{}
	for _, c := range got {
		if c.Label() == "" {
			t.Error("empty label leaked through")
		}
		if seen[c.Label()] {
			t.Errorf("duplicate label %q", c.Label())
		}
		seen[c.Label()] = true
	}
}
