package models

import "testing"

func TestPlaceCandidate_Label(t *testing.T) {
	tests := []struct {
		name  string
		place PlaceCandidate
		want  string
	}{
		{"all parts", PlaceCandidate{Name: "Basardge, Gadhinglaj, Kolhapur", Admin1: "Maharashtra", Country: "India"}, "Basardge, Gadhinglaj, Kolhapur, Maharashtra, India"},
		{"no admin1", PlaceCandidate{Name: "Monaco", Country: "Monaco"}, "Monaco, Monaco"},
		{"name only", PlaceCandidate{Name: "18.5246, 73.8786"}, "18.5246, 73.8786"},
		{"empty", PlaceCandidate{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.place.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceCandidate_DisplayNameNeverEmpty(t *testing.T) {
	p := PlaceCandidate{Latitude: 18.5246091, Longitude: 73.8786239}
	if got := p.DisplayName(); got != "18.5246, 73.8786" {
		t.Errorf("DisplayName() = %q, want coordinate label", got)
	}
}

func TestPlaceID(t *testing.T) {
	if got := PlaceID(16.18527777, -74.46216666); got != "16.1853,-74.4622" {
		t.Errorf("PlaceID() = %q", got)
	}
}

func TestPlaceCandidate_Coordinate(t *testing.T) {
	p := PlaceCandidate{Name: "Pune", Latitude: 18.51957, Longitude: 73.85535}
	if got := p.Coordinate(); got != (Coordinate{Latitude: 18.51957, Longitude: 73.85535}) {
		t.Errorf("Coordinate() = %+v", got)
	}
}
