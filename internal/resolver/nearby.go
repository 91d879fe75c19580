package resolver

import (
	"context"
	"fmt"

	"github.com/ngmaloney/weathernow/internal/geo"
	"github.com/ngmaloney/weathernow/internal/models"
	"github.com/ngmaloney/weathernow/internal/nominatim"
)

// Nearby lists distinct alternatives around c, excluding any whose label
// matches the selected place. Provider failures yield an empty list.
func (r *Resolver) Nearby(ctx context.Context, c models.Coordinate, selected *models.PlaceCandidate) ([]models.PlaceCandidate, error) {
	if !geo.Valid(c.Latitude, c.Longitude) {
		return nil, fmt.Errorf("listing places near %v, %v: %w", c.Latitude, c.Longitude, ErrInvalidCoordinate)
	}

	candidates := r.query(ctx, c, tier{zoom: nominatim.ZoomCoarse, source: models.SourceReverseCoarse})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exclude := ""
	if selected != nil {
		exclude = selected.Label()
	}
	nearby := FilterNearby(candidates, exclude, r.nearbyCount)
	r.observer.Debug("nearby_resolved", "count", len(nearby), "exclude", exclude)
	return nearby, nil
}

// FilterNearby deduplicates by rendered label, drops unlabelled candidates
// and those labelled exclude, and caps the result at limit.
func FilterNearby(candidates []models.PlaceCandidate, exclude string, limit int) []models.PlaceCandidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]models.PlaceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		label := c.Label()
		if label == "" || label == exclude || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, c)
	}
	return out
}
