// Package geolocation provides the device position.
//
// A terminal has no location service of its own, so the position comes from
// configuration (DEVICE_LOCATION or the --at flag).
package geolocation

import (
	"context"
	"errors"

	"github.com/ngmaloney/weathernow/internal/geo"
	"github.com/ngmaloney/weathernow/internal/models"
)

// ErrUnavailable is returned when no device position is known
var ErrUnavailable = errors.New("device location unavailable")

// Locator reports the device position
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// Static is a Locator with a fixed, possibly absent, position
type Static struct {
	coord models.Coordinate
	ok    bool
}

// NewStatic parses pos as "lat,lon" or a DMS pair. An empty or unparsable
// pos yields a locator that always reports ErrUnavailable.
func NewStatic(pos string) *Static {
	c, ok := geo.Parse(pos)
	return &Static{coord: c, ok: ok}
}

// Available reports whether Locate can succeed
func (s *Static) Available() bool {
	return s.ok
}

func (s *Static) Locate(ctx context.Context) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}
	if !s.ok {
		return models.Coordinate{}, ErrUnavailable
	}
	return s.coord, nil
}
