// Package airports resolves IATA airport codes to geographic
// coordinates. Resolution is two-tier: an optional external table read
// from the dataset is authoritative, with a static fallback map behind
// it for common US airports the dataset leaves out.
package airports

import (
	"strings"

	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/pkg/geo"
)

// Coordinates is the lat/lon pair returned by the resolver.
type Coordinates = geo.Coordinates

// Resolver looks up airport coordinates by exact IATA code. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	external map[string]Coordinates
}

// NewResolver builds a resolver over the given external coordinate rows.
// Passing nil or an empty slice leaves only the static fallback table.
func NewResolver(external []dataset.Coordinate) *Resolver {
	m := make(map[string]Coordinates, len(external))
	for _, c := range external {
		code := strings.ToUpper(strings.TrimSpace(c.IATA))
		if code == "" {
			continue
		}
		m[code] = Coordinates{Lat: c.Lat, Lon: c.Lon}
	}
	return &Resolver{external: m}
}

// Resolve returns the coordinates for an airport code. The external
// table wins when it has the code; otherwise the fallback map is tried.
// No fuzzy matching and no case normalization beyond what the caller
// already applied: an unknown code returns ok=false.
func (r *Resolver) Resolve(code string) (Coordinates, bool) {
	if code == "" {
		return Coordinates{}, false
	}
	if r != nil && r.external != nil {
		if c, ok := r.external[code]; ok {
			return c, true
		}
	}
	c, ok := fallbackCoords[code]
	return c, ok
}

// FallbackSize reports how many airports the static table covers.
func FallbackSize() int { return len(fallbackCoords) }
