package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		origin string
		dest   string
		ok     bool
	}{
		{"simple", "JFK-LAX", "JFK", "LAX", true},
		{"lowercase", "jfk-lax", "JFK", "LAX", true},
		{"whitespace", " ORD - ATL ", "ORD", "ATL", true},
		{"no separator", "JFKLAX", "", "", false},
		{"empty", "", "", "", false},
		{"missing dest", "JFK-", "", "", false},
		{"missing origin", "-LAX", "", "", false},
		{"only separator", "-", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, dest, ok := ParseRoute(tt.route)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.origin, origin)
			assert.Equal(t, tt.dest, dest)
		})
	}
}
