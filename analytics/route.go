// Package analytics implements the delay-cost aggregation pipeline:
// route parsing, mixed-strategy route sampling, geographic network
// construction, calendar binning, weekday statistics, and KPI rollups.
// Every function here is pure: a fresh result from explicit inputs, no
// state carried between calls.
package analytics

import "strings"

// ParseRoute splits an "AAA-BBB" route string into its origin and
// destination codes, trimmed and uppercased. Malformed input (empty
// string, no dash, blank halves) returns ok=false rather than an error:
// downstream stages treat such routes as "drop and continue".
func ParseRoute(route string) (origin, dest string, ok bool) {
	route = strings.TrimSpace(route)
	if route == "" {
		return "", "", false
	}

	parts := strings.SplitN(route, "-", 2)
	if len(parts) < 2 {
		return "", "", false
	}

	origin = strings.ToUpper(strings.TrimSpace(parts[0]))
	dest = strings.ToUpper(strings.TrimSpace(parts[1]))
	if origin == "" || dest == "" {
		return "", "", false
	}

	return origin, dest, true
}
