// Package carriers maps IATA carrier codes to display names and parses
// carrier filter expressions from query parameters.
package carriers

import (
	"regexp"
	"sort"
	"strings"
)

// carrierCodePattern validates IATA carrier codes (2 alphanumeric characters).
var carrierCodePattern = regexp.MustCompile(`^[A-Z0-9]{2}$`)

// carrierNames maps carrier IATA codes to display names.
//
// Best-effort mapping covering the carriers present in the US on-time
// performance data. Codes without an entry render as the bare code.
var carrierNames = map[string]string{
	"AA": "American Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"DL": "Delta Air Lines",
	"F9": "Frontier Airlines",
	"G4": "Allegiant Air",
	"HA": "Hawaiian Airlines",
	"NK": "Spirit Airlines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"OO": "SkyWest Airlines",
	"YX": "Republic Airways",
	"MQ": "Envoy Air",
	"9E": "Endeavor Air",
	"YV": "Mesa Airlines",
}

// Name returns the display name for a carrier code, or the uppercased
// code itself when the carrier is unknown.
func Name(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return code
}

// Display returns "CODE - Name" for known carriers and the bare code
// otherwise.
func Display(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if name, ok := carrierNames[code]; ok {
		return code + " - " + name
	}
	return code
}

// Known reports whether the code has a display-name entry.
func Known(code string) bool {
	_, ok := carrierNames[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// All returns every known carrier code in sorted order.
func All() []string {
	out := make([]string, 0, len(carrierNames))
	for code := range carrierNames {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ParseFilter splits a comma/semicolon/pipe-separated carrier list into
// normalized codes, dropping blanks, duplicates, and tokens that do not
// look like IATA carrier codes. An empty or all-invalid input returns
// nil, which downstream stages treat as "no filter".
func ParseFilter(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', '|', ' ':
			return true
		default:
			return false
		}
	})

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		if !carrierCodePattern.MatchString(code) {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
