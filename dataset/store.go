package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/delaynomics/delaynomics-api/config"
)

// streamCheckEvery bounds how many rows are read between context
// cancellation checks while streaming the per-flight dataset.
const streamCheckEvery = 10000

// Store reads the flat-file dataset. It holds no state beyond the file
// paths: every call re-reads from disk, so concurrent requests never
// share derived data.
type Store struct {
	paths config.DataConfig
}

// NewStore creates a store over the configured data directories.
func NewStore(paths config.DataConfig) *Store {
	return &Store{paths: paths}
}

// Paths returns the configured dataset locations.
func (s *Store) Paths() config.DataConfig { return s.paths }

// header maps lowercased column names to their index in the CSV header.
type header map[string]int

func readHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) str(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (h header) float(record []string, name string) float64 {
	v, err := strconv.ParseFloat(h.str(record, name), 64)
	if err != nil {
		return 0
	}
	return v
}

func (h header) int(record []string, name string) int {
	s := h.str(record, name)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Summary exporters sometimes write counts as floats ("500.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// openCSV opens a file and positions a reader past its header row.
// A missing file yields *MissingFileError; an empty file yields ErrNoData.
func openCSV(path string) (*os.File, *csv.Reader, header, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, &MissingFileError{Path: path}
		}
		return nil, nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	head, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, nil, nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		return nil, nil, nil, fmt.Errorf("read header %s: %w", path, err)
	}

	return f, r, readHeader(head), nil
}

// readRow returns the next data record, skipping rows the CSV parser
// rejects. io.EOF and underlying I/O errors go back to the caller; a
// disk fault must stop the read, not loop on it.
func readRow(r *csv.Reader) ([]string, error) {
	for {
		record, err := r.Read()
		if err == nil {
			return record, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		return nil, err
	}
}

// Routes parses the route summary table. Rows whose route column is
// blank are skipped; otherwise-malformed numeric fields degrade to zero.
func (s *Store) Routes() ([]RouteSummary, error) {
	f, r, h, err := openCSV(s.paths.RouteSummaryPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var routes []RouteSummary
	for {
		record, err := readRow(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.paths.RouteSummaryPath(), err)
		}

		route := h.str(record, "route")
		if route == "" {
			continue
		}

		routes = append(routes, RouteSummary{
			Route:          route,
			PrimaryCarrier: h.str(record, "primary_carrier"),
			NumFlights:     h.int(record, "num_flights"),
			TotalDelayCost: h.float(record, "total_delay_cost"),
			AvgDelayCost:   h.float(record, "avg_delay_cost"),
			AvgDelayMin:    h.float(record, "avg_delay_min"),
			DelayRate:      h.float(record, "delay_rate"),
			Distance:       h.float(record, "distance"),
		})
	}

	return routes, nil
}

// Airlines parses the carrier summary table.
func (s *Store) Airlines() ([]AirlineSummary, error) {
	f, r, h, err := openCSV(s.paths.AirlineSummaryPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var airlines []AirlineSummary
	for {
		record, err := readRow(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.paths.AirlineSummaryPath(), err)
		}

		carrier := h.str(record, "carrier")
		if carrier == "" {
			continue
		}

		airlines = append(airlines, AirlineSummary{
			Carrier:        strings.ToUpper(carrier),
			NumFlights:     h.int(record, "num_flights"),
			TotalDelayCost: h.float(record, "total_delay_cost"),
			AvgDelayCost:   h.float(record, "avg_delay_cost"),
			AvgDelayMin:    h.float(record, "avg_delay_min"),
			DelayRate:      h.float(record, "delay_rate"),
			AvgCostPerMile: h.float(record, "avg_cost_per_mile"),
		})
	}

	return airlines, nil
}

// Airports parses the airport summary table.
func (s *Store) Airports() ([]AirportSummary, error) {
	f, r, h, err := openCSV(s.paths.AirportSummaryPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var airports []AirportSummary
	for {
		record, err := readRow(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.paths.AirportSummaryPath(), err)
		}

		code := h.str(record, "airport")
		if code == "" {
			continue
		}

		airports = append(airports, AirportSummary{
			Airport:      strings.ToUpper(code),
			NumFlights:   h.int(record, "num_flights"),
			AvgDelayCost: h.float(record, "avg_delay_cost"),
			AvgDelayMin:  h.float(record, "avg_delay_min"),
		})
	}

	return airports, nil
}

// Coords parses the optional airport coordinates table. A missing file
// is not an error here: the caller falls back to the static table, so
// absence returns (nil, nil).
func (s *Store) Coords() ([]Coordinate, error) {
	f, r, h, err := openCSV(s.paths.CoordsPath())
	if err != nil {
		var missing *MissingFileError
		if errors.As(err, &missing) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var coords []Coordinate
	for {
		record, err := readRow(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.paths.CoordsPath(), err)
		}

		code := strings.ToUpper(h.str(record, "iata"))
		if code == "" {
			continue
		}

		coords = append(coords, Coordinate{
			IATA: code,
			Lat:  h.float(record, "lat"),
			Lon:  h.float(record, "lon"),
		})
	}

	return coords, nil
}

// StreamFlights reads the per-flight dataset one row at a time and calls
// fn for every parseable row. The file is never fully materialized; rows
// with an unparseable date are skipped. Cancellation is honored between
// chunks of rows.
func (s *Store) StreamFlights(ctx context.Context, fn func(Flight) error) error {
	f, r, h, err := openCSV(s.paths.FullDatasetPath())
	if err != nil {
		return err
	}
	defer f.Close()

	var n int
	for {
		record, err := readRow(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.paths.FullDatasetPath(), err)
		}

		n++
		if n%streamCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		flight := Flight{
			Year:       h.int(record, "year"),
			Month:      h.int(record, "month"),
			DayOfMonth: h.int(record, "dayofmonth"),
			Carrier:    strings.ToUpper(h.str(record, "carrier")),
			Origin:     strings.ToUpper(h.str(record, "origin")),
			Dest:       strings.ToUpper(h.str(record, "dest")),
			ArrDelay:   h.float(record, "arrdelay"),
			DelayCost:  h.float(record, "delay_cost"),
			IsDelayed:  h.float(record, "is_delayed") != 0,
		}
		if flight.Year == 0 || flight.Month < 1 || flight.Month > 12 || flight.DayOfMonth < 1 || flight.DayOfMonth > 31 {
			continue
		}

		if err := fn(flight); err != nil {
			return err
		}
	}
}

// DailyCosts streams the per-flight dataset and sums delay cost per
// calendar day. An empty carrier filter keeps every row.
func (s *Store) DailyCosts(ctx context.Context, carriers []string) (map[time.Time]float64, error) {
	filter := carrierSet(carriers)

	daily := make(map[time.Time]float64)
	err := s.StreamFlights(ctx, func(f Flight) error {
		if len(filter) > 0 {
			if _, ok := filter[f.Carrier]; !ok {
				return nil
			}
		}
		daily[f.Date()] += f.DelayCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	return daily, nil
}

func carrierSet(carriers []string) map[string]struct{} {
	if len(carriers) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(carriers))
	for _, c := range carriers {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
