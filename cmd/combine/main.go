// Command combine concatenates the monthly on-time CSV drops into the
// single file the aggregation pipeline reads.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	dataDir := flag.String("data-dir", cfg.DataConfig.DataDir, "directory holding airline_ontime_*.csv inputs")
	output := flag.String("out", "", "output path (default <data-dir>/airline_ontime.csv)")
	flag.Parse()

	paths := config.DataConfig{DataDir: *dataDir, OutputDir: cfg.DataConfig.OutputDir}
	out := *output
	if out == "" {
		out = paths.CombinedPath()
	}

	result, err := dataset.Combine(*dataDir, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Combine failed: %v\n", err)
		os.Exit(1)
	}

	for _, f := range result.Inputs {
		fmt.Printf("  %s: %d rows\n", f.Path, f.Rows)
	}
	fmt.Printf("Wrote %d rows from %d files to %s\n", result.TotalRows, len(result.Inputs), out)
}
