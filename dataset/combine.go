package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// CombineResult reports what the combiner did.
type CombineResult struct {
	Inputs    []CombinedFile `json:"inputs"`
	Output    string         `json:"output"`
	TotalRows int            `json:"total_rows"`
}

// CombinedFile is the per-input row count of a combine run.
type CombinedFile struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// Combine merges all monthly airline_ontime_*.csv files in dir into a
// single CSV at out. The header is taken from the first input and
// written once; every input must carry an identical header or the run
// fails before any partial output is left behind. Inputs are processed
// in lexical order so monthly files land chronologically.
func Combine(dir, out string) (*CombineResult, error) {
	pattern := filepath.Join(dir, "airline_ontime_*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, &MissingFileError{Path: pattern}
	}
	sort.Strings(files)

	tmp := out + ".tmp"
	outFile, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tmp, err)
	}
	defer func() {
		outFile.Close()
		os.Remove(tmp)
	}()

	w := csv.NewWriter(outFile)
	result := &CombineResult{Output: out}

	var expected []string
	for _, path := range files {
		rows, head, err := appendFile(w, path, expected)
		if err != nil {
			return nil, err
		}
		if expected == nil {
			expected = head
		}
		result.Inputs = append(result.Inputs, CombinedFile{Path: path, Rows: rows})
		result.TotalRows += rows
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := outFile.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		return nil, fmt.Errorf("rename %s: %w", out, err)
	}

	return result, nil
}

// appendFile copies one input's data rows into w, writing the header
// only when expected is nil (the first file). Returns the data row count
// and the file's header.
func appendFile(w *csv.Writer, path string, expected []string) (int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err != nil {
		return 0, nil, fmt.Errorf("read header %s: %w", path, err)
	}

	if expected == nil {
		if err := w.Write(head); err != nil {
			return 0, nil, fmt.Errorf("write header: %w", err)
		}
	} else if !equalHeader(expected, head) {
		return 0, nil, fmt.Errorf("%s: header does not match first input", path)
	}

	var rows int
	for {
		record, err := r.Read()
		if err == io.EOF {
			return rows, head, nil
		}
		if err != nil {
			return rows, head, fmt.Errorf("read %s: %w", path, err)
		}
		if err := w.Write(record); err != nil {
			return rows, head, fmt.Errorf("write row from %s: %w", path, err)
		}
		rows++
	}
}

func equalHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
