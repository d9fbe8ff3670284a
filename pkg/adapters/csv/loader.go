// Package csv reads tabular data rows for data-driven component expansion.
package csv

import (
	encsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/revisit/pkg/domain"
)

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("no headers found in CSV file")

// Load reads the CSV file at path. See Read.
func Load(path string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses CSV with a header row into rows whose columns follow the header.
// Values are coerced with Coerce.
func Read(r io.Reader) ([]domain.Row, error) {
	reader := encsv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			return nil, fmt.Errorf("column %d: %w", i+1, ErrNoHeader)
		}
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}

		var row domain.Row
		for i, col := range header {
			row.Set(col, Coerce(record[i]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Coerce converts a raw cell: "true"/"false" in any case become bools, values
// containing a dot become floats, other numbers become ints, and anything else
// is kept as the trimmed string.
func Coerce(raw string) any {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}
