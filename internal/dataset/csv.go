package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table holds a numeric CSV file: a header row naming the columns and one
// float64 row per record.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// LoadTable reads a CSV file of numeric columns. The first row is treated
// as headers (column names); every following row must parse as float64.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([][]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: row %d column %s: %w", i+2, headers[j], err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return &Table{Columns: headers, Rows: rows}, nil
}
