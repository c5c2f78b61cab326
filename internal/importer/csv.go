package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/moneylens/moneylens/internal/statement"
)

// CSVSource reads a statement table exported as CSV. Every record becomes a
// row, headers and footers included; the extractor decides what to keep.
type CSVSource struct{}

// Format returns the source name.
func (s *CSVSource) Format() string { return "csv" }

// Rows reads all CSV records. Records may have differing field counts.
func (s *CSVSource) Rows(r io.Reader) ([]statement.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	rows := make([]statement.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, statement.Row(rec))
	}
	return rows, nil
}
