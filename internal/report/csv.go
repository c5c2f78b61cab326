package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes each table as a section: a line with the table name, the
// header, the rows, then a blank line between sections.
func WriteCSV(w io.Writer, tables []Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, t := range tables {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
		if err := cw.Write([]string{t.Name}); err != nil {
			return fmt.Errorf("writing %s title: %w", t.Name, err)
		}
		if err := cw.Write(t.Header()); err != nil {
			return fmt.Errorf("writing %s header: %w", t.Name, err)
		}
		for j, row := range t.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", t.Name, j+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
