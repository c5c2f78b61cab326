package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/moneylens/moneylens/internal/statement"
)

// isoDate is the layout date cells are rewritten to. It cannot be read
// month-first.
const isoDate = "2006-01-02"

// XLSXSource reads a statement table from an Excel workbook. Rows of every
// sheet are returned in sheet order.
type XLSXSource struct{}

// Format returns the source name.
func (s *XLSXSource) Format() string { return "xlsx" }

// Rows reads the formatted cell text of all sheets. Cells holding real dates
// come back as YYYY-MM-DD, and every row of a sheet is padded with empty
// cells to the width of the widest row.
func (s *XLSXSource) Rows(r io.Reader) ([]statement.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	wb := workbook{f: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}

	var rows []statement.Row
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := wb.sheetRows(sheet)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sheetRows...)
	}
	return rows, nil
}

type workbook struct {
	f          *excelize.File
	date1904   bool
	dateStyles map[int]bool // style ID -> has a date number format
}

func (wb *workbook) sheetRows(sheet string) ([]statement.Row, error) {
	shown, err := wb.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	raw, err := wb.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	// GetRows drops trailing empty cells, so a blank last column would
	// otherwise make the row look short.
	width := 0
	for _, cells := range shown {
		width = max(width, len(cells))
	}

	rows := make([]statement.Row, len(shown))
	for i, cells := range shown {
		row := make(statement.Row, width)
		copy(row, cells)
		for j := range cells {
			if i >= len(raw) || j >= len(raw[i]) {
				continue
			}
			text, err := wb.dateText(sheet, j, i, raw[i][j])
			if err != nil {
				return nil, err
			}
			if text != "" {
				row[j] = text
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// dateText returns the ISO date of a numeric cell styled as a date, or "".
func (wb *workbook) dateText(sheet string, col, row int, rawValue string) (string, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		return "", nil
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", fmt.Errorf("locating cell: %w", err)
	}
	typ, err := wb.f.GetCellType(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("reading type of %s!%s: %w", sheet, cell, err)
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		return "", nil
	}
	styleID, err := wb.f.GetCellStyle(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("reading style of %s!%s: %w", sheet, cell, err)
	}
	isDate, err := wb.isDateStyle(styleID)
	if err != nil || !isDate {
		return "", err
	}
	t, err := excelize.ExcelDateToTime(serial, wb.date1904)
	if err != nil {
		return "", nil
	}
	return t.Format(isoDate), nil
}

func (wb *workbook) isDateStyle(styleID int) (bool, error) {
	if styleID == 0 {
		return false, nil
	}
	if known, ok := wb.dateStyles[styleID]; ok {
		return known, nil
	}
	style, err := wb.f.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("reading style %d: %w", styleID, err)
	}
	isDate := isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	wb.dateStyles[styleID] = isDate
	return isDate, nil
}

// isDateNumFmt reports whether a built-in format ID or custom format code
// displays a date.
func isDateNumFmt(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for day or year tokens outside quoted literals and
// bracketed sections such as colors and locales.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '\\' && !inQuote:
			i++
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			inBracket = true
		case c == ']':
			inBracket = false
		case inBracket:
		case c == 'd', c == 'D', c == 'y', c == 'Y':
			return true
		}
	}
	return false
}
