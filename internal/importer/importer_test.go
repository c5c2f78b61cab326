package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/moneylens/moneylens/internal/statement"
)

const fixture = "../../testdata/statement_jan_2026.csv"

func TestCSVSource_Rows(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	s := &CSVSource{}
	rows, err := s.Rows(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, rows, 16)

	// Header comes through untouched.
	assert.Equal(t, "Withdrawal", rows[0][4])
	// Quoted thousands separators stay in the cell text.
	assert.Equal(t, "2,000.00", rows[9][5])
	// Ragged footer row.
	assert.Len(t, rows[15], 1)
}

func TestCSVSource_FeedsExtractor(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	rows, err := (&CSVSource{}).Rows(bytes.NewReader(data))
	require.NoError(t, err)

	txns, stats := statement.Extract(rows, statement.DefaultLayout())
	assert.Len(t, txns, 10)
	assert.Equal(t, 3, stats.NoAmount)
	assert.Equal(t, 1, stats.BadDate)
	assert.Equal(t, 1, stats.ZeroAmount)
	assert.Equal(t, 1, stats.ShortRows)

	assert.Equal(t, "MUKESH YADAV", txns[0].Merchant)
	assert.Equal(t, "-2678.44", txns[8].Amount.StringFixed(2))
}

func TestCSVSource_Empty(t *testing.T) {
	rows, err := (&CSVSource{}).Rows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVSource_Format(t *testing.T) {
	assert.Equal(t, "csv", (&CSVSource{}).Format())
}

func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, r := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestXLSXSource_Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Transactions": {
			{"#", "Date", "Description", "Ref. No.", "Withdrawal", "Deposit", "Balance"},
			{"1", "07 Jan 2026", "UPI/Swiggy/601007", "UPI", "311.00", "-", "-311.00"},
			{"2", "08 Jan 2026", "UPI/Manisha", "UPI", "-", "2,000.00", "1,689.00"},
		},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&XLSXSource{}).Rows(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "UPI/Swiggy/601007", rows[1][2])

	txns, _ := statement.Extract(rows, statement.DefaultLayout())
	require.Len(t, txns, 2)
	assert.Equal(t, "SWIGGY", txns[0].Merchant)
	assert.Equal(t, "2000.00", txns[1].Amount.StringFixed(2))
}

func readWorkbook(t *testing.T, sheets map[string][][]any) []statement.Row {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	writeWorkbook(t, path, sheets)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&XLSXSource{}).Rows(f)
	require.NoError(t, err)
	return rows
}

func TestXLSXSource_DateCells(t *testing.T) {
	rows := readWorkbook(t, map[string][][]any{
		"Transactions": {
			{"#", "Date", "Description", "Ref. No.", "Withdrawal", "Deposit", "Balance"},
			{"1", time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC), "UPI/Jio/601004", "UPI", 19.99, "-", -19.99},
			{"2", time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC), "UPI/Manisha/601008", "UPI", "-", 2000, 1980.01},
		},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-01-07", rows[1][1])
	assert.Equal(t, "2026-01-25", rows[2][1])
	// Plain numbers are not mistaken for dates.
	assert.Equal(t, "19.99", rows[1][4])

	txns, stats := statement.Extract(rows, statement.DefaultLayout())
	require.Len(t, txns, 2, "stats: %+v", stats)
	assert.Equal(t, time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, "2026-01-001", txns[0].ID)
	assert.Equal(t, time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC), txns[1].Date)
}

func TestXLSXSource_BlankLastColumn(t *testing.T) {
	rows := readWorkbook(t, map[string][][]any{
		"Transactions": {
			{"#", "Date", "Description", "Ref. No.", "Withdrawal", "Deposit"},
			{"1", "07/01/2026", "UPI/Swiggy/601001", "r", "30"},
			{"2", "08/01/2026", "UPI/Manisha/601002", "r", "", "2000"},
		},
	})
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 6)
	}
	assert.Equal(t, "", rows[1][5])

	txns, stats := statement.Extract(rows, statement.DefaultLayout())
	assert.Equal(t, 0, stats.ShortRows)
	require.Len(t, txns, 2)
	assert.Equal(t, "-30.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "2000.00", txns[1].Amount.StringFixed(2))
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"dd/mm/yyyy", true},
		{"d-mmm-yy", true},
		{"[$-409]d-mmm-yy;@", true},
		{"yyyy-mm-dd hh:mm", true},
		{"0.00", false},
		{"#,##0.00", false},
		{`#,##0.00" Dr"`, false},
		{"[Red]0.00", false},
		{"h:mm", false},
		{"mm:ss", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestIsDateNumFmt(t *testing.T) {
	assert.True(t, isDateNumFmt(14, nil))
	assert.True(t, isDateNumFmt(22, nil))
	assert.False(t, isDateNumFmt(2, nil))
	assert.False(t, isDateNumFmt(20, nil))
	custom := "0.00"
	assert.False(t, isDateNumFmt(164, &custom))
	custom = "dd.mm.yyyy"
	assert.True(t, isDateNumFmt(164, &custom))
}

func TestXLSXSource_NotAWorkbook(t *testing.T) {
	_, err := (&XLSXSource{}).Rows(strings.NewReader("definitely,not,xlsx"))
	assert.Error(t, err)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVSource{})
	s := r.Get("csv")
	require.NotNil(t, s)
	assert.Equal(t, "csv", s.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVSource{})
	assert.NotNil(t, r.Get("Csv"))
	assert.NotNil(t, r.Get("CSV"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVSource{})
	assert.Panics(t, func() { r.Register(&CSVSource{}) })
}

func TestRegistry_ForPath(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, "csv", r.ForPath("jan.CSV").Format())
	assert.Equal(t, "xlsx", r.ForPath("/tmp/jan.xlsx").Format())
	assert.Nil(t, r.ForPath("jan.pdf"))
	assert.Nil(t, r.ForPath("README"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"csv", "xlsx"}, r.Formats())
}

func TestReadFile(t *testing.T) {
	rows, err := DefaultRegistry().ReadFile(fixture)
	require.NoError(t, err)
	assert.Len(t, rows, 16)
}

func TestReadFile_Unsupported(t *testing.T) {
	_, err := DefaultRegistry().ReadFile("statement.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported statement file")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := DefaultRegistry().ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jan.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "feb.xlsx"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "mar.pdf"), []byte("data"), 0o644))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "feb.xlsx", files[0].Name)
	assert.Equal(t, "xlsx", files[0].Format)
	assert.Equal(t, "jan.csv", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "jan.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "jan.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "jan.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "jan.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
