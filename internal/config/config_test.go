package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneylens/moneylens/internal/statement"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Statement = statement.Layout{Date: 0, Description: 1, Withdrawal: 2, Deposit: 3, MinCells: 4}
	cfg.Analysis.SmallSpendLimit = "100.50"
	cfg.Logging.Format = "json"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Statement, got.Statement)
	assert.Equal(t, "100.50", got.Analysis.SmallSpendLimit)
	assert.Equal(t, 3, got.Analysis.RecurringMin)
	assert.Equal(t, 5, got.Analysis.TopMerchants)
	assert.Equal(t, cfg.Storage.Path, got.Storage.Path)
	assert.Equal(t, "json", got.Logging.Format)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, statement.DefaultLayout(), cfg.Statement)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.AnalysisOptions()
	require.NoError(t, err)
	assert.Equal(t, "50", opts.SmallSpendLimit.String())
	assert.Equal(t, 3, opts.RecurringMin)
	assert.Equal(t, 5, opts.TopMerchants)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDir_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  recurring_min: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Analysis.RecurringMin)
	assert.Equal(t, "50", cfg.Analysis.SmallSpendLimit)
	assert.Equal(t, statement.DefaultLayout(), cfg.Statement)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad limit", "analysis:\n  small_spend_limit: lots\n"},
		{"negative limit", "analysis:\n  small_spend_limit: \"-5\"\n"},
		{"zero recurring", "analysis:\n  recurring_min: 0\n"},
		{"column outside row", "statement:\n  deposit: 9\n"},
		{"not yaml", "statement: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "min_cells: 6")
	assert.Contains(t, contents, "small_spend_limit: \"50\"")
	assert.Contains(t, contents, "recurring_min: 3")
	assert.Contains(t, contents, "level: info")
}

func TestDBPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/proj", ".moneylens", "moneylens.db"), cfg.DBPath("/proj"))

	cfg.Storage.Path = "/var/db/m.db"
	assert.Equal(t, "/var/db/m.db", cfg.DBPath("/proj"))
}
