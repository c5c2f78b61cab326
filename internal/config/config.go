package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/moneylens/moneylens/internal/analysis"
	"github.com/moneylens/moneylens/internal/statement"
)

// FileName is the project config file inside the project directory.
const FileName = "moneylens.yaml"

// Config represents the top-level moneylens.yaml configuration.
type Config struct {
	Statement statement.Layout `yaml:"statement"`
	Analysis  AnalysisConfig   `yaml:"analysis"`
	Storage   StorageConfig    `yaml:"storage"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// AnalysisConfig holds the summary thresholds.
type AnalysisConfig struct {
	SmallSpendLimit string `yaml:"small_spend_limit"` // decimal, e.g. "50"
	RecurringMin    int    `yaml:"recurring_min"`
	TopMerchants    int    `yaml:"top_merchants"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"` // relative to the project directory
}

// LoggingConfig sets the default log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a moneylens.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadDir reads the config of a project directory, falling back to Default
// when the directory has no config file.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Statement: statement.DefaultLayout(),
		Analysis: AnalysisConfig{
			SmallSpendLimit: "50",
			RecurringMin:    3,
			TopMerchants:    5,
		},
		Storage: StorageConfig{
			Path: filepath.Join(".moneylens", "moneylens.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the column layout and the analysis thresholds.
func (c *Config) Validate() error {
	if err := c.Statement.Validate(); err != nil {
		return fmt.Errorf("statement: %w", err)
	}
	if _, err := c.AnalysisOptions(); err != nil {
		return err
	}
	if c.Analysis.RecurringMin < 1 {
		return fmt.Errorf("analysis: recurring_min %d must be at least 1", c.Analysis.RecurringMin)
	}
	if c.Storage.Path == "" {
		return errors.New("storage: empty path")
	}
	return nil
}

// AnalysisOptions converts the analysis section to summary options.
func (c *Config) AnalysisOptions() (analysis.Options, error) {
	limit, err := decimal.NewFromString(c.Analysis.SmallSpendLimit)
	if err != nil {
		return analysis.Options{}, fmt.Errorf("analysis: small_spend_limit %q: %w", c.Analysis.SmallSpendLimit, err)
	}
	if limit.IsNegative() {
		return analysis.Options{}, fmt.Errorf("analysis: small_spend_limit %s is negative", limit)
	}
	return analysis.Options{
		SmallSpendLimit: limit,
		RecurringMin:    c.Analysis.RecurringMin,
		TopMerchants:    c.Analysis.TopMerchants,
	}, nil
}

// DBPath resolves the storage path against the project directory.
func (c *Config) DBPath(projectDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(projectDir, c.Storage.Path)
}
