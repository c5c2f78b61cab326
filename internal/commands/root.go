package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moneylens/moneylens/internal/buildinfo"
	"github.com/moneylens/moneylens/internal/config"
	"github.com/moneylens/moneylens/internal/logger"
)

// Viper keys for settings that flags and MONEYLENS_* variables can override.
const (
	keyDir       = "dir"
	keyLogLevel  = "logging.level"
	keyLogFormat = "logging.format"
)

// app is the state shared by every subcommand, filled in before each run.
type app struct {
	v   *viper.Viper
	dir string
	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "moneylens",
		Short:   "Bank statement spending analyzer",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "project directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = a.v.BindPFlag(keyDir, flags.Lookup("dir"))
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindEnv(keyDir, "MONEYLENS_DIR")
	_ = a.v.BindEnv(keyLogLevel, "MONEYLENS_LOG_LEVEL")
	_ = a.v.BindEnv(keyLogFormat, "MONEYLENS_LOG_FORMAT")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newAnalyzeCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newOverrideCommand(a))
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newClassifyCommand())

	return rootCmd
}

// setup resolves the project directory, loads its config and builds the
// logger. Flags win over environment variables, which win over the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	dir, err := filepath.Abs(a.v.GetString(keyDir))
	if err != nil {
		return fmt.Errorf("resolving project dir: %w", err)
	}
	a.dir = dir

	cfg, err := config.LoadDir(dir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.v.SetDefault(keyLogLevel, cfg.Logging.Level)
	a.v.SetDefault(keyLogFormat, cfg.Logging.Format)
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), a.v.GetString(keyLogLevel), a.v.GetString(keyLogFormat))
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.log = log
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	log.Debug().Str("dir", dir).Msg("loaded project")
	return nil
}
