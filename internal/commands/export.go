package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/analysis"
	"github.com/moneylens/moneylens/internal/report"
)

func newExportCommand(a *app) *cobra.Command {
	var ff filterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [statement]",
		Short: "Write the Transactions and Category Summary tables to .xlsx or .csv",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd.Context(), cmd.OutOrStdout(), fileArg(args), outPath, &ff)
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "moneylens-report.xlsx", "output file (.xlsx or .csv)")

	return cmd
}

func (a *app) runExport(ctx context.Context, out io.Writer, path, outPath string, ff *filterFlags) error {
	var write func(io.Writer, []report.Table) error
	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".xlsx":
		write = report.WriteXLSX
	case ".csv":
		write = report.WriteCSV
	default:
		return fmt.Errorf("unsupported report format %q (want .xlsx or .csv)", ext)
	}

	opts, err := a.cfg.AnalysisOptions()
	if err != nil {
		return err
	}
	txns, err := a.selectTransactions(ctx, path, ff)
	if err != nil {
		return err
	}
	tables := report.Tables(txns, analysis.Summarize(txns, opts))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := write(f, tables); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}

	fmt.Fprintf(out, "Wrote %d transactions to %s\n", len(txns), outPath)
	return nil
}
