package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/analysis"
	"github.com/moneylens/moneylens/internal/report"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "analyze [statement]",
		Short: "Summarize spending from a statement file or the imported history",
		Long: `Summarize spending: income, expense and savings, category breakdown,
top and recurring merchants, and small-spend leakage.

With a statement file (.csv or .xlsx) the file is analyzed directly. Without
one, every imported transaction is analyzed with overrides applied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd.Context(), cmd.OutOrStdout(), fileArg(args), &ff)
		},
	}

	ff.register(cmd)

	return cmd
}

func (a *app) runAnalyze(ctx context.Context, out io.Writer, path string, ff *filterFlags) error {
	opts, err := a.cfg.AnalysisOptions()
	if err != nil {
		return err
	}
	txns, err := a.selectTransactions(ctx, path, ff)
	if err != nil {
		return err
	}
	return report.Render(out, analysis.Summarize(txns, opts), opts)
}
