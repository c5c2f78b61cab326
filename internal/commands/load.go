package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/importer"
	"github.com/moneylens/moneylens/internal/model"
	"github.com/moneylens/moneylens/internal/normalize"
	"github.com/moneylens/moneylens/internal/overlay"
	"github.com/moneylens/moneylens/internal/query"
	"github.com/moneylens/moneylens/internal/statement"
	"github.com/moneylens/moneylens/internal/store"
)

var (
	// ErrNoTransactions is returned when a statement or the store yields no transactions.
	ErrNoTransactions = errors.New("no transactions found")
	// ErrNoMatches is returned when the filters exclude every transaction.
	ErrNoMatches = errors.New("no transactions match your search / filter")
)

// filterFlags are the selection flags shared by analyze and export.
type filterFlags struct {
	from     string
	to       string
	category string
	search   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first date to include (e.g. 01/01/2026 or 2026-01-01)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date to include")
	cmd.Flags().StringVar(&f.category, "category", query.AllCategories, "only this category")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive text in description, merchant or category")
}

// filters converts the flags to query filters.
func (f *filterFlags) filters() ([]query.Filter, error) {
	from, err := parseBound("from", f.from)
	if err != nil {
		return nil, err
	}
	to, err := parseBound("to", f.to)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("--from %s is after --to %s", f.from, f.to)
	}
	if f.category != "" && f.category != query.AllCategories && !model.Category(f.category).Valid() {
		return nil, fmt.Errorf("%w %q (see `moneylens categories`)", overlay.ErrUnknownCategory, f.category)
	}
	return []query.Filter{
		query.DateRange(from, to),
		query.InCategory(f.category),
		query.Search(f.search),
	}, nil
}

func parseBound(name, text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}
	d, ok := normalize.Date(text)
	if !ok {
		return time.Time{}, fmt.Errorf("parsing --%s %q: unrecognized date", name, text)
	}
	return d, nil
}

// loadTransactions reads the statement at path, or every stored transaction
// with overrides applied when path is empty.
func (a *app) loadTransactions(ctx context.Context, path string) ([]model.Transaction, error) {
	if path != "" {
		return a.extractFile(path)
	}

	s, err := store.Open(ctx, a.cfg.DBPath(a.dir), a.log)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	txns, err := s.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Int("transactions", len(txns)).Int("overrides", len(overrides)).Msg("loaded from store")
	return overlay.Apply(txns, overrides), nil
}

func (a *app) extractFile(path string) ([]model.Transaction, error) {
	rows, err := importer.DefaultRegistry().ReadFile(path)
	if err != nil {
		return nil, err
	}
	txns, stats := statement.Extract(rows, a.cfg.Statement)
	a.logStats(path, stats)
	return txns, nil
}

func (a *app) logStats(source string, stats statement.Stats) {
	a.log.Debug().
		Str("source", source).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("short", stats.ShortRows).
		Int("no_amount", stats.NoAmount).
		Int("zero_amount", stats.ZeroAmount).
		Int("bad_date", stats.BadDate).
		Msg("extracted transactions")
}

// selectTransactions loads transactions and applies the filter flags.
func (a *app) selectTransactions(ctx context.Context, path string, ff *filterFlags) ([]model.Transaction, error) {
	filters, err := ff.filters()
	if err != nil {
		return nil, err
	}
	txns, err := a.loadTransactions(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}
	selected := query.Apply(txns, filters...)
	if len(selected) == 0 {
		return nil, ErrNoMatches
	}
	return selected, nil
}

func fileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
