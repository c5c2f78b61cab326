package commands

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/importer"
	"github.com/moneylens/moneylens/internal/logger"
	"github.com/moneylens/moneylens/internal/statement"
	"github.com/moneylens/moneylens/internal/store"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import statement files from import/ into the local history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *app) runImport(ctx context.Context, out io.Writer) error {
	log := logger.FromContext(ctx)
	reg := importer.DefaultRegistry()

	files, err := reg.Scan(a.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No statement files in import/.")
		return nil
	}

	s, err := store.Open(ctx, a.cfg.DBPath(a.dir), a.log)
	if err != nil {
		return err
	}
	defer s.Close()

	total := 0
	for _, fi := range files {
		data, err := os.ReadFile(fi.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", fi.Name, err)
		}
		sum := sha256.Sum256(data)

		rows, err := reg.Get(fi.Format).Rows(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("reading %s: %w", fi.Name, err)
		}
		txns, stats := statement.Extract(rows, a.cfg.Statement)
		a.logStats(fi.Name, stats)

		_, stored, err := s.SaveImport(ctx, fi.Name, hex.EncodeToString(sum[:]), stats, txns)
		switch {
		case errors.Is(err, store.ErrDuplicateImport):
			log.Warn().Str("file", fi.Name).Msg("statement already imported, skipping")
			fmt.Fprintf(out, "%s: already imported\n", fi.Name)
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "%s: %d transactions (%d rows skipped)\n", fi.Name, len(stored), stats.Dropped())
			total += len(stored)
		}

		if err := importer.MarkProcessed(a.dir, fi.Name); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Imported %d transactions from %d files.\n", total, len(files))
	return nil
}
