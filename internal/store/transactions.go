package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/moneylens/moneylens/internal/id"
	"github.com/moneylens/moneylens/internal/model"
	"github.com/moneylens/moneylens/internal/statement"
)

const dateFormat = "2006-01-02"

// Import describes one imported statement file.
type Import struct {
	ID         string
	Source     string
	Checksum   string
	ImportedAt time.Time
	Rows       int
	Kept       int
}

// SaveImport records a statement import and its transactions. Transaction IDs
// are reassigned so that sequences continue after the IDs already stored for
// each month. The stored transactions are returned.
func (s *Store) SaveImport(ctx context.Context, source, checksum string, stats statement.Stats, txns []model.Transaction) (Import, []model.Transaction, error) {
	imp := Import{
		ID:         uuid.NewString(),
		Source:     source,
		Checksum:   checksum,
		ImportedAt: s.now().UTC().Truncate(time.Second),
		Rows:       stats.Rows,
		Kept:       len(txns),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, nil, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, checksum, imported_at, row_count, kept_count) VALUES (?, ?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.Checksum, imp.ImportedAt.Format(time.RFC3339), imp.Rows, imp.Kept)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return Import{}, nil, fmt.Errorf("%w: %s", ErrDuplicateImport, source)
		}
		return Import{}, nil, fmt.Errorf("inserting import: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (id, import_id, date, description, amount, category, merchant) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Import{}, nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	lastSeq := make(map[[2]int]int)
	stored := make([]model.Transaction, len(txns))
	for i, t := range txns {
		key := [2]int{t.Date.Year(), int(t.Date.Month())}
		if _, ok := lastSeq[key]; !ok {
			seq, err := maxSeq(ctx, tx, key[0], key[1])
			if err != nil {
				return Import{}, nil, err
			}
			lastSeq[key] = seq
		}
		lastSeq[key]++
		t.ID = id.FormatTxnID(key[0], key[1], lastSeq[key])

		if _, err := stmt.ExecContext(ctx, t.ID, imp.ID, t.Date.Format(dateFormat), t.Description,
			t.Amount.String(), string(t.Category), t.Merchant); err != nil {
			return Import{}, nil, fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
		stored[i] = t
	}

	if err := tx.Commit(); err != nil {
		return Import{}, nil, fmt.Errorf("committing import: %w", err)
	}

	s.log.Info().Str("import", imp.ID).Str("source", source).Int("transactions", len(stored)).Msg("saved import")
	return imp, stored, nil
}

// maxSeq returns the highest stored sequence number for a month, or 0.
func maxSeq(ctx context.Context, tx *sql.Tx, year, month int) (int, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	rows, err := tx.QueryContext(ctx, `SELECT id FROM transactions WHERE id LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, fmt.Errorf("reading sequences for %s: %w", prefix, err)
	}
	defer rows.Close()

	best := 0
	for rows.Next() {
		var txnID string
		if err := rows.Scan(&txnID); err != nil {
			return 0, fmt.Errorf("scanning transaction id: %w", err)
		}
		_, _, seq, err := id.ParseTxnID(txnID)
		if err != nil {
			continue
		}
		if seq > best {
			best = seq
		}
	}
	return best, rows.Err()
}

// Imports returns every recorded import, oldest first.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, checksum, imported_at, row_count, kept_count FROM imports ORDER BY imported_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		var at string
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.Checksum, &at, &imp.Rows, &imp.Kept); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		imp.ImportedAt, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parsing imported_at %q: %w", at, err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

// Transactions returns every stored transaction ordered by date, then import order.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, description, amount, category, merchant FROM transactions ORDER BY date, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date, amount, category string
		if err := rows.Scan(&t.ID, &date, &t.Description, &amount, &category, &t.Merchant); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if t.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("parsing date %q of %s: %w", date, t.ID, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing amount %q of %s: %w", amount, t.ID, err)
		}
		t.Category = model.Category(category)
		out = append(out, t)
	}
	return out, rows.Err()
}
