package store

import (
	"context"
	"fmt"
	"time"

	"github.com/moneylens/moneylens/internal/model"
	"github.com/moneylens/moneylens/internal/overlay"
)

// SetOverride validates and records a manual correction, replacing any
// earlier override of the same transaction.
func (s *Store) SetOverride(ctx context.Context, o overlay.Override) error {
	if err := overlay.Join(overlay.Validate(o)); err != nil {
		return err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE id = ?`, o.TxnID).Scan(&exists); err != nil {
		return fmt.Errorf("looking up transaction %s: %w", o.TxnID, err)
	}
	if exists == 0 {
		return fmt.Errorf("transaction %s: %w", o.TxnID, ErrNotFound)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overrides (txn_id, category, merchant, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(txn_id) DO UPDATE SET
			category = excluded.category,
			merchant = excluded.merchant,
			updated_at = excluded.updated_at`,
		o.TxnID, string(o.Category), o.Merchant, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving override %s: %w", o.TxnID, err)
	}
	s.log.Debug().Str("txn", o.TxnID).Str("category", string(o.Category)).Str("merchant", o.Merchant).Msg("saved override")
	return nil
}

// Overrides returns every recorded override ordered by transaction ID.
func (s *Store) Overrides(ctx context.Context) ([]overlay.Override, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT txn_id, category, merchant FROM overrides ORDER BY txn_id`)
	if err != nil {
		return nil, fmt.Errorf("querying overrides: %w", err)
	}
	defer rows.Close()

	var out []overlay.Override
	for rows.Next() {
		var o overlay.Override
		var category string
		if err := rows.Scan(&o.TxnID, &category, &o.Merchant); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}
		o.Category = model.Category(category)
		out = append(out, o)
	}
	return out, rows.Err()
}

// ClearOverride removes the override of one transaction.
func (s *Store) ClearOverride(ctx context.Context, txnID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM overrides WHERE txn_id = ?`, txnID)
	if err != nil {
		return fmt.Errorf("deleting override %s: %w", txnID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting override %s: %w", txnID, err)
	}
	if n == 0 {
		return fmt.Errorf("override %s: %w", txnID, ErrNotFound)
	}
	return nil
}
