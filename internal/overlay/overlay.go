// Package overlay applies manual category and merchant corrections on top of
// derived transaction fields.
package overlay

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/moneylens/moneylens/internal/classify"
	"github.com/moneylens/moneylens/internal/id"
	"github.com/moneylens/moneylens/internal/model"
)

// ErrUnknownCategory is wrapped by validation errors for labels outside the known set.
var ErrUnknownCategory = errors.New("unknown category")

// Override replaces the derived fields of one transaction. Empty fields keep
// the derived value.
type Override struct {
	TxnID    string
	Category model.Category
	Merchant string
}

// IsEmpty reports whether the override changes nothing.
func (o Override) IsEmpty() bool {
	return o.Category == "" && strings.TrimSpace(o.Merchant) == ""
}

// ValidationError describes one problem with an override.
type ValidationError struct {
	TxnID string
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("override %s: %s: %v", e.TxnID, e.Field, e.Err)
}

func (e ValidationError) Unwrap() error { return e.Err }

// Validate checks the transaction ID format, the category label and the merchant length.
func Validate(o Override) []ValidationError {
	var errs []ValidationError

	if _, _, _, err := id.ParseTxnID(o.TxnID); err != nil {
		errs = append(errs, ValidationError{TxnID: o.TxnID, Field: "id", Err: err})
	}
	if o.IsEmpty() {
		errs = append(errs, ValidationError{TxnID: o.TxnID, Field: "override", Err: errors.New("nothing to change")})
	}
	if o.Category != "" && !o.Category.Valid() {
		errs = append(errs, ValidationError{
			TxnID: o.TxnID,
			Field: "category",
			Err:   fmt.Errorf("%w %q", ErrUnknownCategory, o.Category),
		})
	}
	if n := utf8.RuneCountInString(o.Merchant); n > classify.MaxMerchantLen {
		errs = append(errs, ValidationError{
			TxnID: o.TxnID,
			Field: "merchant",
			Err:   fmt.Errorf("%d characters, limit %d", n, classify.MaxMerchantLen),
		})
	}
	return errs
}

// Join folds validation errors into one error, or nil.
func Join(verrs []ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, len(verrs))
	for i, ve := range verrs {
		errs[i] = ve
	}
	return errors.Join(errs...)
}

// Apply returns a copy of txns with overrides applied by transaction ID.
// Overrides for unknown IDs are ignored; a later override for the same ID wins.
func Apply(txns []model.Transaction, overrides []Override) []model.Transaction {
	byID := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		byID[o.TxnID] = o
	}

	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		if o, ok := byID[t.ID]; ok {
			if o.Category != "" {
				t.Category = o.Category
			}
			if m := strings.TrimSpace(o.Merchant); m != "" {
				t.Merchant = m
			}
		}
		out[i] = t
	}
	return out
}
