// Package statement turns extracted statement table rows into classified transactions.
package statement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneylens/moneylens/internal/normalize"
)

// Row is one extracted table row. Absent cells are empty strings.
type Row []string

// Layout locates transaction fields within a row by position.
type Layout struct {
	Date        int `yaml:"date"`
	Description int `yaml:"description"`
	Withdrawal  int `yaml:"withdrawal"`
	Deposit     int `yaml:"deposit"`
	MinCells    int `yaml:"min_cells"`
}

// DefaultLayout matches the common savings account table:
// #, Date, Description, Ref. No., Withdrawal, Deposit, Balance.
func DefaultLayout() Layout {
	return Layout{
		Date:        1,
		Description: 2,
		Withdrawal:  4,
		Deposit:     5,
		MinCells:    6,
	}
}

// Validate checks that every column fits inside MinCells.
func (l Layout) Validate() error {
	cols := map[string]int{
		"date":        l.Date,
		"description": l.Description,
		"withdrawal":  l.Withdrawal,
		"deposit":     l.Deposit,
	}
	for name, idx := range cols {
		if idx < 0 {
			return fmt.Errorf("%s column %d is negative", name, idx)
		}
		if idx >= l.MinCells {
			return fmt.Errorf("%s column %d outside min_cells %d", name, idx, l.MinCells)
		}
	}
	if l.Withdrawal == l.Deposit {
		return fmt.Errorf("withdrawal and deposit share column %d", l.Withdrawal)
	}
	return nil
}

// Rejection reasons returned by Build and Resolve.
var (
	ErrShortRow   = errors.New("short row")
	ErrNoAmount   = errors.New("no withdrawal or deposit")
	ErrZeroAmount = errors.New("zero amount")
	ErrBadDate    = errors.New("unparseable date")
)

// Draft is a row with a signed amount whose date text is not yet resolved.
type Draft struct {
	DateText    string
	Description string
	Amount      decimal.Decimal // negative = withdrawal
}

// Build reads the amount columns of a row. A withdrawal wins over a deposit
// when both cells hold a number.
func (l Layout) Build(row Row) (Draft, error) {
	if len(row) < l.MinCells {
		return Draft{}, fmt.Errorf("%w: %d cells", ErrShortRow, len(row))
	}

	var amount decimal.Decimal
	if wd, ok := normalize.Amount(row[l.Withdrawal]); ok {
		amount = wd.Neg()
	} else if dep, ok := normalize.Amount(row[l.Deposit]); ok {
		amount = dep
	} else {
		return Draft{}, ErrNoAmount
	}
	if amount.IsZero() {
		return Draft{}, ErrZeroAmount
	}

	return Draft{
		DateText:    row[l.Date],
		Description: row[l.Description],
		Amount:      amount,
	}, nil
}
