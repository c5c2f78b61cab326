package statement

import (
	"errors"
	"fmt"

	"github.com/moneylens/moneylens/internal/classify"
	"github.com/moneylens/moneylens/internal/id"
	"github.com/moneylens/moneylens/internal/model"
	"github.com/moneylens/moneylens/internal/normalize"
)

// Stats counts what happened to each input row.
type Stats struct {
	Rows       int
	Kept       int
	ShortRows  int
	NoAmount   int
	ZeroAmount int
	BadDate    int
}

// Dropped returns the number of rejected rows.
func (s Stats) Dropped() int {
	return s.Rows - s.Kept
}

func (s *Stats) record(err error) {
	switch {
	case err == nil:
		s.Kept++
	case errors.Is(err, ErrShortRow):
		s.ShortRows++
	case errors.Is(err, ErrNoAmount):
		s.NoAmount++
	case errors.Is(err, ErrZeroAmount):
		s.ZeroAmount++
	case errors.Is(err, ErrBadDate):
		s.BadDate++
	}
}

// Resolve completes a draft: it parses the date day-first and derives the
// category and merchant from the description.
func Resolve(d Draft) (model.Transaction, error) {
	date, ok := normalize.Date(d.DateText)
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: %q", ErrBadDate, d.DateText)
	}
	return model.Transaction{
		Date:        date,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    classify.Category(d.Description),
		Merchant:    classify.Merchant(d.Description),
	}, nil
}

// Extract builds one transaction per usable row, in input order. Header,
// footer, balance-only and undated rows are dropped and counted in Stats.
// IDs are assigned per month in the order rows survive.
func Extract(rows []Row, layout Layout) ([]model.Transaction, Stats) {
	stats := Stats{Rows: len(rows)}
	var seq id.Sequencer
	var txns []model.Transaction

	for _, row := range rows {
		draft, err := layout.Build(row)
		if err != nil {
			stats.record(err)
			continue
		}
		txn, err := Resolve(draft)
		stats.record(err)
		if err != nil {
			continue
		}
		txn.ID = seq.Next(txn.Date)
		txns = append(txns, txn)
	}
	return txns, stats
}
