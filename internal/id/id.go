package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTxnID returns a transaction ID like "2026-01-007".
func FormatTxnID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseTxnID parses "2026-01-007" into year, month, seq.
func ParseTxnID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in transaction ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// Sequencer hands out per-month sequential transaction IDs starting at 001.
// The zero value is ready to use.
type Sequencer struct {
	last map[int]int // year*100+month -> last seq
}

// Next returns the next ID for the month containing date.
func (s *Sequencer) Next(date time.Time) string {
	if s.last == nil {
		s.last = make(map[int]int)
	}
	key := date.Year()*100 + int(date.Month())
	s.last[key]++
	return FormatTxnID(date.Year(), int(date.Month()), s.last[key])
}
