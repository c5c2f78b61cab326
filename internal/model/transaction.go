package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownMerchant is the merchant of a transaction whose description yields no name.
const UnknownMerchant = "Unknown"

// Transaction is one parsed statement row with its derived fields.
type Transaction struct {
	ID          string // "YYYY-MM-NNN", sequence within the month in statement order
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = withdrawal, positive = deposit
	Category    Category
	Merchant    string
}

// IsOutflow reports whether the transaction is a withdrawal.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// IsInflow reports whether the transaction is a deposit.
func (t Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// Outflow returns the absolute withdrawn amount, or zero for deposits.
func (t Transaction) Outflow() decimal.Decimal {
	if !t.IsOutflow() {
		return decimal.Zero
	}
	return t.Amount.Abs()
}
