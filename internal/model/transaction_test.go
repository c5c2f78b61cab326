package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDirection(t *testing.T) {
	tests := []struct {
		amount  string
		out     bool
		in      bool
		outflow string
	}{
		{"-30.00", true, false, "30"},
		{"50.00", false, true, "0"},
		{"0", false, false, "0"},
	}
	for _, tt := range tests {
		txn := Transaction{Amount: decimal.RequireFromString(tt.amount)}
		assert.Equal(t, tt.out, txn.IsOutflow(), "IsOutflow(%s)", tt.amount)
		assert.Equal(t, tt.in, txn.IsInflow(), "IsInflow(%s)", tt.amount)
		assert.True(t, decimal.RequireFromString(tt.outflow).Equal(txn.Outflow()), "Outflow(%s)", tt.amount)
	}
}

func TestCategoriesClosedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 17)
	assert.Equal(t, CategoryEMI, cats[0])
	assert.Equal(t, CategoryOther, cats[len(cats)-1])

	seen := make(map[Category]bool)
	for _, c := range cats {
		assert.False(t, seen[c], "duplicate label %q", c)
		seen[c] = true
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("Travel").Valid())
	assert.False(t, Category("").Valid())
}
