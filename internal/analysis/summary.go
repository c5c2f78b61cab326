// Package analysis reduces a list of transactions to spending summaries.
// Every function is a pure reduction: inputs are never modified and an empty
// list produces zero totals and empty results.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneylens/moneylens/internal/model"
)

// Options tunes the thresholds used by Summarize.
type Options struct {
	SmallSpendLimit decimal.Decimal // outflows at or below this count as small spends
	RecurringMin    int             // outflow count that makes a merchant recurring
	TopMerchants    int             // how many merchants TopMerchants keeps
}

// DefaultOptions returns a 50 small-spend limit, 3 recurring, top 5.
func DefaultOptions() Options {
	return Options{
		SmallSpendLimit: decimal.NewFromInt(50),
		RecurringMin:    3,
		TopMerchants:    5,
	}
}

// CategoryTotal is the total outflow of one category.
type CategoryTotal struct {
	Category model.Category
	Amount   decimal.Decimal
}

// DailyTotal is the total outflow of one day.
type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

// MerchantTotal is the total outflow to one merchant.
type MerchantTotal struct {
	Merchant string
	Amount   decimal.Decimal
}

// MerchantCount is the number of outflows to one merchant.
type MerchantCount struct {
	Merchant string
	Count    int
}

// Totals holds the income and expense figures.
type Totals struct {
	Income         decimal.Decimal
	Expense        decimal.Decimal
	NetSavings     decimal.Decimal
	SavingsPercent decimal.Decimal // 0 when there is no income
}

// Summary is every aggregate for one set of transactions.
type Summary struct {
	Totals
	Transactions    int
	Categories      []CategoryTotal
	Daily           []DailyTotal
	TopMerchants    []MerchantTotal
	Recurring       []MerchantCount
	SmallSpend      decimal.Decimal
	SmallSpendCount int
	AvgDailySpend   decimal.Decimal
	TopCategory     model.Category // "" when there are no outflows
}

var hundred = decimal.NewFromInt(100)

// Summarize computes all aggregates.
func Summarize(txns []model.Transaction, opts Options) Summary {
	s := Summary{
		Totals:       ComputeTotals(txns),
		Transactions: len(txns),
		Categories:   ByCategory(txns),
		Daily:        ByDay(txns),
		TopMerchants: TopMerchants(txns, opts.TopMerchants),
		Recurring:    RecurringMerchants(txns, opts.RecurringMin),
	}
	s.SmallSpend, s.SmallSpendCount = SmallSpend(txns, opts.SmallSpendLimit)
	s.AvgDailySpend = AverageDaily(s.Daily)
	if len(s.Categories) > 0 {
		s.TopCategory = s.Categories[0].Category
	}
	return s
}

// ComputeTotals sums deposits and withdrawals and derives the savings rate.
func ComputeTotals(txns []model.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch {
		case t.IsInflow():
			income = income.Add(t.Amount)
		case t.IsOutflow():
			expense = expense.Add(t.Outflow())
		}
	}

	tot := Totals{
		Income:         income,
		Expense:        expense,
		NetSavings:     income.Sub(expense),
		SavingsPercent: decimal.Zero,
	}
	if income.IsPositive() {
		tot.SavingsPercent = tot.NetSavings.Div(income).Mul(hundred)
	}
	return tot
}

// ByCategory totals outflows per category, largest first. Equal totals are
// ordered by label.
func ByCategory(txns []model.Transaction) []CategoryTotal {
	sums := make(map[model.Category]decimal.Decimal)
	for _, t := range txns {
		if t.IsOutflow() {
			sums[t.Category] = sums[t.Category].Add(t.Outflow())
		}
	}

	out := make([]CategoryTotal, 0, len(sums))
	for c, amt := range sums {
		out = append(out, CategoryTotal{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ByDay totals outflows per calendar date, oldest first.
func ByDay(txns []model.Transaction) []DailyTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, t := range txns {
		if t.IsOutflow() {
			d := day(t.Date)
			sums[d] = sums[d].Add(t.Outflow())
		}
	}

	out := make([]DailyTotal, 0, len(sums))
	for d, amt := range sums {
		out = append(out, DailyTotal{Date: d, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AverageDaily is the mean of the daily totals, or zero for no days.
func AverageDaily(daily []DailyTotal) decimal.Decimal {
	if len(daily) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, d := range daily {
		sum = sum.Add(d.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(daily))))
}

// TopMerchants returns the n merchants with the largest outflow totals.
// Equal totals are ordered by merchant name. n <= 0 returns every merchant.
func TopMerchants(txns []model.Transaction, n int) []MerchantTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.IsOutflow() {
			sums[t.Merchant] = sums[t.Merchant].Add(t.Outflow())
		}
	}

	out := make([]MerchantTotal, 0, len(sums))
	for m, amt := range sums {
		out = append(out, MerchantTotal{Merchant: m, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Merchant < out[j].Merchant
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RecurringMerchants returns merchants with at least minCount outflows, most
// frequent first. Merchants are compared by exact name.
func RecurringMerchants(txns []model.Transaction, minCount int) []MerchantCount {
	counts := make(map[string]int)
	for _, t := range txns {
		if t.IsOutflow() {
			counts[t.Merchant]++
		}
	}

	var out []MerchantCount
	for m, n := range counts {
		if n >= minCount {
			out = append(out, MerchantCount{Merchant: m, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Merchant < out[j].Merchant
	})
	return out
}

// SmallSpend sums outflows whose size is at most limit and counts them.
func SmallSpend(txns []model.Transaction, limit decimal.Decimal) (decimal.Decimal, int) {
	total, count := decimal.Zero, 0
	for _, t := range txns {
		if t.IsOutflow() && t.Outflow().LessThanOrEqual(limit) {
			total = total.Add(t.Outflow())
			count++
		}
	}
	return total, count
}
