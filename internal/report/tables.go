// Package report turns transactions and their summary into exportable tables
// and a terminal overview.
package report

import (
	"github.com/moneylens/moneylens/internal/analysis"
	"github.com/moneylens/moneylens/internal/model"
)

// Sheet names of the exported tables.
const (
	TransactionsTable    = "Transactions"
	CategorySummaryTable = "Category Summary"
)

const dateFormat = "2006-01-02"

// Column is one table column. Numeric columns hold decimal strings.
type Column struct {
	Name    string
	Numeric bool
}

// Table is a named grid of string cells.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// Header returns the column names.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Tables returns the Transactions table followed by the Category Summary table.
func Tables(txns []model.Transaction, s analysis.Summary) []Table {
	return []Table{TransactionTable(txns), CategoryTable(s.Categories)}
}

// TransactionTable lists every transaction in input order.
func TransactionTable(txns []model.Transaction) Table {
	t := Table{
		Name: TransactionsTable,
		Columns: []Column{
			{Name: "ID"},
			{Name: "Date"},
			{Name: "Description"},
			{Name: "Amount", Numeric: true},
			{Name: "Category"},
			{Name: "Merchant"},
		},
		Rows: make([][]string, 0, len(txns)),
	}
	for _, txn := range txns {
		t.Rows = append(t.Rows, []string{
			txn.ID,
			txn.Date.Format(dateFormat),
			txn.Description,
			txn.Amount.StringFixed(2),
			string(txn.Category),
			txn.Merchant,
		})
	}
	return t
}

// CategoryTable lists category outflow totals in the given order.
func CategoryTable(cats []analysis.CategoryTotal) Table {
	t := Table{
		Name: CategorySummaryTable,
		Columns: []Column{
			{Name: "Category"},
			{Name: "Amount", Numeric: true},
		},
		Rows: make([][]string, 0, len(cats)),
	}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{string(c.Category), c.Amount.StringFixed(2)})
	}
	return t
}
