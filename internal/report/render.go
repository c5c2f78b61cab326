package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/moneylens/moneylens/internal/analysis"
)

const (
	labelWidth = 28
	barWidth   = 20
)

var (
	primaryColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	subtleColor  = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#333333")
)

// styles are bound to the renderer of the output writer so that colors are
// dropped when writing to a file or buffer.
type styles struct {
	title   lipgloss.Style
	box     lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	bar     lipgloss.Style
	subtle  lipgloss.Style
	warning lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(primaryColor).MarginTop(1),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 2),
		label:   r.NewStyle().Width(labelWidth),
		value:   r.NewStyle().Bold(true),
		bar:     r.NewStyle().Foreground(primaryColor),
		subtle:  r.NewStyle().Foreground(subtleColor),
		warning: r.NewStyle().Foreground(warningColor),
	}
}

// Render writes a terminal overview of the summary: headline figures,
// category breakdown, top and recurring merchants, and insights.
func Render(w io.Writer, s analysis.Summary, opts analysis.Options) error {
	st := newStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	b.WriteString(st.title.Render("Overview"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		st.kpi("Total Income", money(s.Income)),
		st.kpi("Total Expense", money(s.Expense)),
		st.kpi("Net Savings", money(s.NetSavings)),
		st.kpi("Savings %", s.SavingsPercent.StringFixed(1)+"%"),
	))
	b.WriteString("\n")
	b.WriteString(st.subtle.Render(fmt.Sprintf("%d transactions", s.Transactions)))
	b.WriteString("\n")

	if len(s.Categories) > 0 {
		b.WriteString(st.title.Render("Spending by Category"))
		b.WriteString("\n")
		top := s.Categories[0].Amount
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "%s %s %s\n",
				st.label.Render(string(c.Category)),
				st.bar.Render(bar(c.Amount, top)),
				money(c.Amount))
		}
	}

	if len(s.TopMerchants) > 0 {
		b.WriteString(st.title.Render("Top Merchants"))
		b.WriteString("\n")
		for _, m := range s.TopMerchants {
			fmt.Fprintf(&b, "%s %s\n", st.label.Render(m.Merchant), money(m.Amount))
		}
	}

	if len(s.Recurring) > 0 {
		b.WriteString(st.title.Render("Recurring Merchants"))
		b.WriteString("\n")
		for _, m := range s.Recurring {
			fmt.Fprintf(&b, "%s %d payments\n", st.label.Render(m.Merchant), m.Count)
		}
	}

	b.WriteString(st.title.Render("Key Insights"))
	b.WriteString("\n")
	for _, line := range Insights(s) {
		fmt.Fprintf(&b, "• %s\n", line)
	}
	if warn := LeakageWarning(s, opts); warn != "" {
		b.WriteString(st.warning.Render("! " + warn))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (st styles) kpi(label, value string) string {
	return st.box.Render(st.subtle.Render(label) + "\n" + st.value.Render(value))
}

// Insights returns the plain-text observations shown under Key Insights.
func Insights(s analysis.Summary) []string {
	top := "N/A"
	if s.TopCategory != "" {
		top = string(s.TopCategory)
	}
	out := []string{
		"Total spending is " + money(s.Expense),
		"Highest spending category is " + top,
		"Average daily spend is " + money(s.AvgDailySpend),
	}
	if len(s.Recurring) > 0 {
		out = append(out, s.Recurring[0].Merchant+" is a recurring merchant")
	}
	return out
}

// LeakageWarning describes the small-spend total, or returns "" when there
// are no small spends.
func LeakageWarning(s analysis.Summary, opts analysis.Options) string {
	if !s.SmallSpend.IsPositive() {
		return ""
	}
	return fmt.Sprintf("Small spends ≤%s total %s across %d transactions (silent leakage)",
		opts.SmallSpendLimit.String(), money(s.SmallSpend), s.SmallSpendCount)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func bar(amount, top decimal.Decimal) string {
	if !top.IsPositive() {
		return strings.Repeat(" ", barWidth)
	}
	n := int(amount.Div(top).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 1 && amount.IsPositive() {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}
