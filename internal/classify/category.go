// Package classify derives a category and a merchant name from a transaction description.
// Both derivations depend on the description alone.
package classify

import (
	"strings"

	"github.com/moneylens/moneylens/internal/model"
)

// Rule maps any of its keywords to a category.
type Rule struct {
	Category model.Category
	Keywords []string
}

// rules are evaluated in order and the first match wins. Order matters:
// "emi via upi" is EMI, not a transfer.
var rules = []Rule{
	{model.CategoryEMI, []string{"emi", "installment"}},
	{model.CategoryRent, []string{"rent", "pg", "hostel"}},
	{model.CategoryInsurance, []string{"insurance", "policy", "premium"}},
	{model.CategorySubscription, []string{"netflix", "spotify", "prime", "hotstar", "subscription", "google one", "icloud"}},
	{model.CategoryFood, []string{"swiggy", "zomato", "restaurant", "food", "cafe"}},
	{model.CategoryGroceries, []string{"blinkit", "zepto", "instamart", "grocery"}},
	{model.CategoryOnlineShop, []string{"amazon", "flipkart", "myntra", "ajio"}},
	{model.CategoryOfflineShop, []string{"mall", "store", "retail"}},
	{model.CategoryCab, []string{"uber", "ola", "rapido"}},
	{model.CategoryPublicTransit, []string{"irctc", "rail", "metro", "bus"}},
	{model.CategoryStay, []string{"hotel", "oyo", "makemytrip"}},
	{model.CategoryUtilities, []string{"electricity", "water", "gas", "bill", "recharge"}},
	{model.CategoryInternet, []string{"wifi", "broadband", "internet", "jio", "airtel"}},
	{model.CategoryLoan, []string{"navi", "loan", "finance", "credit card"}},
	{model.CategoryInvestments, []string{"investment", "mutual fund", "sip"}},
	{model.CategoryTransfer, []string{"upi", "imps", "neft", "rtgs"}},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Category returns the category of a description. Keywords match as
// case-insensitive substrings. Descriptions matching no rule are CategoryOther.
func Category(desc string) model.Category {
	if strings.TrimSpace(desc) == "" {
		return model.CategoryOther
	}
	d := strings.ToLower(desc)
	for _, r := range rules {
		if containsAny(d, r.Keywords) {
			return r.Category
		}
	}
	return model.CategoryOther
}

// MatchedKeyword returns the first keyword that decided the category of desc,
// or "" when the description fell through to CategoryOther.
func MatchedKeyword(desc string) string {
	d := strings.ToLower(desc)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(d, kw) {
				return kw
			}
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
