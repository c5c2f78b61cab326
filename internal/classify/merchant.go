package classify

import (
	"regexp"
	"strings"

	"github.com/moneylens/moneylens/internal/model"
)

// MaxMerchantLen caps the merchant name, in characters.
const MaxMerchantLen = 25

var (
	// Transfer prefixes, "/<digits>" reference numbers and value-date notes.
	merchantNoise = regexp.MustCompile(`UPI/|IMPS/|NEFT/|/\d+|\(VALUE DATE.*?\)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Merchant derives a short uppercase merchant name from a description, e.g.
// "UPI/Swiggy/12345" -> "SWIGGY". Empty input yields model.UnknownMerchant.
func Merchant(desc string) string {
	d := strings.ToUpper(desc)
	d = merchantNoise.ReplaceAllString(d, "")
	d = strings.TrimSpace(whitespace.ReplaceAllString(d, " "))

	if i := strings.Index(d, "/"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimSpace(truncate(d, MaxMerchantLen))
	if d == "" {
		return model.UnknownMerchant
	}
	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
