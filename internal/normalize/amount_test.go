package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		cell string
		want string
		ok   bool
	}{
		{"1,234.50", "1234.50", true},
		{"30.00", "30.00", true},
		{"  19.99 ", "19.99", true},
		{"1,23,456", "123456.00", true},
		{"0.5", "0.50", true},
		{"5.", "5.00", true},
		{"", "", false},
		{"   ", "", false},
		{"-", "", false},
		{"-30.00", "", false},
		{"+30.00", "", false},
		{"₹30.00", "", false},
		{"$30", "", false},
		{"30.00 Cr", "", false},
		{"1.2.3", "", false},
		{".", "", false},
		{",", "", false},
		{"N/A", "", false},
		{"1 000", "", false},
	}
	for _, tt := range tests {
		got, ok := Amount(tt.cell)
		assert.Equal(t, tt.ok, ok, "Amount(%q) ok", tt.cell)
		if tt.ok {
			assert.Equal(t, tt.want, got.StringFixed(2), "Amount(%q)", tt.cell)
		} else {
			assert.True(t, got.IsZero(), "Amount(%q) should be zero when absent", tt.cell)
		}
	}
}

func TestAmount_RejectsAnyForeignCharacter(t *testing.T) {
	for _, r := range "abcxyzABC$€₹£-+_/\\()*#%eE" {
		cell := "12" + string(r) + "34"
		_, ok := Amount(cell)
		assert.False(t, ok, "Amount(%q) should be absent", cell)
	}
}
