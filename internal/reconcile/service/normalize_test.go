package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hex bolt-M8", "HEXBOLTM8"},
		{"  a b  ", "AB"},
		{"M8X20 (SUS304)", "M8X20SUS304"},
		{"자재명", ""},
		{"Ø12 мм", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeAlphabetAndIdempotent(t *testing.T) {
	only := regexp.MustCompile(`^[A-Z0-9]*$`)
	for _, s := range []string{"SW (Spring Washer)", "볼트 M8 x 20", "p.no 12/34", "\tTab\r\n", "ÄÖÜ abc"} {
		n := Normalize(s)
		assert.Regexp(t, only, n)
		assert.Equal(t, n, Normalize(n))
	}
}

func TestExtractDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"3EA", "3"},
		{"EA", "0"},
		{"10", "10"},
		{"1,000pcs", "1000"},
		{"-5", "5"},
		{"2.5", "25"},
		{"", "0"},
		{"１２", "0"}, // полноширинные цифры: не ASCII
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractDigits(tt.in), "ExtractDigits(%q)", tt.in)
	}
}
