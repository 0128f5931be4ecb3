package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantCode   string
		wantNumber string
	}{
		{"international format", "639171234567", "63", "9171234567"},
		{"national format", "09171234567", "63", "9171234567"},
		{"bare mobile format", "9171234567", "63", "9171234567"},
		{"plus and spaces stripped", "+63 917 123 4567", "63", "9171234567"},
		{"dashes stripped", "0917-123-4567", "63", "9171234567"},
		{"too short", "12345", "", ""},
		{"landline shape", "0281234567", "", ""},
		{"international with wrong length", "6391712345", "", ""},
		{"national with extra digit", "091712345678", "", ""},
		{"empty", "", "", ""},
		{"no digits at all", "call me maybe", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, number := NormalizePhone(tt.raw)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantNumber, number)
		})
	}
}

func TestNormalizePhone_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{"\x00\xff", "٩٢٣", "+++---", "9", "00000000000000000000"}
	for _, in := range inputs {
		code, number := NormalizePhone(in)
		if code != "" && len(number) != 10 {
			t.Errorf("NormalizePhone(%q) = (%q, %q), want 10-digit number when code recognized", in, code, number)
		}
	}
}
