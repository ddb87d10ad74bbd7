package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hebelmx/Veriqan-sub019/internal/sanitize"
)

func TestCleanAccount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCleaned  string
		wantWarnings []string
	}{
		{
			name:         "label and dash noise stripped",
			raw:          "CUENTA: 123-456",
			wantCleaned:  "123456",
			wantWarnings: []string{"AccountNormalized"},
		},
		{
			name:        "clean digits pass through without warnings",
			raw:         "CUENTA: 123456789",
			wantCleaned: "123456789",
		},
		{
			name:         "nothing left warns missing",
			raw:          "CUENTA: ----",
			wantCleaned:  "",
			wantWarnings: []string{"AccountMissing"},
		},
		{
			name:         "short account is suspect",
			raw:          "12345",
			wantCleaned:  "12345",
			wantWarnings: []string{"AccountLengthSuspect"},
		},
		{
			name:         "overlong account is suspect",
			raw:          "123456789012345678901",
			wantCleaned:  "123456789012345678901",
			wantWarnings: []string{"AccountLengthSuspect"},
		},
		{
			name:         "spaces inside the number are noise",
			raw:          "Cta. Num. 0123 4567 8901",
			wantCleaned:  "012345678901",
			wantWarnings: []string{"AccountNormalized"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sanitize.CleanAccount(tt.raw)
			assert.Equal(t, tt.raw, r.Raw, "raw input must be preserved exactly")
			assert.Equal(t, tt.wantCleaned, r.Cleaned)
			assert.Equal(t, tt.wantWarnings, r.Warnings)
		})
	}
}

func TestCleanSwift(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCleaned  string
		wantWarnings []string
	}{
		{
			name:        "valid 8-char code untouched",
			raw:         "BNMXMXMM",
			wantCleaned: "BNMXMXMM",
		},
		{
			name:        "valid 11-char code untouched",
			raw:         "SWIFT: BNMXMXMMXXX",
			wantCleaned: "BNMXMXMMXXX",
		},
		{
			name:         "9-char code with noise padded to 11",
			raw:          "BIC: BNMXMXMM-1",
			wantCleaned:  "BNMXMXMM1XX",
			wantWarnings: []string{"SwiftNormalized"},
		},
		{
			name:         "9-char code with internal whitespace stays unpadded",
			raw:          "BNMXMXMM 1",
			wantCleaned:  "BNMXMXMM1",
			wantWarnings: []string{"SwiftNormalized"},
		},
		{
			name:         "lowercase input is uppercased",
			raw:          "bnmxmxmm",
			wantCleaned:  "BNMXMXMM",
			wantWarnings: []string{"SwiftNormalized"},
		},
		{
			name:         "odd length is suspect",
			raw:          "SWIFT: BNMX1",
			wantCleaned:  "BNMX1",
			wantWarnings: []string{"SwiftLengthSuspect"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sanitize.CleanSwift(tt.raw)
			assert.Equal(t, tt.raw, r.Raw)
			assert.Equal(t, tt.wantCleaned, r.Cleaned)
			assert.Equal(t, tt.wantWarnings, r.Warnings)
		})
	}
}

func TestCleanGeneric(t *testing.T) {
	r := sanitize.CleanGeneric("  Fraude   fiscal\n agravado ")
	assert.Equal(t, "Fraude fiscal agravado", r.Cleaned)
	assert.Equal(t, []string{"GenericNormalized"}, r.Warnings)

	r = sanitize.CleanGeneric("Fraude fiscal")
	assert.Equal(t, "Fraude fiscal", r.Cleaned)
	assert.Empty(t, r.Warnings)

	// total on empty input
	r = sanitize.CleanGeneric("")
	assert.Equal(t, "", r.Cleaned)
	assert.Empty(t, r.Warnings)
}
