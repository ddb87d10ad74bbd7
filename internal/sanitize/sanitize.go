// Package sanitize normalizes noisy captured values (bank account numbers,
// SWIFT/BIC codes) independent of which source produced them. Cleaners
// are pure and total: they never fail, and warnings are advisory metadata,
// never a reason to block the pipeline.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/constants"
)

// Result keeps the raw capture alongside the cleaned value so callers retain
// a full audit trail.
type Result struct {
	Raw      string   `json:"raw"`
	Cleaned  string   `json:"cleaned"`
	Warnings []string `json:"warnings,omitempty"`
}

var (
	reAccountLabel = regexp.MustCompile(`(?i)^\s*(?:CUENTA|ACCOUNT|CTA)\s*(?:No\.?|N[uú]m(?:ero)?\.?)?\s*[:.]?\s*`)
	reSwiftLabel   = regexp.MustCompile(`(?i)^\s*(?:SWIFT|BIC)\s*(?:code)?\s*[:.]?\s*`)
	reNonDigit     = regexp.MustCompile(`[^0-9]`)
	reNonAlnum     = regexp.MustCompile(`[^0-9A-Za-z]`)
	reSpaceRun     = regexp.MustCompile(`\s+`)
)

// CleanAccount strips a recognized label prefix, then everything that is not
// a digit. Length outside [6,20] is suspect but still returned.
func CleanAccount(raw string) Result {
	r := Result{Raw: raw}
	body := strings.TrimSpace(reAccountLabel.ReplaceAllString(raw, ""))
	digits := reNonDigit.ReplaceAllString(body, "")
	r.Cleaned = digits

	if digits == "" {
		r.Warnings = append(r.Warnings, constants.WarnAccountMissing)
		return r
	}
	if len(digits) < 6 || len(digits) > 20 {
		r.Warnings = append(r.Warnings, constants.WarnAccountLengthSuspect)
	}
	if digits != body {
		// noise beyond the label itself was removed
		r.Warnings = append(r.Warnings, constants.WarnAccountNormalized)
	}
	return r
}

// CleanSwift strips a recognized label prefix, removes non-alphanumerics and
// uppercases. A noise-free 9-character capture is assumed to be missing the
// optional 3-character branch code and is right-padded to 11 with 'X'.
// TODO: confirm with compliance whether X-padding is acceptable or the code
// should stay unpadded with only the length warning.
func CleanSwift(raw string) Result {
	r := Result{Raw: raw}
	body := strings.TrimSpace(reSwiftLabel.ReplaceAllString(raw, ""))
	code := strings.ToUpper(reNonAlnum.ReplaceAllString(body, ""))

	padded := false
	if len(code) == 9 && !reSpaceRun.MatchString(body) {
		code += strings.Repeat("X", 11-len(code))
		padded = true
	}
	r.Cleaned = code

	lengthOK := len(code) == 8 || len(code) == 11 || (len(code) == 9 && !padded)
	if !lengthOK {
		r.Warnings = append(r.Warnings, constants.WarnSwiftLengthSuspect)
	}
	if padded || code != body {
		r.Warnings = append(r.Warnings, constants.WarnSwiftNormalized)
	}
	return r
}

// CleanGeneric collapses whitespace runs to single spaces and trims.
func CleanGeneric(raw string) Result {
	r := Result{Raw: raw}
	r.Cleaned = strings.TrimSpace(reSpaceRun.ReplaceAllString(raw, " "))
	if r.Cleaned != raw {
		r.Warnings = append(r.Warnings, constants.WarnGenericNormalized)
	}
	return r
}
