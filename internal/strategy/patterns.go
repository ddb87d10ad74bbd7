package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
)

// patternSet holds the two extraction tiers for one field: direct matches the
// labeled template line; lenient matches the bare value shape anywhere in the
// document and backs the search strategy's full-document fallback.
type patternSet struct {
	direct  *regexp.Regexp
	lenient *regexp.Regexp // nil -> no broader shape exists for this field
}

var fieldPatterns = map[constants.FieldName]patternSet{
	constants.FieldExpediente: {
		direct:  regexp.MustCompile(`(?i)\bEXPEDIENTE\s*(?:No\.?|N[uú]m(?:ero)?\.?)?\s*[:.]?\s*([A-Z0-9][A-Z0-9/.-]*[A-Z0-9])`),
		lenient: regexp.MustCompile(`\b([A-Z]{2,5}[-/]\d{2,6}(?:[-/]\d{2,6})?)\b`),
	},
	constants.FieldCausa: {
		direct:  regexp.MustCompile(`(?i)\bCAUSA\s*[:.]\s*([^\n]+)`),
		lenient: regexp.MustCompile(`(?i)\bcausa\s+(?:de\s+|del\s+)?([^\n.]{3,})`),
	},
	constants.FieldAccionSolicitada: {
		direct:  regexp.MustCompile(`(?i)\bACCI[OÓ]N\s+SOLICITADA\s*[:.]\s*([^\n]+)`),
		lenient: regexp.MustCompile(`(?i)\bacci[oó]n\s+solicitada\s*[:.]?\s*([^\n]+)`),
	},
	constants.FieldRFC: {
		direct:  regexp.MustCompile(`(?i)\bR\.?F\.?C\.?\s*[:.]\s*([A-ZÑ&]{3,4}\s?\d{6}\s?[A-Z0-9]{3})\b`),
		lenient: regexp.MustCompile(`\b([A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3})\b`),
	},
	constants.FieldCURP: {
		direct:  regexp.MustCompile(`(?i)\bCURP\s*[:.]\s*([A-Z0-9]{18})\b`),
		lenient: regexp.MustCompile(`\b([A-Z]{4}\d{6}[HM][A-Z]{5}[0-9A-Z]\d)\b`),
	},
	constants.FieldCuenta: {
		direct:  regexp.MustCompile(`(?i)\bCUENTA\s*(?:No\.?|N[uú]m(?:ero)?\.?)?\s*[:.]?\s*([0-9][0-9 \-]{4,}[0-9])`),
		lenient: regexp.MustCompile(`\b(\d{10,20})\b`),
	},
	constants.FieldSwift: {
		direct:  regexp.MustCompile(`(?i)\b(?:SWIFT|BIC)\s*(?:code)?\s*[:.]?\s*([A-Za-z0-9]{8,11})\b`),
		lenient: regexp.MustCompile(`\b([A-Z]{6}[A-Z0-9]{2}(?:[A-Z0-9]{3})?)\b`),
	},
}

// matchDirect applies the labeled template pattern for name.
func matchDirect(text string, name constants.FieldName) (string, bool) {
	ps, ok := fieldPatterns[name]
	if !ok || ps.direct == nil {
		return "", false
	}
	return capture(ps.direct, text)
}

// matchLenient applies the un-anchored value-shape pattern for name, falling
// back to the direct pattern when no shape is defined.
func matchLenient(text string, name constants.FieldName) (string, bool) {
	ps, ok := fieldPatterns[name]
	if !ok {
		return "", false
	}
	re := ps.lenient
	if re == nil {
		re = ps.direct
	}
	return capture(re, text)
}

func capture(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimRight(strings.TrimSpace(m[1]), ".")
	if v == "" {
		return "", false
	}
	return v, true
}

var (
	reAmount = regexp.MustCompile(`(?i)(MXN|USD|EUR|\$)?\s*(\d{1,3}(?:,\d{3})+\.\d{2}|\d+\.\d{2})\s*(MXN|USD|EUR|M\.N\.|pesos)?`)
	reDates  = regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}\s+de\s+[a-zá-ú]+\s+de\s+\d{4}\b`)
)

// extractAmounts captures every monetary amount in document order. Currency
// defaults to MXN when only a "$" or "M.N." marker is present.
func extractAmounts(text string) []entity.MonetaryAmount {
	var out []entity.MonetaryAmount
	for _, m := range reAmount.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(m[0])
		num := strings.ReplaceAll(m[2], ",", "")
		val, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		out = append(out, entity.MonetaryAmount{
			CurrencyCode: currencyCode(m[1], m[3]),
			Value:        val,
			Raw:          raw,
		})
	}
	return out
}

func currencyCode(prefix, suffix string) string {
	for _, c := range []string{prefix, suffix} {
		switch strings.ToUpper(strings.TrimSpace(c)) {
		case "USD":
			return "USD"
		case "EUR":
			return "EUR"
		case "MXN":
			return "MXN"
		}
	}
	return "MXN"
}

// extractDates captures date strings in document order, unparsed: raw text is
// what downstream reconciliation compares on.
func extractDates(text string) []string {
	return reDates.FindAllString(text, -1)
}
