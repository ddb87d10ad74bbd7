package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/structure"
)

// Complement fills only the fields two other sources are both missing.
// Documents legitimately split data across XML/PDF/DOCX: finding an amount
// only in the DOCX while XML and PDF carry the account numbers is the normal
// case, not an error condition.
type Complement struct {
	logger *slog.Logger
}

func NewComplement(logger *slog.Logger) *Complement {
	if logger == nil {
		logger = slog.Default()
	}
	return &Complement{logger: logger}
}

func (c *Complement) Name() string { return constants.StrategyComplement }

// CanHandle is always true; gap filling is attempted regardless of
// structure quality.
func (c *Complement) CanHandle(entity.Fingerprint) bool { return true }

// Confidence starts at the 0.80 floor and grows with structural quality,
// clamped to 0.95.
func (c *Complement) Confidence(fp entity.Fingerprint) float64 {
	conf := 0.80
	if fp.HasStructuredFormat {
		conf += 0.20
	}
	if fp.HasBoldLabels || fp.HasKeyValuePairs {
		conf += 0.15
	}
	if fp.HasTables && fp.TableRows > 1 {
		conf += 0.10
	}
	if fp.StyledElementCount > 8 {
		conf += 0.05
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// Extract without context is unsupported: complement's whole point is
// knowing what two other sources already produced.
func (c *Complement) Extract(ctx context.Context, _ *docsource.Document, _ []entity.FieldDefinition) (*entity.ExtractedFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("complement: use ExtractComplement: %w", common.ErrComplementContext)
}

// ExtractComplement extracts, from its own source, only the fields missing
// from BOTH xmlFields and ocrFields. The result contains just the fields it
// filled; merging with the other two sets is the caller's job.
func (c *Complement) ExtractComplement(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition, xmlFields, ocrFields *entity.ExtractedFields) (*entity.ExtractedFields, error) {
	if err := checkDoc(ctx, doc); err != nil {
		return nil, err
	}

	var wanted []entity.FieldDefinition
	for _, def := range defs {
		switch def.Role {
		case entity.RoleAmount:
			if len(collectAmounts(xmlFields)) == 0 && len(collectAmounts(ocrFields)) == 0 {
				wanted = append(wanted, def)
			}
		case entity.RoleDate:
			if len(collectDates(xmlFields)) == 0 && len(collectDates(ocrFields)) == 0 {
				wanted = append(wanted, def)
			}
		default:
			if !xmlFields.HasValue(def.Name) && !ocrFields.HasValue(def.Name) {
				wanted = append(wanted, def)
			}
		}
	}

	out := extractWith(doc, wanted, func(text string, name constants.FieldName) (string, bool) {
		if v, ok := matchDirect(text, name); ok {
			return v, true
		}
		return matchLenient(text, name)
	})
	out.Strategy = c.Name()
	out.Confidence = c.Confidence(structure.Analyze(doc))
	c.logger.Debug("extract.complement.ok",
		"source", string(doc.Source.Kind),
		"missing_fields", len(wanted),
		"filled", len(out.FieldNames()),
		"confidence", out.Confidence,
	)
	return out, nil
}

func collectAmounts(f *entity.ExtractedFields) []entity.MonetaryAmount {
	if f == nil {
		return nil
	}
	return f.Amounts
}

func collectDates(f *entity.ExtractedFields) []string {
	if f == nil {
		return nil
	}
	return f.Dates
}
