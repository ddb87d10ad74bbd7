// Package strategy holds the polymorphic extraction strategies and the
// selector that ranks them. Each strategy self-reports whether it can handle
// a document shape and with what confidence; extraction itself is regex
// pattern matching over the loaded text.
package strategy

import (
	"context"
	"fmt"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
)

// Strategy is the common extraction capability. CanHandle and Confidence are
// pure functions of the structural fingerprint; Extract reads the loaded
// document and returns a fresh ExtractedFields per call.
type Strategy interface {
	Name() string
	CanHandle(fp entity.Fingerprint) bool
	Confidence(fp entity.Fingerprint) float64
	Extract(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition) (*entity.ExtractedFields, error)
}

// ComplementExtractor is the two-source-context extraction the complement
// strategy provides on top of the base contract.
type ComplementExtractor interface {
	ExtractComplement(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition, xmlFields, ocrFields *entity.ExtractedFields) (*entity.ExtractedFields, error)
}

// matcher is one extraction tier applied to a single field.
type matcher func(text string, name constants.FieldName) (string, bool)

// checkDoc guards an extraction call: cancellation first, then a usable,
// non-empty document.
func checkDoc(ctx context.Context, doc *docsource.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil || doc.Text == "" {
		return fmt.Errorf("extract: %w", common.ErrNoUsableSource)
	}
	return nil
}

// extractWith runs one matcher over every requested field. Fields with no
// pattern or no match stay absent; unknown names are skipped silently. An
// empty defs list succeeds trivially with an empty result.
func extractWith(doc *docsource.Document, defs []entity.FieldDefinition, match matcher) *entity.ExtractedFields {
	out := &entity.ExtractedFields{Source: doc.Source.Kind}
	for _, def := range defs {
		switch def.Role {
		case entity.RoleAmount:
			out.Amounts = append(out.Amounts, extractAmounts(doc.Text)...)
		case entity.RoleDate:
			out.Dates = append(out.Dates, extractDates(doc.Text)...)
		default:
			v, ok := match(doc.Text, def.Name)
			if !ok {
				continue
			}
			setField(out, def.Name, v)
		}
	}
	return out
}

func setField(f *entity.ExtractedFields, name constants.FieldName, v string) {
	switch name {
	case constants.FieldExpediente:
		f.Expediente = v
	case constants.FieldCausa:
		f.Causa = v
	case constants.FieldAccionSolicitada:
		f.AccionSolicitada = v
	default:
		if f.Additional == nil {
			f.Additional = make(map[string]string)
		}
		f.Additional[string(name)] = v
	}
}
