package strategy

import (
	"context"
	"log/slog"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/structure"
)

// Search resolves textual cross-references ("la cuenta arriba mencionada"):
// it first tries the same labeled match as the structured strategy, and when
// that fails on a document that carries cross-reference phrases, it rescans
// the whole document with the bare value-shape pattern.
//
// The full-document rescan is a deliberate simplification of true backward
// search from the reference point; the target documents are short enough
// that precision has not been a problem. Do not quietly replace it with
// positional search without product sign-off.
type Search struct {
	logger *slog.Logger
}

func NewSearch(logger *slog.Logger) *Search {
	if logger == nil {
		logger = slog.Default()
	}
	return &Search{logger: logger}
}

func (s *Search) Name() string { return constants.StrategySearch }

// CanHandle is always true: the confidence floor applies even to minimally
// structured documents.
func (s *Search) CanHandle(entity.Fingerprint) bool { return true }

func (s *Search) Confidence(fp entity.Fingerprint) float64 {
	if fp.HasCrossReferences {
		return 0.90
	}
	return 0.60
}

func (s *Search) Extract(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition) (*entity.ExtractedFields, error) {
	if err := checkDoc(ctx, doc); err != nil {
		return nil, err
	}
	hasRefs := structure.ContainsCrossReference(doc.Text)
	out := extractWith(doc, defs, func(text string, name constants.FieldName) (string, bool) {
		if v, ok := matchDirect(text, name); ok {
			return v, true
		}
		if !hasRefs {
			return "", false
		}
		return matchLenient(text, name)
	})
	out.Strategy = s.Name()
	out.Confidence = s.Confidence(structure.Analyze(doc))
	s.logger.Debug("extract.search.ok",
		"source", string(doc.Source.Kind),
		"cross_refs", hasRefs,
		"fields", len(out.FieldNames()),
		"confidence", out.Confidence,
	)
	return out, nil
}
