package strategy

import (
	"context"
	"log/slog"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/structure"
)

// Structured extracts against the predictable CNBV template: one labeled
// pattern per known field. Highest confidence when the document really
// follows the template, useless otherwise.
type Structured struct {
	logger *slog.Logger
}

func NewStructured(logger *slog.Logger) *Structured {
	if logger == nil {
		logger = slog.Default()
	}
	return &Structured{logger: logger}
}

func (s *Structured) Name() string { return constants.StrategyStructured }

func (s *Structured) CanHandle(fp entity.Fingerprint) bool {
	return fp.HasStructuredFormat || fp.HasKeyValuePairs || fp.StyledElementCount > 5
}

func (s *Structured) Confidence(fp entity.Fingerprint) float64 {
	switch {
	case fp.HasStructuredFormat:
		return 0.95
	case fp.HasKeyValuePairs && fp.StyledElementCount > 10:
		return 0.70
	case fp.HasKeyValuePairs || fp.StyledElementCount > 5:
		return 0.50
	default:
		return 0.0
	}
}

func (s *Structured) Extract(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition) (*entity.ExtractedFields, error) {
	if err := checkDoc(ctx, doc); err != nil {
		return nil, err
	}
	out := extractWith(doc, defs, matchDirect)
	out.Strategy = s.Name()
	out.Confidence = s.Confidence(structure.Analyze(doc))
	s.logger.Debug("extract.structured.ok",
		"source", string(doc.Source.Kind),
		"fields", len(out.FieldNames()),
		"confidence", out.Confidence,
	)
	return out, nil
}
