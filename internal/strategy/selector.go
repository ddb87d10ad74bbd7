package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/merge"
	"github.com/hebelmx/Veriqan-sub019/internal/structure"
)

// Ranked is one applicable strategy with its confidence for a document.
type Ranked struct {
	Strategy   Strategy
	Confidence float64
}

// Selector ranks the registered strategies against a document's fingerprint
// and runs them in one of three modes: best-only, merge-all, or complement.
type Selector struct {
	logger     *slog.Logger
	merger     *merge.Engine
	strategies []Strategy
	// MinConfidence is the audit floor: a winning strategy below it still
	// runs, but the selection is logged as low-confidence. Zero disables.
	MinConfidence float64
}

// NewSelector builds a selector. With no strategies given it registers the
// standard set: structured, search, complement.
func NewSelector(logger *slog.Logger, merger *merge.Engine, strategies ...Strategy) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	if merger == nil {
		merger = merge.NewEngine(logger)
	}
	if len(strategies) == 0 {
		strategies = []Strategy{
			NewStructured(logger),
			NewSearch(logger),
			NewComplement(logger),
		}
	}
	return &Selector{logger: logger, merger: merger, strategies: strategies}
}

// Rank returns the strategies that can handle fp, sorted by confidence
// descending. Registration order breaks ties.
func (s *Selector) Rank(fp entity.Fingerprint) []Ranked {
	var ranked []Ranked
	for _, st := range s.strategies {
		if !st.CanHandle(fp) {
			continue
		}
		ranked = append(ranked, Ranked{Strategy: st, Confidence: st.Confidence(fp)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	return ranked
}

// ExtractBest runs only the top-ranked strategy. When no strategy can handle
// the document it returns (nil, nil): "we don't understand this document's
// shape" is not a failure and callers must be able to tell it apart from
// "strategy ran and broke".
func (s *Selector) ExtractBest(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition) (*entity.ExtractedFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fp := structure.Analyze(doc)
	ranked := s.Rank(fp)
	// context-requiring strategies cannot run standalone; they participate
	// only in the explicit complement mode
	standalone := ranked[:0:0]
	for _, r := range ranked {
		if _, needsContext := r.Strategy.(ComplementExtractor); needsContext {
			continue
		}
		standalone = append(standalone, r)
	}
	if len(standalone) == 0 {
		s.logger.Info("strategy.none_applicable", "source", sourceKind(doc))
		return nil, nil
	}
	best := standalone[0]
	s.logger.Info("strategy.selected",
		"source", sourceKind(doc),
		"strategy", best.Strategy.Name(),
		"confidence", best.Confidence,
		"candidates", len(standalone),
	)
	if s.MinConfidence > 0 && best.Confidence < s.MinConfidence {
		s.logger.Warn("strategy.low_confidence",
			"source", sourceKind(doc),
			"strategy", best.Strategy.Name(),
			"confidence", best.Confidence,
			"min_confidence", s.MinConfidence,
		)
	}
	return best.Strategy.Extract(ctx, doc, defs)
}

// ExtractMergeAll runs every applicable strategy in confidence order and
// merges their outputs; exact-duplicate amounts and dates across strategy
// outputs are collapsed. Strategies that need two-source context are skipped
// here; they cannot run standalone.
func (s *Selector) ExtractMergeAll(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition) (*entity.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fp := structure.Analyze(doc)
	var outputs []*entity.ExtractedFields
	for _, r := range s.Rank(fp) {
		if _, needsContext := r.Strategy.(ComplementExtractor); needsContext {
			continue
		}
		fields, err := r.Strategy.Extract(ctx, doc, defs)
		if err != nil {
			return nil, fmt.Errorf("merge-all: %s: %w", r.Strategy.Name(), err)
		}
		outputs = append(outputs, fields)
	}
	res, err := s.merger.Merge(ctx, outputs)
	if err != nil {
		return nil, err
	}
	res.MergedFields = merge.Dedupe(res.MergedFields)
	s.logger.Info("strategy.merge_all.ok",
		"source", sourceKind(doc),
		"strategies", len(outputs),
		"conflicts", len(res.Conflicts),
	)
	return res, nil
}

// ExtractComplement runs the registered complement strategy with the two
// already-produced field sets as context and merges its output behind them:
// input order (xml, ocr, complement) means complement never overwrites a
// field either source populated.
func (s *Selector) ExtractComplement(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition, xmlFields, ocrFields *entity.ExtractedFields) (*entity.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ce ComplementExtractor
	for _, st := range s.strategies {
		if c, ok := st.(ComplementExtractor); ok {
			ce = c
			break
		}
	}
	if ce == nil {
		return nil, fmt.Errorf("no complement strategy registered: %w", common.ErrInvalidInput)
	}
	comp, err := ce.ExtractComplement(ctx, doc, defs, xmlFields, ocrFields)
	if err != nil {
		return nil, err
	}
	res, err := s.merger.Merge(ctx, []*entity.ExtractedFields{xmlFields, ocrFields, comp})
	if err != nil {
		return nil, err
	}
	s.logger.Info("strategy.complement.ok",
		"source", sourceKind(doc),
		"filled", len(comp.FieldNames()),
		"conflicts", len(res.Conflicts),
	)
	return res, nil
}

func sourceKind(doc *docsource.Document) string {
	if doc == nil {
		return ""
	}
	return string(doc.Source.Kind)
}
