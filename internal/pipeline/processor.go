// Package pipeline coordinates the full reconciliation flow: load the three
// source renditions, extract per source through the strategy selector, run
// the complement pass over the DOCX, merge in source-precedence order and
// sanitize the noisy captures.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/merge"
	"github.com/hebelmx/Veriqan-sub019/internal/sanitize"
	"github.com/hebelmx/Veriqan-sub019/internal/strategy"
)

// Processor wires loader -> selector -> merge -> sanitize.
type Processor struct {
	Logger   *slog.Logger
	Loader   *docsource.Loader
	Selector *strategy.Selector
	Merger   *merge.Engine
}

func NewProcessor(logger *slog.Logger, loader *docsource.Loader, selector *strategy.Selector, merger *merge.Engine) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if merger == nil {
		merger = merge.NewEngine(logger)
	}
	if loader == nil || selector == nil {
		cfg := common.LoadConfig()
		if err := cfg.Validate(); err != nil {
			// env values are out of range; defaults below still work
			logger.Warn("pipeline.config.invalid", "err", err)
		}
		if loader == nil {
			loader = docsource.NewLoader(cfg.Extraction, logger)
		}
		if selector == nil {
			selector = strategy.NewSelector(logger, merger)
			selector.MinConfidence = cfg.Extraction.MinConfidence
		}
	}
	return &Processor{Logger: logger, Loader: loader, Selector: selector, Merger: merger}
}

// Result is the reconciled record for one requirement document.
type Result struct {
	JobID uuid.UUID
	Merge *entity.MergeResult
	// RawFields reconciles the XML leaf elements against the labeled lines
	// recognized in the OCR text, before any strategy ran.
	RawFields entity.AdditionalFieldMergeResult
	// Sanitized maps field name -> cleaning result for the noisy captures.
	// Warnings inside are advisory only.
	Sanitized map[string]sanitize.Result
}

// Process reconciles one requirement document from its three renditions.
// A source that fails to load or extract contributes nothing; gaps are
// expected, the complement pass exists for them. Cancellation always
// aborts the run. All three sources unusable still succeeds, with
// SourceCount 0.
func (p *Processor) Process(ctx context.Context, xmlSrc, ocrSrc, docxSrc docsource.Source, defs []entity.FieldDefinition) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDefs(defs); err != nil {
		return nil, err
	}
	jobID := uuid.New()

	xmlDoc := p.load(ctx, xmlSrc, jobID)
	ocrDoc := p.load(ctx, ocrSrc, jobID)
	docxDoc := p.load(ctx, docxSrc, jobID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	xmlFields := p.extract(ctx, xmlDoc, defs, jobID)
	ocrFields := p.extract(ctx, ocrDoc, defs, jobID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rawFields entity.AdditionalFieldMergeResult
	if xmlDoc != nil || ocrDoc != nil {
		rawFields = merge.MergeAdditionalFields(kv(xmlDoc), kv(ocrDoc))
		if len(rawFields.Conflicts) > 0 {
			p.Logger.Warn("pipeline.rawfields.conflicts",
				"job_id", jobID,
				"fields", rawFields.Conflicts,
			)
		}
	}

	var merged *entity.MergeResult
	var err error
	if docxDoc != nil {
		merged, err = p.Selector.ExtractComplement(ctx, docxDoc, defs, xmlFields, ocrFields)
	} else {
		merged, err = p.Merger.Merge(ctx, []*entity.ExtractedFields{xmlFields, ocrFields})
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		JobID:     jobID,
		Merge:     p.sanitizeMerged(merged),
		RawFields: rawFields,
	}
	res.Sanitized = p.cleanCaptures(res.Merge.MergedFields, jobID)

	p.Logger.Info("pipeline.process.ok",
		"job_id", jobID,
		"sources", res.Merge.SourceCount,
		"fields", len(res.Merge.MergedFieldNames),
		"conflicts", len(res.Merge.Conflicts),
	)
	return res, nil
}

// load swallows per-source failures (logged, source contributes nil) but
// never cancellation.
func (p *Processor) load(ctx context.Context, src docsource.Source, jobID uuid.UUID) *docsource.Document {
	if ctx.Err() != nil {
		return nil
	}
	doc, err := p.Loader.Load(ctx, src)
	if err != nil {
		if ctx.Err() == nil {
			p.Logger.Warn("pipeline.source.failed",
				"job_id", jobID,
				"kind", string(src.Kind),
				"err", err,
			)
		}
		return nil
	}
	return doc
}

func (p *Processor) extract(ctx context.Context, doc *docsource.Document, defs []entity.FieldDefinition, jobID uuid.UUID) *entity.ExtractedFields {
	if doc == nil || ctx.Err() != nil {
		return nil
	}
	fields, err := p.Selector.ExtractBest(ctx, doc, defs)
	if err != nil {
		if ctx.Err() == nil {
			p.Logger.Warn("pipeline.extract.failed",
				"job_id", jobID,
				"kind", string(doc.Source.Kind),
				"err", err,
			)
		}
		return nil
	}
	if fields == nil {
		// no applicable strategy, distinct from extraction failure
		p.Logger.Info("pipeline.extract.no_strategy",
			"job_id", jobID,
			"kind", string(doc.Source.Kind),
		)
		return nil
	}
	p.Logger.Info("pipeline.extract.ok",
		"job_id", jobID,
		"kind", string(doc.Source.Kind),
		"strategy", fields.Strategy,
		"confidence", fields.Confidence,
		"fields", len(fields.FieldNames()),
	)
	return fields
}

// sanitizeMerged rebuilds the merge result with cleaned scalar text values.
// The input result is never mutated.
func (p *Processor) sanitizeMerged(in *entity.MergeResult) *entity.MergeResult {
	fields := *in.MergedFields
	fields.Causa = sanitize.CleanGeneric(fields.Causa).Cleaned
	fields.AccionSolicitada = sanitize.CleanGeneric(fields.AccionSolicitada).Cleaned
	out := *in
	out.MergedFields = &fields
	return &out
}

// cleanCaptures runs the field-specific cleaners over the noisy captures and
// writes the cleaned values back into the (fresh) merged field set.
func (p *Processor) cleanCaptures(fields *entity.ExtractedFields, jobID uuid.UUID) map[string]sanitize.Result {
	if fields.Additional == nil {
		return nil
	}
	// clone so the pre-sanitization map is never mutated
	cloned := make(map[string]string, len(fields.Additional))
	for k, v := range fields.Additional {
		cloned[k] = v
	}
	fields.Additional = cloned

	out := make(map[string]sanitize.Result)
	clean := func(name constants.FieldName, fn func(string) sanitize.Result) {
		raw, ok := fields.Additional[string(name)]
		if !ok || entity.Blank(raw) {
			return
		}
		r := fn(raw)
		out[string(name)] = r
		fields.Additional[string(name)] = r.Cleaned
		if len(r.Warnings) > 0 {
			p.Logger.Warn("pipeline.sanitize.warnings",
				"job_id", jobID,
				"field", string(name),
				"warnings", r.Warnings,
			)
		}
	}
	clean(constants.FieldCuenta, sanitize.CleanAccount)
	clean(constants.FieldSwift, sanitize.CleanSwift)
	if len(out) == 0 {
		return nil
	}
	return out
}

func validateDefs(defs []entity.FieldDefinition) error {
	v := common.NewValidator()
	for _, def := range defs {
		v.Field("name", string(def.Name), common.Required, common.MaxLength(120))
		if def.Role != "" {
			v.Field("role", string(def.Role),
				common.OneOf(string(entity.RoleText), string(entity.RoleIdentifier), string(entity.RoleAmount), string(entity.RoleDate)))
		}
	}
	return v.Error()
}

func kv(doc *docsource.Document) map[string]string {
	if doc == nil {
		return nil
	}
	return doc.KV
}
