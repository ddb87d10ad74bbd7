// Package merge reconciles per-source extraction results into one record.
// Merging is deterministic given a fixed input ordering: callers supply
// sources in their precedence order (XML before OCR before DOCX, or
// strategy-confidence order) and "first non-blank wins" does the rest.
package merge

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
)

// Engine combines N field sets into one MergeResult. Stateless aside from
// logging; every call is a pure function of its inputs.
type Engine struct {
	Logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Logger: logger}
}

// Merge reconciles any number of field sets. Nil entries are skipped entirely
// and do not count toward SourceCount. For every field the first non-blank
// value in input order wins; later differing non-blank values are preserved
// only in the conflict record. Collections are concatenated in input order.
// All-nil input is success with SourceCount 0, not a failure.
func (e *Engine) Merge(ctx context.Context, inputs []*entity.ExtractedFields) (*entity.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := &entity.ExtractedFields{}
	count := 0

	scalarSeen := make(map[constants.FieldName][]string)
	addSeen := make(map[string][]string) // distinct non-blank values, encounter order
	addFirst := make(map[string]string)  // first value present, blank or not
	var addOrder []string

	for _, in := range inputs {
		if in == nil {
			continue
		}
		count++
		for _, name := range constants.ScalarFields {
			v, _ := in.Scalar(name)
			if entity.Blank(v) {
				continue
			}
			scalarSeen[name] = appendDistinct(scalarSeen[name], strings.TrimSpace(v))
		}
		for _, k := range sortedKeys(in.Additional) {
			v := in.Additional[k]
			if _, ok := addFirst[k]; !ok {
				addFirst[k] = v
				addOrder = append(addOrder, k)
			}
			if !entity.Blank(v) {
				addSeen[k] = appendDistinct(addSeen[k], strings.TrimSpace(v))
			}
		}
		merged.Amounts = append(merged.Amounts, in.Amounts...)
		merged.Dates = append(merged.Dates, in.Dates...)
	}

	var conflicts []entity.FieldConflict
	for _, name := range constants.ScalarFields {
		vals := scalarSeen[name]
		if len(vals) == 0 {
			continue
		}
		setScalar(merged, name, vals[0])
		if len(vals) > 1 {
			conflicts = append(conflicts, entity.FieldConflict{
				Field:      string(name),
				Values:     vals,
				Resolution: constants.ResolutionFirstNonEmpty,
			})
		}
	}
	if len(addOrder) > 0 {
		merged.Additional = make(map[string]string, len(addOrder))
	}
	for _, k := range addOrder {
		vals := addSeen[k]
		if len(vals) == 0 {
			merged.Additional[k] = addFirst[k] // key union keeps blank-only keys
			continue
		}
		merged.Additional[k] = vals[0]
		if len(vals) > 1 {
			conflicts = append(conflicts, entity.FieldConflict{
				Field:      k,
				Values:     vals,
				Resolution: constants.ResolutionFirstNonEmpty,
			})
		}
	}

	res := &entity.MergeResult{
		MergedFields:     merged,
		SourceCount:      count,
		MergedFieldNames: mergedNames(merged),
		Conflicts:        conflicts,
	}
	e.Logger.Debug("merge.fields.ok",
		"sources", count,
		"fields", len(res.MergedFieldNames),
		"conflicts", len(conflicts),
	)
	return res, nil
}

// MergePair reconciles a primary and a secondary field set with explicit
// precedence: primary's non-blank values win unconditionally, so no conflict
// records are produced. Blanks in primary are filled from secondary. Nil on
// either side is treated as an all-blank source; both nil yields an empty
// result with SourceCount 0.
func (e *Engine) MergePair(ctx context.Context, primary, secondary *entity.ExtractedFields) (*entity.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := 0
	if primary != nil {
		count++
	}
	if secondary != nil {
		count++
	}
	if primary == nil {
		primary = &entity.ExtractedFields{}
	}
	if secondary == nil {
		secondary = &entity.ExtractedFields{}
	}

	merged := &entity.ExtractedFields{}
	for _, name := range constants.ScalarFields {
		p, _ := primary.Scalar(name)
		s, _ := secondary.Scalar(name)
		setScalar(merged, name, firstNonBlank(p, s))
	}

	keys := sortedKeys(primary.Additional)
	for _, k := range sortedKeys(secondary.Additional) {
		if _, ok := primary.Additional[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		merged.Additional = make(map[string]string, len(keys))
	}
	for _, k := range keys {
		p, inPrimary := primary.Additional[k]
		if inPrimary && !entity.Blank(p) {
			merged.Additional[k] = p
			continue
		}
		if s, ok := secondary.Additional[k]; ok && !entity.Blank(s) {
			merged.Additional[k] = s
			continue
		}
		if inPrimary {
			merged.Additional[k] = p
		} else {
			merged.Additional[k] = secondary.Additional[k]
		}
	}

	merged.Amounts = append(append([]entity.MonetaryAmount{}, primary.Amounts...), secondary.Amounts...)
	if len(merged.Amounts) == 0 {
		merged.Amounts = nil
	}
	merged.Dates = append(append([]string{}, primary.Dates...), secondary.Dates...)
	if len(merged.Dates) == 0 {
		merged.Dates = nil
	}

	res := &entity.MergeResult{
		MergedFields:     merged,
		SourceCount:      count,
		MergedFieldNames: mergedNames(merged),
	}
	e.Logger.Debug("merge.pair.ok",
		"sources", count,
		"fields", len(res.MergedFieldNames),
		"resolution", constants.ResolutionPrimaryWins,
	)
	return res, nil
}

// MergeAdditionalFields reconciles only the free-form field maps of two
// sources. The xml map seeds the result entirely; ocr fills gaps and blank
// values; a key with differing non-blank values on both sides (compared
// case-insensitively after trimming) is recorded as a conflict by name, with
// the xml value kept.
func MergeAdditionalFields(xmlFields, ocrFields map[string]string) entity.AdditionalFieldMergeResult {
	merged := make(map[string]string, len(xmlFields))
	for k, v := range xmlFields {
		merged[k] = v
	}
	var conflicts []string
	for _, k := range sortedKeys(ocrFields) {
		ov := strings.TrimSpace(ocrFields[k])
		mv, exists := merged[k]
		switch {
		case !exists:
			merged[k] = ocrFields[k]
		case ov == "":
			// nothing to add
		case strings.EqualFold(strings.TrimSpace(mv), ov):
			// same value, keep xml's casing
		case strings.TrimSpace(mv) == "":
			merged[k] = ocrFields[k]
		default:
			conflicts = append(conflicts, k)
		}
	}
	return entity.AdditionalFieldMergeResult{Merged: merged, Conflicts: conflicts}
}

// Dedupe returns a copy of fields with exactly-equal amounts and dates
// collapsed, preserving first-occurrence order. Used after merging several
// strategy outputs for the same document, where the same capture shows up
// once per strategy.
func Dedupe(fields *entity.ExtractedFields) *entity.ExtractedFields {
	if fields == nil {
		return nil
	}
	out := *fields
	if len(fields.Amounts) > 1 {
		seen := make(map[entity.MonetaryAmount]struct{}, len(fields.Amounts))
		var amounts []entity.MonetaryAmount
		for _, a := range fields.Amounts {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			amounts = append(amounts, a)
		}
		out.Amounts = amounts
	}
	if len(fields.Dates) > 1 {
		seen := make(map[string]struct{}, len(fields.Dates))
		var dates []string
		for _, d := range fields.Dates {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
		out.Dates = dates
	}
	return &out
}

func setScalar(f *entity.ExtractedFields, name constants.FieldName, v string) {
	switch name {
	case constants.FieldExpediente:
		f.Expediente = v
	case constants.FieldCausa:
		f.Causa = v
	case constants.FieldAccionSolicitada:
		f.AccionSolicitada = v
	}
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if !entity.Blank(v) {
			return v
		}
	}
	return ""
}

func appendDistinct(vals []string, v string) []string {
	for _, x := range vals {
		if x == v {
			return vals
		}
	}
	return append(vals, v)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mergedNames(f *entity.ExtractedFields) []string {
	var names []string
	for _, s := range constants.ScalarFields {
		if v, _ := f.Scalar(s); !entity.Blank(v) {
			names = append(names, string(s))
		}
	}
	for _, k := range sortedKeys(f.Additional) {
		if !entity.Blank(f.Additional[k]) {
			names = append(names, k)
		}
	}
	return names
}
