package entity

// FieldConflict records two or more non-blank, non-equal values found for the
// same field across merge inputs. The merged output keeps the winning value;
// alternates survive only here.
type FieldConflict struct {
	Field      string   `json:"field"`
	Values     []string `json:"values"` // distinct values in encounter order, length > 1
	Resolution string   `json:"resolution"`
}

// MergeResult is the output of one merge invocation. Immutable; never
// partially updated.
type MergeResult struct {
	MergedFields     *ExtractedFields `json:"merged_fields"`
	SourceCount      int              `json:"source_count"` // non-nil inputs that contributed
	MergedFieldNames []string         `json:"merged_field_names"`
	Conflicts        []FieldConflict  `json:"conflicts,omitempty"`
}

// AdditionalFieldMergeResult reconciles only the free-form field maps of two
// sources. Conflicts carries field names only; the values stay in the
// respective source maps.
type AdditionalFieldMergeResult struct {
	Merged    map[string]string `json:"merged"`
	Conflicts []string          `json:"conflicts,omitempty"`
}
