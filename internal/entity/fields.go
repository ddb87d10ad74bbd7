package entity

import (
	"strings"

	"github.com/hebelmx/Veriqan-sub019/constants"
)

// FieldRole tells a strategy what shape of value a field carries.
type FieldRole string

const (
	RoleText       FieldRole = "TEXT"
	RoleIdentifier FieldRole = "IDENTIFIER"
	RoleAmount     FieldRole = "AMOUNT"
	RoleDate       FieldRole = "DATE"
)

// FieldDefinition describes one field a caller wants extracted. Constructed
// ephemerally per extraction call; unknown names are skipped by strategies.
type FieldDefinition struct {
	Name constants.FieldName
	Role FieldRole
}

// DefaultFieldDefinitions covers the standard CNBV requirement fields.
func DefaultFieldDefinitions() []FieldDefinition {
	return []FieldDefinition{
		{Name: constants.FieldExpediente, Role: RoleIdentifier},
		{Name: constants.FieldCausa, Role: RoleText},
		{Name: constants.FieldAccionSolicitada, Role: RoleText},
		{Name: constants.FieldRFC, Role: RoleIdentifier},
		{Name: constants.FieldCURP, Role: RoleIdentifier},
		{Name: constants.FieldCuenta, Role: RoleIdentifier},
		{Name: constants.FieldSwift, Role: RoleIdentifier},
		{Name: constants.FieldImportes, Role: RoleAmount},
		{Name: constants.FieldFechas, Role: RoleDate},
	}
}

// MonetaryAmount is one captured monetary value with its original raw text.
type MonetaryAmount struct {
	CurrencyCode string  `json:"currency_code"`
	Value        float64 `json:"value"`
	Raw          string  `json:"raw"`
}

// ExtractedFields is the canonical per-source extraction result. One instance
// is produced per (source, strategy) pair and is treated as immutable once
// returned; the merge engine always builds fresh instances.
type ExtractedFields struct {
	Source     constants.SourceKind `json:"source,omitempty"`
	Strategy   string               `json:"strategy,omitempty"`
	Confidence float64              `json:"confidence"`

	Expediente       string `json:"expediente,omitempty"`
	Causa            string `json:"causa,omitempty"`
	AccionSolicitada string `json:"accion_solicitada,omitempty"`

	// Additional holds free-form field name -> value. Absence of a key is
	// distinct from presence with an empty string.
	Additional map[string]string `json:"additional,omitempty"`

	Amounts []MonetaryAmount `json:"amounts,omitempty"`
	Dates   []string         `json:"dates,omitempty"`
}

// Blank reports whether s is empty after trimming.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }

// Scalar returns the value of a dedicated scalar field and whether name is one.
func (f *ExtractedFields) Scalar(name constants.FieldName) (string, bool) {
	switch name {
	case constants.FieldExpediente:
		return f.Expediente, true
	case constants.FieldCausa:
		return f.Causa, true
	case constants.FieldAccionSolicitada:
		return f.AccionSolicitada, true
	}
	return "", false
}

// Lookup returns the value for name, checking scalars first, then the
// additional-fields map.
func (f *ExtractedFields) Lookup(name constants.FieldName) string {
	if v, ok := f.Scalar(name); ok {
		return v
	}
	return f.Additional[string(name)]
}

// HasValue reports whether name carries a non-blank value. A nil receiver
// counts as missing everything.
func (f *ExtractedFields) HasValue(name constants.FieldName) bool {
	if f == nil {
		return false
	}
	return !Blank(f.Lookup(name))
}

// IsEmpty reports whether no field, amount or date was populated.
func (f *ExtractedFields) IsEmpty() bool {
	if f == nil {
		return true
	}
	if !Blank(f.Expediente) || !Blank(f.Causa) || !Blank(f.AccionSolicitada) {
		return false
	}
	return len(f.Additional) == 0 && len(f.Amounts) == 0 && len(f.Dates) == 0
}

// FieldNames returns the names of all populated fields: scalars with
// non-blank values plus every additional key present.
func (f *ExtractedFields) FieldNames() []string {
	if f == nil {
		return nil
	}
	var names []string
	for _, s := range constants.ScalarFields {
		if v, _ := f.Scalar(s); !Blank(v) {
			names = append(names, string(s))
		}
	}
	for k := range f.Additional {
		names = append(names, k)
	}
	return names
}
