package constants

// FieldName identifies a canonical extraction field in a CNBV requirement.
type FieldName string

// Scalar fields carried on every extraction result. Stable values; these
// exact strings appear in conflict records and audit logs.
const (
	FieldExpediente       FieldName = "Expediente"
	FieldCausa            FieldName = "Causa"
	FieldAccionSolicitada FieldName = "AccionSolicitada"
)

// Well-known additional fields. These live in the free-form map rather than
// as dedicated scalars, but have dedicated extraction patterns and cleaners.
const (
	FieldRFC    FieldName = "RFC"
	FieldCURP   FieldName = "CURP"
	FieldCuenta FieldName = "Cuenta"
	FieldSwift  FieldName = "Swift"
)

// Collection pseudo-fields: requesting these makes a strategy capture every
// monetary amount / date in the document rather than a single value.
const (
	FieldImportes FieldName = "Importes"
	FieldFechas   FieldName = "Fechas"
)

// ScalarFields lists the dedicated scalar fields in merge order.
var ScalarFields = []FieldName{FieldExpediente, FieldCausa, FieldAccionSolicitada}

// IsScalar reports whether name is one of the dedicated scalar fields.
func IsScalar(name FieldName) bool {
	for _, f := range ScalarFields {
		if f == name {
			return true
		}
	}
	return false
}
