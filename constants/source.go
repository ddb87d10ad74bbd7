package constants

// SourceKind is the canonical kind of a requirement document source.
type SourceKind string

// Stable values (these exact strings appear in logs and merge records).
const (
	SourceXML  SourceKind = "XML"  // structured filing from the regulator portal
	SourceOCR  SourceKind = "OCR"  // recognized text from a scanned PDF
	SourceDOCX SourceKind = "DOCX" // word-processor rendition of the requirement
)

// Strategy names as reported in ExtractedFields.Strategy and audit events.
const (
	StrategyStructured = "structured"
	StrategySearch     = "search"
	StrategyComplement = "complement"
)

// Conflict resolution labels recorded on merge conflicts and audit events.
const (
	ResolutionFirstNonEmpty = "first-non-empty-wins"
	ResolutionPrimaryWins   = "primary-wins"
)
