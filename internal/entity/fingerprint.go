package entity

// Fingerprint captures the structural shape of a document. Computed once per
// document by the structure analyzer, read-only afterwards; every strategy's
// CanHandle/Confidence is a pure function of it.
type Fingerprint struct {
	HasStructuredFormat bool
	HasKeyValuePairs    bool
	HasBoldLabels       bool
	HasCrossReferences  bool
	HasTables           bool
	TableRows           int
	TableCols           int
	StyledElementCount  int
}
