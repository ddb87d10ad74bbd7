// Package structure computes a document's structural fingerprint — the
// boolean/numeric signals strategies use to self-assess fitness. Purely
// heuristic scanning; no field extraction happens here.
package structure

import (
	"regexp"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
)

// Section labels a CNBV requirement template always carries. Seeing several
// of them means the document follows the predictable structured layout.
var templateLabels = []string{
	"EXPEDIENTE", "CAUSA", "ACCION SOLICITADA", "ACCIÓN SOLICITADA",
	"RFC", "CURP", "CUENTA", "AUTORIDAD", "OFICIO",
}

// Cross-reference phrases that point at a value stated elsewhere in the
// document.
var crossRefPhrases = []string{
	"arriba mencionada", "arriba mencionado",
	"anteriormente indicado", "anteriormente indicada",
	"antes citada", "antes citado",
	"ya referida", "ya referido",
	"según anexo", "segun anexo",
	"señalada previamente", "señalado previamente",
}

var (
	reLabelLine = regexp.MustCompile(`(?m)^\s*[A-ZÁÉÍÓÚÑ][A-Z0-9ÁÉÍÓÚÑ /_.-]{1,40}?\s*:\s*\S`)
	reTableRow  = regexp.MustCompile(`(?m)^.*(\|.*\|{1}|\t.+\t).*$`)
)

// ContainsCrossReference reports whether text carries any known
// cross-reference phrase.
func ContainsCrossReference(text string) bool {
	t := strings.ToLower(text)
	for _, p := range crossRefPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// Analyze computes the fingerprint for a loaded document. Best-effort and
// total: nil or unreadable input yields the zero fingerprint, never an error.
func Analyze(doc *docsource.Document) entity.Fingerprint {
	var fp entity.Fingerprint
	if doc == nil || doc.Text == "" {
		return fp
	}

	upper := strings.ToUpper(doc.Text)
	labels := 0
	for _, l := range templateLabels {
		if strings.Contains(upper, l+":") || strings.Contains(upper, l+" :") {
			labels++
		}
	}
	kvLines := len(reLabelLine.FindAllString(doc.Text, -1))
	if kvLines < len(doc.KV) {
		kvLines = len(doc.KV)
	}

	fp.HasStructuredFormat = labels >= 3
	fp.HasKeyValuePairs = kvLines >= 3
	fp.HasCrossReferences = ContainsCrossReference(doc.Text)

	if doc.Docx != nil {
		fp.HasTables = doc.Docx.Tables > 0
		fp.TableRows = doc.Docx.TableRows
		fp.TableCols = doc.Docx.TableCols
		fp.HasBoldLabels = doc.Docx.BoldRuns > 3
		fp.StyledElementCount = doc.Docx.StyledElements
	} else {
		rows := len(reTableRow.FindAllString(doc.Text, -1))
		fp.HasTables = rows >= 2
		fp.TableRows = rows
		// flat text has no style runs; labeled lines are the closest signal
		fp.StyledElementCount = kvLines
	}
	return fp
}
