package docsource

import (
	"regexp"
	"strings"
)

// reKeyValueLine matches "ETIQUETA: valor" lines — the label style CNBV
// templates use. Keys are short runs of uppercase letters, digits and spaces.
var reKeyValueLine = regexp.MustCompile(`(?m)^\s*([A-ZÁÉÍÓÚÑ][A-Z0-9ÁÉÍÓÚÑ /_.-]{1,40}?)\s*:\s*(\S.*)$`)

// ScanKeyValues pulls labeled key-value lines out of flat text. First
// occurrence of a key wins.
func ScanKeyValues(text string) map[string]string {
	out := make(map[string]string)
	for _, m := range reKeyValueLine.FindAllStringSubmatch(text, -1) {
		key := strings.TrimSpace(m[1])
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = strings.TrimSpace(m[2])
	}
	return out
}
