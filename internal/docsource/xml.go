package docsource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

// XMLContent is the flattened view of a portal XML filing: every leaf element
// rendered as a "Name: value" line (so the same label patterns match XML and
// free text), plus the leaf element map for field-level reconciliation.
type XMLContent struct {
	Text   string
	Fields map[string]string // leaf element local name -> trimmed text, last occurrence wins
}

// ParseXML scans the document token by token; it tolerates any schema and
// only fails when the bytes are not well-formed XML.
func ParseXML(data []byte) (*XMLContent, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	fields := make(map[string]string)
	var sb strings.Builder
	var text strings.Builder
	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode xml: %v", common.ErrUnreadableContainer, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if v := strings.TrimSpace(text.String()); v != "" {
				fields[t.Name.Local] = v
				sb.WriteString(t.Name.Local)
				sb.WriteString(": ")
				sb.WriteString(v)
				sb.WriteByte('\n')
			}
			text.Reset()
		}
	}
	if !sawElement {
		return nil, fmt.Errorf("%w: no xml elements found", common.ErrUnreadableContainer)
	}
	return &XMLContent{Text: strings.TrimSpace(sb.String()), Fields: fields}, nil
}
