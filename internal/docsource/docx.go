package docsource

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

// DocxContent is the text plus structural counts pulled from a DOCX
// container (archive/zip -> word/document.xml).
type DocxContent struct {
	Text           string
	Tables         int
	TableRows      int
	TableCols      int // widest row seen
	BoldRuns       int
	StyledElements int // paragraphs/runs carrying an explicit style
}

// ParseDocx walks word/document.xml and accumulates text and structural
// counts in one pass. Malformed containers surface as ErrUnreadableContainer.
func ParseDocx(data []byte) (*DocxContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open docx: %v", common.ErrUnreadableContainer, err)
	}
	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%w: word/document.xml not found", common.ErrUnreadableContainer)
	}
	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open word/document.xml: %v", common.ErrUnreadableContainer, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var sb strings.Builder
	c := &DocxContent{}
	inText := false
	rowCells := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode word/document.xml: %v", common.ErrUnreadableContainer, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tbl":
				c.Tables++
			case "tr":
				c.TableRows++
				rowCells = 0
			case "tc":
				rowCells++
			case "b":
				c.BoldRuns++
			case "pStyle", "rStyle":
				c.StyledElements++
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			case "tc":
				sb.WriteByte('\t')
			case "tr":
				if rowCells > c.TableCols {
					c.TableCols = rowCells
				}
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	c.Text = strings.TrimSpace(sb.String())
	return c, nil
}
