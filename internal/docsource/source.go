// Package docsource loads requirement documents from their three parallel
// renditions (portal XML, scanned-PDF OCR payload, DOCX) into a common
// Document shape the extraction strategies consume.
package docsource

import (
	"fmt"
	"os"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

// Source is one rendition of a requirement document. It carries either inline
// content or a file-system path; inline content wins when both are set.
type Source struct {
	Kind    constants.SourceKind
	Path    string
	Content []byte
}

// read returns the raw bytes of the source, capped at maxBytes when positive.
func (s Source) read(maxBytes int64) ([]byte, error) {
	if len(s.Content) > 0 {
		if maxBytes > 0 && int64(len(s.Content)) > maxBytes {
			return nil, fmt.Errorf("%w: inline content is %d bytes (max %d)", common.ErrInvalidInput, len(s.Content), maxBytes)
		}
		return s.Content, nil
	}
	if s.Path == "" {
		return nil, common.ErrNoUsableSource
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNoUsableSource, s.Path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", common.ErrInvalidInput, s.Path, info.Size(), maxBytes)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNoUsableSource, s.Path)
	}
	return data, nil
}
