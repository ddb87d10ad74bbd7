package docsource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

// Document is the loaded, container-independent view of one source.
type Document struct {
	Source Source
	Text   string
	// KV holds labeled key-values where the container provides them: XML leaf
	// elements, or "ETIQUETA: valor" lines scanned from flat text.
	KV map[string]string
	// Docx carries structural counts, DOCX sources only.
	Docx *DocxContent
	// OCRConfidence is the recognition confidence, OCR sources only.
	OCRConfidence float64
}

// Loader turns Sources into Documents.
type Loader struct {
	Logger   *slog.Logger
	MaxBytes int64 // 0 = no limit
	// OCRMinConfidence marks OCR payloads below it as low-confidence in the
	// audit log. Zero disables.
	OCRMinConfidence float64
}

func NewLoader(cfg common.ExtractionConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Logger: logger, MaxBytes: cfg.MaxDocumentBytes, OCRMinConfidence: cfg.OCRMinConfidence}
}

// Load reads and parses one source. Unusable sources and unreadable
// containers come back as typed errors (ErrNoUsableSource,
// ErrUnreadableContainer); cancellation comes back as ctx.Err().
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := src.read(l.MaxBytes)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: src}
	switch src.Kind {
	case constants.SourceDOCX:
		c, err := ParseDocx(data)
		if err != nil {
			return nil, err
		}
		doc.Text = c.Text
		doc.Docx = c
		doc.KV = ScanKeyValues(c.Text)
	case constants.SourceXML:
		c, err := ParseXML(data)
		if err != nil {
			return nil, err
		}
		doc.Text = c.Text
		doc.KV = c.Fields
	case constants.SourceOCR:
		p, err := ParseOCRPayload(data)
		if err != nil {
			return nil, err
		}
		doc.Text = p.Text
		doc.OCRConfidence = p.Confidence
		doc.KV = ScanKeyValues(p.Text)
		if l.OCRMinConfidence > 0 && p.Confidence < l.OCRMinConfidence {
			l.Logger.Warn("docsource.ocr.low_confidence",
				"confidence", p.Confidence,
				"min_confidence", l.OCRMinConfidence,
			)
		}
	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", common.ErrInvalidInput, src.Kind)
	}

	l.Logger.Debug("docsource.load.ok",
		"kind", string(src.Kind),
		"bytes", len(data),
		"text_len", len(doc.Text),
		"kv_pairs", len(doc.KV),
	)
	return doc, nil
}
