package docsource

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

// OCRPayload is what the external text-recognition engine hands us: already
// recognized text plus its own confidence. We never invoke the engine; we
// only validate and consume its output.
type OCRPayload struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Pages      int     `json:"pages,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// BuildOCRPayloadSchema returns the JSON-Schema (draft 2020-12 subset) the
// OCR boundary payload must satisfy.
func BuildOCRPayloadSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"text":       map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"pages":      map[string]any{"type": "integer", "minimum": 0},
			"language":   map[string]any{"type": "string"},
		},
		"required": []string{"text", "confidence"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseOCRPayload decodes an OCR boundary payload. JSON payloads are
// validated against the schema; anything else is treated as bare recognized
// text with a heuristic confidence.
func ParseOCRPayload(data []byte) (*OCRPayload, error) {
	if !json.Valid(data) {
		txt := Normalize(string(data))
		return &OCRPayload{Text: txt, Confidence: estimateConfidence(txt)}, nil
	}
	if err := ValidateJSONAgainstSchema(BuildOCRPayloadSchema(), data); err != nil {
		return nil, fmt.Errorf("%w: ocr payload: %v", common.ErrValidation, err)
	}
	var p OCRPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: ocr payload: %v", common.ErrValidation, err)
	}
	// the schema requires "confidence", so a zero here is the engine's own
	// report and stays as-is
	p.Text = Normalize(p.Text)
	return &p, nil
}
