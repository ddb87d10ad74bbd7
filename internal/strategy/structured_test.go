package strategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/strategy"
)

const templateText = `EXPEDIENTE: EXP-001/2024
CAUSA: Fraude fiscal
ACCION SOLICITADA: Aseguramiento de cuentas
RFC: ABC850101XY9
CURP: ABCD850101HDFRRL09
CUENTA: 0123-456-789012
SWIFT: BNMXMXMM
AUTORIDAD: FGR
Importe reclamado: $1,234.56 M.N.
Fecha de oficio: 15/01/2024`

func docFor(kind constants.SourceKind, text string) *docsource.Document {
	return &docsource.Document{
		Source: docsource.Source{Kind: kind},
		Text:   text,
		KV:     docsource.ScanKeyValues(text),
	}
}

func TestStructured_Confidence(t *testing.T) {
	s := strategy.NewStructured(nil)

	tests := []struct {
		name string
		fp   entity.Fingerprint
		want float64
	}{
		{"structured format", entity.Fingerprint{HasStructuredFormat: true}, 0.95},
		{"key-values with many styles", entity.Fingerprint{HasKeyValuePairs: true, StyledElementCount: 11}, 0.70},
		{"key-values alone", entity.Fingerprint{HasKeyValuePairs: true}, 0.50},
		{"styles alone", entity.Fingerprint{StyledElementCount: 6}, 0.50},
		{"nothing", entity.Fingerprint{}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Confidence(tt.fp), 1e-9)
			assert.Equal(t, tt.want > 0, s.CanHandle(tt.fp))
		})
	}
}

func TestStructured_ExtractTemplateFields(t *testing.T) {
	s := strategy.NewStructured(nil)

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, templateText), entity.DefaultFieldDefinitions())
	require.NoError(t, err)

	assert.Equal(t, "EXP-001/2024", fields.Expediente)
	assert.Equal(t, "Fraude fiscal", fields.Causa)
	assert.Equal(t, "Aseguramiento de cuentas", fields.AccionSolicitada)
	assert.Equal(t, "ABC850101XY9", fields.Additional["RFC"])
	assert.Equal(t, "ABCD850101HDFRRL09", fields.Additional["CURP"])
	assert.Equal(t, "0123-456-789012", fields.Additional["Cuenta"])
	assert.Equal(t, "BNMXMXMM", fields.Additional["Swift"])

	require.Len(t, fields.Amounts, 1)
	assert.InDelta(t, 1234.56, fields.Amounts[0].Value, 1e-9)
	assert.Equal(t, "MXN", fields.Amounts[0].CurrencyCode)
	assert.Equal(t, []string{"15/01/2024"}, fields.Dates)

	assert.Equal(t, constants.StrategyStructured, fields.Strategy)
	assert.InDelta(t, 0.95, fields.Confidence, 1e-9)
	assert.Equal(t, constants.SourceOCR, fields.Source)
}

func TestStructured_UnmatchedFieldsStayAbsent(t *testing.T) {
	s := strategy.NewStructured(nil)

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, "EXPEDIENTE: EXP-7\nCAUSA: Robo\nCUENTA: 123456789"),
		entity.DefaultFieldDefinitions())
	require.NoError(t, err)

	assert.Equal(t, "EXP-7", fields.Expediente)
	assert.Empty(t, fields.AccionSolicitada)
	_, hasRFC := fields.Additional["RFC"]
	assert.False(t, hasRFC, "absent field must not be present with a zero value")
}

func TestStructured_EmptyDefinitionsSucceedTrivially(t *testing.T) {
	s := strategy.NewStructured(nil)

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, templateText), nil)
	require.NoError(t, err)
	assert.True(t, fields.IsEmpty())
}

func TestStructured_UnknownFieldNamesSkippedSilently(t *testing.T) {
	s := strategy.NewStructured(nil)

	defs := []entity.FieldDefinition{{Name: "NoSuchField", Role: entity.RoleText}}
	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, templateText), defs)
	require.NoError(t, err)
	assert.True(t, fields.IsEmpty())
}

func TestStructured_EmptyDocumentFails(t *testing.T) {
	s := strategy.NewStructured(nil)

	_, err := s.Extract(context.Background(), &docsource.Document{}, entity.DefaultFieldDefinitions())
	assert.ErrorIs(t, err, common.ErrNoUsableSource)

	_, err = s.Extract(context.Background(), nil, entity.DefaultFieldDefinitions())
	assert.ErrorIs(t, err, common.ErrNoUsableSource)
}

func TestStructured_CancelledBeforeMatching(t *testing.T) {
	s := strategy.NewStructured(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Extract(ctx, docFor(constants.SourceOCR, templateText), entity.DefaultFieldDefinitions())
	assert.ErrorIs(t, err, context.Canceled)
}
