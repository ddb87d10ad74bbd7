package strategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/strategy"
)

func TestSearch_AlwaysHandles(t *testing.T) {
	s := strategy.NewSearch(nil)
	assert.True(t, s.CanHandle(entity.Fingerprint{}))
	assert.True(t, s.CanHandle(entity.Fingerprint{HasStructuredFormat: true}))
}

func TestSearch_Confidence(t *testing.T) {
	s := strategy.NewSearch(nil)
	assert.InDelta(t, 0.90, s.Confidence(entity.Fingerprint{HasCrossReferences: true}), 1e-9)
	assert.InDelta(t, 0.60, s.Confidence(entity.Fingerprint{}), 1e-9)
}

func TestSearch_DirectMatchPreferred(t *testing.T) {
	s := strategy.NewSearch(nil)

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, templateText), entity.DefaultFieldDefinitions())
	require.NoError(t, err)
	assert.Equal(t, "EXP-001/2024", fields.Expediente)
	assert.Equal(t, constants.StrategySearch, fields.Strategy)
}

func TestSearch_CrossReferenceFallbackScansWholeDocument(t *testing.T) {
	s := strategy.NewSearch(nil)

	// no "RFC:" label anywhere, but the value shape appears in running prose
	// and the document carries a cross-reference phrase
	text := "El contribuyente ABC850101XY9 opera la cuenta arriba mencionada.\n" +
		"Debe aplicarse el aseguramiento anteriormente indicado."
	defs := []entity.FieldDefinition{{Name: constants.FieldRFC, Role: entity.RoleIdentifier}}

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, text), defs)
	require.NoError(t, err)
	assert.Equal(t, "ABC850101XY9", fields.Additional["RFC"])
}

func TestSearch_NoFallbackWithoutCrossReferences(t *testing.T) {
	s := strategy.NewSearch(nil)

	text := "El contribuyente ABC850101XY9 debe ser notificado."
	defs := []entity.FieldDefinition{{Name: constants.FieldRFC, Role: entity.RoleIdentifier}}

	fields, err := s.Extract(context.Background(), docFor(constants.SourceOCR, text), defs)
	require.NoError(t, err)
	_, ok := fields.Additional["RFC"]
	assert.False(t, ok, "lenient scan must only run when a cross-reference phrase is present")
}

func TestSearch_CancelledBeforeMatching(t *testing.T) {
	s := strategy.NewSearch(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Extract(ctx, docFor(constants.SourceOCR, templateText), entity.DefaultFieldDefinitions())
	assert.ErrorIs(t, err, context.Canceled)
}
