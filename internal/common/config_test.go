package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := common.LoadConfig()

	assert.InDelta(t, 0.5, cfg.Extraction.MinConfidence, 1e-9)
	assert.Equal(t, int64(16<<20), cfg.Extraction.MaxDocumentBytes)
	assert.InDelta(t, 0.4, cfg.Extraction.OCRMinConfidence, 1e-9)
	assert.Equal(t, "Reconciliation", cfg.Export.SheetName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("EXTRACT_MIN_CONFIDENCE", "0.75")
	t.Setenv("EXTRACT_MAX_DOCUMENT_BYTES", "1024")
	t.Setenv("EXPORT_SHEET_NAME", "Audit")

	cfg := common.LoadConfig()
	assert.InDelta(t, 0.75, cfg.Extraction.MinConfidence, 1e-9)
	assert.Equal(t, int64(1024), cfg.Extraction.MaxDocumentBytes)
	assert.Equal(t, "Audit", cfg.Export.SheetName)
}

func TestLoadConfig_UnparseableFallsBack(t *testing.T) {
	t.Setenv("EXTRACT_MAX_DOCUMENT_BYTES", "many")
	t.Setenv("EXTRACT_MIN_CONFIDENCE", "lots")

	cfg := common.LoadConfig()
	assert.Equal(t, int64(16<<20), cfg.Extraction.MaxDocumentBytes)
	assert.InDelta(t, 0.5, cfg.Extraction.MinConfidence, 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*common.Config)
		wantErr bool
	}{
		{"defaults pass", func(*common.Config) {}, false},
		{"confidence above one", func(c *common.Config) { c.Extraction.MinConfidence = 1.5 }, true},
		{"negative confidence", func(c *common.Config) { c.Extraction.MinConfidence = -0.1 }, true},
		{"zero byte cap", func(c *common.Config) { c.Extraction.MaxDocumentBytes = 0 }, true},
		{"blank sheet name", func(c *common.Config) { c.Export.SheetName = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := common.LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
