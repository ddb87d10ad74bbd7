package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/ingest"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDiscoverDirectory_GroupsByStem(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "EXP-001.xml"))
	touch(t, filepath.Join(root, "EXP-001.json"))
	touch(t, filepath.Join(root, "EXP-001.docx"))
	touch(t, filepath.Join(root, "EXP-002.xml"))
	touch(t, filepath.Join(root, "notes.md"))

	filings, stats, err := ingest.DiscoverDirectory(root, false)
	require.NoError(t, err)
	require.Len(t, filings, 2)

	assert.Equal(t, "EXP-001", filings[0].Ref)
	assert.True(t, filings[0].Complete())
	assert.Equal(t, constants.SourceXML, filings[0].XML.Kind)
	assert.Equal(t, constants.SourceOCR, filings[0].OCR.Kind)
	assert.Equal(t, constants.SourceDOCX, filings[0].Docx.Kind)

	assert.Equal(t, "EXP-002", filings[1].Ref)
	assert.False(t, filings[1].Complete())
	assert.Empty(t, filings[1].OCR.Path)

	assert.Equal(t, uint32(4), stats.Matched)
	assert.Equal(t, uint32(2), stats.Filings)
	assert.Equal(t, uint32(1), stats.Complete)
}

func TestDiscoverDirectory_RecursesSubdirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "2024", "enero", "EXP-010.xml"))

	filings, _, err := ingest.DiscoverDirectory(root, false)
	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, "EXP-010", filings[0].Ref)
}

func TestDiscoverDirectory_SkipsHidden(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".trash", "EXP-001.xml"))
	touch(t, filepath.Join(root, ".EXP-002.xml"))
	touch(t, filepath.Join(root, "EXP-003.xml"))

	filings, _, err := ingest.DiscoverDirectory(root, true)
	require.NoError(t, err)
	require.Len(t, filings, 1)
	assert.Equal(t, "EXP-003", filings[0].Ref)
}

func TestDiscoverDirectory_BlankRoot(t *testing.T) {
	_, _, err := ingest.DiscoverDirectory("  ", false)
	assert.Error(t, err)
}

func TestStartWatcher_InitialScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "EXP-001.xml"))
	touch(t, filepath.Join(root, "EXP-001.docx"))
	touch(t, filepath.Join(root, "ignore.md"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
	})
	require.NoError(t, err)

	// initial-scan paths are buffered before StartWatcher returns
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case p := <-evCh:
			seen[filepath.Base(p)] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for initial scan events")
		}
	}
	assert.True(t, seen["EXP-001.xml"])
	assert.True(t, seen["EXP-001.docx"])
}

func TestStartWatcher_DebounceSurvivesWriteBurst(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "EXP-050.xml")
	touch(t, target)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    []string{root},
		Debounce: time.Microsecond,
	})
	require.NoError(t, err)

	// hammer one file so debounce timers fire while events keep arriving
	for i := 0; i < 1000; i++ {
		require.NoError(t, os.WriteFile(target, []byte("y"), 0o644))
	}

	select {
	case p := <-evCh:
		assert.Equal(t, "EXP-050.xml", filepath.Base(p))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := ingest.StartWatcher(context.Background(), ingest.WatchConfig{})
	assert.Error(t, err)
}
