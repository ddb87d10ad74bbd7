// Package ingest discovers requirement filings on the local filesystem. The
// parallel renditions of one document share a file stem (EXP-001.xml,
// EXP-001.json, EXP-001.docx); a filing is assembled from whichever
// renditions are present.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
)

// Filing groups the renditions of one requirement document found on disk.
// Missing renditions stay zero-valued; the pipeline treats them as gaps.
type Filing struct {
	Ref  string // file stem, shared across renditions
	XML  docsource.Source
	OCR  docsource.Source
	Docx docsource.Source
}

// Complete reports whether all three renditions were found.
func (f Filing) Complete() bool {
	return f.XML.Path != "" && f.OCR.Path != "" && f.Docx.Path != ""
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned  uint32
	Matched  uint32
	Filings  uint32
	Complete uint32
	Failed   uint32
}

// Renditions are matched by extension (lowercase, without '.').
var extKinds = map[string]constants.SourceKind{
	"xml":  constants.SourceXML,
	"json": constants.SourceOCR,
	"txt":  constants.SourceOCR,
	"ocr":  constants.SourceOCR,
	"docx": constants.SourceDOCX,
}

// DiscoverDirectory walks root and assembles filings by file stem, returned
// in stem order. Walk errors on individual entries are counted and skipped.
func DiscoverDirectory(root string, skipHidden bool) ([]Filing, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var stats DirStats
	byRef := map[string]*Filing{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		kind, ok := extKinds[ext]
		if !ok {
			return nil
		}
		stats.Matched++

		ref := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		f := byRef[ref]
		if f == nil {
			f = &Filing{Ref: ref}
			byRef[ref] = f
		}
		src := docsource.Source{Kind: kind, Path: path}
		switch kind {
		case constants.SourceXML:
			f.XML = src
		case constants.SourceOCR:
			f.OCR = src
		case constants.SourceDOCX:
			f.Docx = src
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}

	refs := make([]string, 0, len(byRef))
	for r := range byRef {
		refs = append(refs, r)
	}
	sort.Strings(refs)

	filings := make([]Filing, 0, len(refs))
	for _, r := range refs {
		f := *byRef[r]
		filings = append(filings, f)
		stats.Filings++
		if f.Complete() {
			stats.Complete++
		}
	}
	return filings, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
