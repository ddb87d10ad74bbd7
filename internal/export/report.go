// Package export renders a reconciled record as an XLSX report for the
// review desks that work the requirement queue.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/sanitize"
)

// Service produces XLSX bytes for reconciliation reports.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(cfg common.ExportConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = "Reconciliation"
	}
	return &Service{sheet: sheet, logger: logger}
}

// ReportXLSX returns an XLSX workbook (as bytes) for one merge result.
// Layout: merged fields first, then amounts and dates, then one row per
// conflict. sanitized may be nil.
func (s *Service) ReportXLSX(res *entity.MergeResult, sanitized map[string]sanitize.Result) ([]byte, error) {
	if res == nil || res.MergedFields == nil {
		return nil, fmt.Errorf("report: nil merge result")
	}
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(s.sheet); index == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(s.sheet, cell, v)
	}

	headers := []string{"Field", "Value", "Notes"}
	for i, h := range headers {
		write(i+1, 1, h)
	}

	row := 2
	fields := res.MergedFields
	for _, name := range constants.ScalarFields {
		v, _ := fields.Scalar(name)
		if entity.Blank(v) {
			continue
		}
		write(1, row, string(name))
		write(2, row, truncate(v, 140))
		row++
	}
	for _, name := range res.MergedFieldNames {
		v, ok := fields.Additional[name]
		if !ok {
			continue
		}
		write(1, row, name)
		write(2, row, truncate(v, 140))
		if sr, ok := sanitized[name]; ok && len(sr.Warnings) > 0 {
			write(3, row, strings.Join(sr.Warnings, "; "))
		}
		row++
	}
	for _, a := range fields.Amounts {
		write(1, row, "Importe")
		write(2, row, fmt.Sprintf("%.2f %s", a.Value, a.CurrencyCode))
		write(3, row, a.Raw)
		row++
	}
	for _, d := range fields.Dates {
		write(1, row, "Fecha")
		write(2, row, d)
		row++
	}

	if len(res.Conflicts) > 0 {
		row++
		write(1, row, "Conflict Field")
		write(2, row, "Values")
		write(3, row, "Resolution")
		row++
		for _, c := range res.Conflicts {
			write(1, row, c.Field)
			write(2, row, truncate(strings.Join(c.Values, " | "), 140))
			write(3, row, c.Resolution)
			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(s.sheet, "A", "A", 22)
	_ = f.SetColWidth(s.sheet, "B", "B", 48)
	_ = f.SetColWidth(s.sheet, "C", "C", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.WrapError(err, "xlsx write")
	}

	s.logger.Info("export.xlsx.ok",
		"fields", len(res.MergedFieldNames),
		"conflicts", len(res.Conflicts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate caps s at n runes; field text is Spanish, so byte slicing would
// cut accented characters in half.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
