package excel

import (
	"archive/zip"
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"schedparse/domain/core"
)

// minWorkbookBytes is below any plausible xlsx file; the ZIP container
// alone needs more than this.
const minWorkbookBytes = 100

// LoadWorkbook opens an xlsx workbook from raw bytes with validation.
// Loading failures map to the domain sentinels: core.ErrEmptyFile,
// core.ErrInvalidFormat and core.ErrEncrypted.
func LoadWorkbook(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, core.NewLoadError("empty file", core.ErrEmptyFile)
	}
	if len(data) < minWorkbookBytes {
		return nil, core.NewLoadError("file too small to be a workbook", core.ErrInvalidFormat)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewLoadError("open workbook", classifyOpenError(err))
	}
	return NewWorkbook(f), nil
}

// classifyOpenError maps excelize/zip failures onto domain sentinels.
func classifyOpenError(err error) error {
	if errors.Is(err, zip.ErrFormat) {
		return core.ErrInvalidFormat
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return core.ErrEncrypted
	}
	if strings.Contains(msg, "file format") || strings.Contains(msg, "zip") {
		return core.ErrInvalidFormat
	}
	return err
}

// maxTitleScanRows bounds the cover-sheet title scan.
const maxTitleScanRows = 10

// ScheduleName resolves a human-readable schedule title: the first short
// text cell near the top of the first sheet, else the filename stem.
func ScheduleName(wb *Workbook, filename string) string {
	names := wb.SheetNames()
	if len(names) > 0 {
		if sheet, ok := wb.Sheet(names[0]); ok {
			rows := sheet.MaxRow()
			if rows > maxTitleScanRows {
				rows = maxTitleScanRows
			}
			for row := 1; row <= rows; row++ {
				for col := 1; col <= sheet.MaxCol(); col++ {
					if title, ok := usableTitle(sheet.Cell(row, col)); ok {
						return title
					}
				}
			}
		}
	}
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" {
		stem = "Untitled Schedule"
	}
	log.Printf("[Excel] no title cell found, falling back to filename %q", stem)
	return stem
}

// usableTitle filters out formulas, codes and overly long text.
func usableTitle(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "=") {
		return "", false
	}
	if len(value) < 4 || len(value) > 80 {
		return "", false
	}
	// header-ish single words make poor titles
	if !strings.ContainsAny(value, " -") {
		return "", false
	}
	return value, true
}
