package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"schedparse/domain/core"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if build != nil {
		build(f)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// TestLoadWorkbookEmpty tests the empty-upload sentinel.
func TestLoadWorkbookEmpty(t *testing.T) {
	_, err := LoadWorkbook(nil)
	if !errors.Is(err, core.ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

// TestLoadWorkbookTooSmall tests that a truncated file is rejected.
func TestLoadWorkbookTooSmall(t *testing.T) {
	_, err := LoadWorkbook([]byte("PK\x03\x04"))
	if !errors.Is(err, core.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

// TestLoadWorkbookJunk tests that non-zip bytes are rejected.
func TestLoadWorkbookJunk(t *testing.T) {
	junk := bytes.Repeat([]byte("definitely not xlsx "), 32)
	_, err := LoadWorkbook(junk)
	if !errors.Is(err, core.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

// TestLoadWorkbookValid tests the happy path including cell access.
func TestLoadWorkbookValid(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Spec Code")
		f.SetCellValue("Sheet1", "B3", "FCA-01")
	})

	wb, err := LoadWorkbook(data)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) != 1 || names[0] != "Sheet1" {
		t.Fatalf("unexpected sheet names: %v", names)
	}
	sheet, ok := wb.Sheet("Sheet1")
	if !ok {
		t.Fatal("Sheet1 not found")
	}
	if got := sheet.Cell(1, 1); got != "Spec Code" {
		t.Errorf("A1 = %q", got)
	}
	if got := sheet.Cell(3, 2); got != "FCA-01" {
		t.Errorf("B3 = %q", got)
	}
	if got := sheet.Cell(99, 99); got != "" {
		t.Errorf("out of range cell = %q", got)
	}
}

// TestScheduleNameFromTitleCell tests the top-of-sheet title scan.
func TestScheduleNameFromTitleCell(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Ground Floor Finishes Schedule")
		f.SetCellValue("Sheet1", "A2", "Spec Code")
	})

	wb, err := LoadWorkbook(data)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	defer wb.Close()

	if got := ScheduleName(wb, "upload.xlsx"); got != "Ground Floor Finishes Schedule" {
		t.Errorf("unexpected title: %q", got)
	}
}

// TestScheduleNameFallback tests falling back to the filename stem when
// no usable title cell exists.
func TestScheduleNameFallback(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		// single words and codes are not usable titles
		f.SetCellValue("Sheet1", "A1", "Qty")
		f.SetCellValue("Sheet1", "B1", "FCA")
	})

	wb, err := LoadWorkbook(data)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	defer wb.Close()

	if got := ScheduleName(wb, "/tmp/Joinery Schedule Rev C.xlsx"); got != "Joinery Schedule Rev C" {
		t.Errorf("unexpected fallback: %q", got)
	}
}

// TestMergedRangesExposed tests that merge metadata reaches the port.
func TestMergedRangesExposed(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "FLOORING")
		f.MergeCell("Sheet1", "A1", "C1")
	})

	wb, err := LoadWorkbook(data)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	defer wb.Close()

	sheet, _ := wb.Sheet("Sheet1")
	ranges := sheet.MergedRanges()
	if len(ranges) != 1 {
		t.Fatalf("expected 1 merged range, got %d", len(ranges))
	}
	r := ranges[0]
	if r.MinRow != 1 || r.MaxRow != 1 || r.MinCol != 1 || r.MaxCol != 3 {
		t.Errorf("unexpected range: %+v", r)
	}
}
