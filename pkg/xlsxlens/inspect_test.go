package xlsxlens

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/models"
)

// buildOrdersWorkbook writes an xlsx fixture with two sheets, shared
// strings, one date-styled column, and six data rows.
func buildOrdersWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Orders"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("add sheet: %v", err)
	}

	headers := []string{"order_id", "customer", "total", "shipped_at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue("Orders", cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}

	customers := []string{"ada", "grace", "ada", "linus", "grace", "ada"}
	for r := 0; r < 6; r++ {
		row := r + 2
		f.SetCellValue("Orders", fmt.Sprintf("A%d", row), 1000+r)
		f.SetCellValue("Orders", fmt.Sprintf("B%d", row), customers[r])
		f.SetCellValue("Orders", fmt.Sprintf("C%d", row), float64(r)+0.5)
		f.SetCellValue("Orders", fmt.Sprintf("D%d", row), 45000.0+float64(r))
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := f.SetCellStyle("Orders", "D2", "D7", dateStyle); err != nil {
		t.Fatalf("set style: %v", err)
	}

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func buildRawPackage(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.xlsx")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectEndToEnd(t *testing.T) {
	report, err := Inspect(buildOrdersWorkbook(t), Options{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if len(report.Sheets) != 2 {
		t.Errorf("sheets = %d, want 2", len(report.Sheets))
	}
	if report.InspectedSheet != "Orders" {
		t.Errorf("inspected sheet = %q", report.InspectedSheet)
	}
	if report.HeaderRowIndex == nil || *report.HeaderRowIndex != 1 {
		t.Errorf("header row index = %v, want 1", report.HeaderRowIndex)
	}
	if report.DataRows != 6 {
		t.Errorf("data rows = %d, want 6", report.DataRows)
	}
	if len(report.Headers) != 4 || report.Headers[3] != "shipped_at" {
		t.Errorf("headers = %v", report.Headers)
	}

	kinds := map[string]models.Kind{}
	dateColumns := 0
	for _, col := range report.Columns {
		kinds[col.Name] = col.InferredKind
		if col.InferredKind == models.KindDate {
			dateColumns++
		}
		if col.NonNullCount != 6 {
			t.Errorf("column %q non-null = %d, want 6", col.Name, col.NonNullCount)
		}
	}
	if dateColumns != 1 {
		t.Errorf("date columns = %d, want exactly 1", dateColumns)
	}
	if kinds["order_id"] != models.KindInt {
		t.Errorf("order_id kind = %s, want int", kinds["order_id"])
	}
	if kinds["customer"] != models.KindString {
		t.Errorf("customer kind = %s, want str", kinds["customer"])
	}
	if kinds["total"] != models.KindFloat {
		t.Errorf("total kind = %s, want float", kinds["total"])
	}
	if kinds["shipped_at"] != models.KindDate {
		t.Errorf("shipped_at kind = %s, want date", kinds["shipped_at"])
	}

	if len(report.Samples) != 5 {
		t.Errorf("row samples = %d, want 5", len(report.Samples))
	}
	// The date column keeps its raw serial in samples.
	if report.Samples[0][3] != 45000.0 {
		t.Errorf("date sample = %v, want raw serial 45000", report.Samples[0][3])
	}
}

func TestInspectRowLimit(t *testing.T) {
	report, err := Inspect(buildOrdersWorkbook(t), Options{RowLimit: 3})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if report.DataRows != 3 {
		t.Errorf("data rows = %d, want 3 (capped)", report.DataRows)
	}
}

func TestInspectPackageNotFound(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "missing.xlsx"), Options{})
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestInspectNoSheets(t *testing.T) {
	path := buildRawPackage(t, map[string]string{
		"xl/workbook.xml": `<workbook><sheets/></workbook>`,
	})
	_, err := Inspect(path, Options{})
	if !errors.Is(err, ErrNoSheets) {
		t.Errorf("expected ErrNoSheets, got %v", err)
	}
}

func TestInspectMissingWorkbookPart(t *testing.T) {
	path := buildRawPackage(t, map[string]string{
		"xl/styles.xml": `<styleSheet/>`,
	})
	_, err := Inspect(path, Options{})
	if !errors.Is(err, ErrMissingPart) {
		t.Errorf("expected ErrMissingPart, got %v", err)
	}
}

func TestInspectMissingRelationshipsFallsBack(t *testing.T) {
	// No relationships part at all: the first worksheet is still found via
	// the conventional default path.
	path := buildRawPackage(t, map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Data" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>
<row r="1"><c r="A1" t="str"><v>h</v></c></row>
<row r="2"><c r="A2"><v>7</v></c></row>
</sheetData></worksheet>`,
	})

	report, err := Inspect(path, Options{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if report.SheetPath != "xl/worksheets/sheet1.xml" {
		t.Errorf("sheet path = %q", report.SheetPath)
	}
	if report.DataRows != 1 {
		t.Errorf("data rows = %d, want 1", report.DataRows)
	}
}

func TestInspectHeaderlessSheet(t *testing.T) {
	path := buildRawPackage(t, map[string]string{
		"xl/workbook.xml": `<workbook><sheets><sheet name="Empty" sheetId="1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>
<row r="1"/><row r="2"><c r="A2"/></row>
</sheetData></worksheet>`,
	})

	report, err := Inspect(path, Options{})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if report.HeaderRowIndex != nil {
		t.Errorf("header row index = %v, want nil", *report.HeaderRowIndex)
	}
	if report.DataRows != 0 || len(report.Headers) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
