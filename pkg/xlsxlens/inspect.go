package xlsxlens

import (
	"fmt"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/models"
	"github.com/valmark/xlsxlens/pkg/xlsxlens/parser"
)

// Inspect opens an xlsx package and produces an InspectionReport for its
// first declared sheet. Shared strings and styles are optional; their
// absence degrades to empty resources. The only hard failures are an
// unreadable package, a missing workbook or worksheet part, and a workbook
// with no sheets.
func Inspect(path string, opts Options) (*models.InspectionReport, error) {
	opts.defaults()

	c, err := parser.OpenContainer(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, path)
	}
	defer c.Close()

	return inspectContainer(c, opts)
}

func inspectContainer(c *parser.Container, opts Options) (*models.InspectionReport, error) {
	sheets, err := parser.ReadWorkbookSheets(c)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	sst, err := parser.ReadSharedStrings(c)
	if err != nil {
		return nil, fmt.Errorf("read shared strings: %w", err)
	}
	styles, err := parser.ReadStyles(c)
	if err != nil {
		return nil, fmt.Errorf("read styles: %w", err)
	}
	opts.Logger.Debug("resources loaded",
		"sheets", len(sheets), "shared_strings", len(sst))

	target := sheets[0]
	result, err := parser.ParseSheet(c, target.Path, sst, styles, opts.RowLimit)
	if err != nil {
		return nil, fmt.Errorf("parse sheet %q: %w", target.Name, err)
	}

	headers := result.Headers
	if headers == nil {
		headers = []string{}
	}
	report := &models.InspectionReport{
		Sheets:         make([]models.SheetRef, 0, len(sheets)),
		InspectedSheet: target.Name,
		SheetPath:      target.Path,
		HeaderRowIndex: result.HeaderRowIndex,
		Headers:        headers,
		DataRows:       len(result.Rows),
		Columns:        parser.InferColumns(headers, result.Rows),
		Samples:        sampleRows(result.Rows, 5),
	}
	for _, s := range sheets {
		report.Sheets = append(report.Sheets, models.SheetRef{Name: s.Name, Path: s.Path})
	}
	return report, nil
}

func sampleRows(rows [][]models.CellValue, n int) [][]interface{} {
	samples := make([][]interface{}, 0, n)
	for i := 0; i < len(rows) && i < n; i++ {
		row := make([]interface{}, len(rows[i]))
		for j, v := range rows[i] {
			row[j] = v.Interface()
		}
		samples = append(samples, row)
	}
	return samples
}
