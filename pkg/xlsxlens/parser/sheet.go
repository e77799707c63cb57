package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/models"
)

// SheetResult holds the decoded contents of one worksheet: the detected
// header row and the dense data rows that follow it.
type SheetResult struct {
	// HeaderRowIndex is the 1-based index of the first row containing a
	// non-blank cell. Nil when no such row exists, in which case Headers
	// and Rows are empty; that is a valid outcome, not an error.
	HeaderRowIndex *int
	// Headers is the deduplicated header name list.
	Headers []string
	// Rows are the materialized data rows, each padded with empty values up
	// to max(header width, the row's own maximum column index + 1).
	Rows [][]models.CellValue
}

// ParseSheet streams the worksheet part at partPath in a single forward
// pass. rowLimit caps the number of data rows collected after the header;
// zero or negative means no cap.
func ParseSheet(c *Container, partPath string, sst SharedStrings, styles *Styles, rowLimit int) (*SheetResult, error) {
	data, err := c.ReadPart(partPath)
	if err != nil {
		return nil, err
	}
	return parseSheetData(data, sst, styles, rowLimit), nil
}

func parseSheetData(data []byte, sst SharedStrings, styles *Styles, rowLimit int) *SheetResult {
	res := &SheetResult{}
	headerFound := false
	headerWidth := 0
	rowNum := 0

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}
		rowNum++
		cells := parseRowCells(dec, sst, styles)

		if !headerFound {
			// Rows that are entirely blank before the header do not count
			// toward anything.
			if !anyNonBlank(cells) {
				continue
			}
			maxCol := -1
			for i := range cells {
				if i > maxCol {
					maxCol = i
				}
			}
			headers := make([]string, maxCol+1)
			for i, v := range cells {
				headers[i] = v.Text()
			}
			res.Headers = uniqueHeaders(headers)
			idx := rowNum
			res.HeaderRowIndex = &idx
			headerWidth = len(res.Headers)
			headerFound = true
			continue
		}

		width := headerWidth
		for i := range cells {
			if i+1 > width {
				width = i + 1
			}
		}
		row := make([]models.CellValue, width)
		for i := range row {
			row[i] = models.Empty()
		}
		for i, v := range cells {
			row[i] = v
		}
		res.Rows = append(res.Rows, row)
		if rowLimit > 0 && len(res.Rows) >= rowLimit {
			break
		}
	}
	return res
}

// parseRowCells consumes one <row> element and returns its cells as a
// sparse column-index map. Cells with malformed references are skipped
// without aborting the row.
func parseRowCells(dec *xml.Decoder, sst SharedStrings, styles *Styles) map[int]models.CellValue {
	cells := make(map[int]models.CellValue)
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "c" {
				cell := parseCell(dec, t)
				depth--
				col, ok := columnIndex(cell.ref)
				if !ok {
					continue
				}
				cells[col] = decodeCell(cell, sst, styles)
			}
		case xml.EndElement:
			depth--
		}
	}
	return cells
}

func anyNonBlank(cells map[int]models.CellValue) bool {
	for _, v := range cells {
		if !v.IsBlank() {
			return true
		}
	}
	return false
}

// uniqueHeaders trims header text and disambiguates repeats: the first
// occurrence keeps the bare name, later collisions get __2, __3, ...
func uniqueHeaders(headers []string) []string {
	counts := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		base := strings.TrimSpace(h)
		counts[base]++
		if counts[base] == 1 {
			out[i] = base
		} else {
			out[i] = fmt.Sprintf("%s__%d", base, counts[base])
		}
	}
	return out
}
