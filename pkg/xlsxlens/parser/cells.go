package parser

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/models"
)

// rawCell is one <c> node lifted out of the worksheet stream before
// decoding.
type rawCell struct {
	ref       string // cell address, e.g. "B12"
	typ       string // t attribute
	style     string // s attribute
	value     string // <v> text
	hasValue  bool
	inline    string // concatenated <is> text runs
	hasInline bool
}

// parseCell consumes one <c> element from the decoder, starting from its
// open tag.
func parseCell(dec *xml.Decoder, start xml.StartElement) rawCell {
	var cell rawCell
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "r":
			cell.ref = attr.Value
		case "t":
			cell.typ = attr.Value
		case "s":
			cell.style = attr.Value
		}
	}

	var value strings.Builder
	inValue := false
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "v":
				inValue = true
			case "is":
				cell.inline = collectTextRuns(dec)
				cell.hasInline = true
				depth--
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "v" {
				inValue = false
				cell.hasValue = true
			}
			depth--
		}
	}
	cell.value = value.String()
	return cell
}

// decodeCell classifies one raw cell into a tagged value. Every failure mode
// degrades the single cell: an out-of-range shared-string index becomes the
// empty string and an unparseable numeric literal falls back to raw text.
func decodeCell(cell rawCell, sst SharedStrings, styles *Styles) models.CellValue {
	if !cell.hasValue && !cell.hasInline {
		return models.Empty()
	}

	switch cell.typ {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(cell.value))
		if err != nil {
			return models.Str("")
		}
		return models.Str(sst.At(idx))
	case "b":
		return models.CellValue{Kind: models.KindBool, Bool: cell.value == "1"}
	case "str":
		return models.Str(cell.value)
	case "inlineStr":
		return models.Str(cell.inline)
	}

	// No recognized type attribute: numeric by default, possibly a date
	// serial depending on the cell's style.
	num, err := strconv.ParseFloat(strings.TrimSpace(cell.value), 64)
	if err != nil {
		return models.Str(cell.value)
	}
	if cell.style != "" {
		if styleIdx, err := strconv.Atoi(cell.style); err == nil {
			if styles.IsDateFormat(styles.FormatID(styleIdx)) {
				return models.CellValue{Kind: models.KindDate, Float: num}
			}
		}
	}
	if num == math.Trunc(num) && !math.IsInf(num, 0) &&
		num >= math.MinInt64 && num <= math.MaxInt64 {
		return models.CellValue{Kind: models.KindInt, Int: int64(num)}
	}
	return models.CellValue{Kind: models.KindFloat, Float: num}
}

// columnIndex decodes the letter prefix of a cell reference into a 0-based
// column index via base-26 letter arithmetic. ok is false for references
// without the letters-then-digits shape; such cells are skipped.
func columnIndex(ref string) (int, bool) {
	i := 0
	idx := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		idx = idx*26 + int(ref[i]-'A'+1)
		i++
	}
	if i == 0 || i >= len(ref) || ref[i] < '0' || ref[i] > '9' {
		return 0, false
	}
	return idx - 1, true
}
