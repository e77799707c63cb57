package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
)

// SharedStrings is the ordered, index-addressed string table shared by text
// cells across the workbook.
type SharedStrings []string

// ReadSharedStrings parses the shared-strings part. An absent part yields an
// empty table, not an error.
func ReadSharedStrings(c *Container) (SharedStrings, error) {
	data, err := c.ReadPart(partSharedStrings)
	if err != nil {
		if errors.Is(err, ErrPartMissing) {
			return nil, nil
		}
		return nil, err
	}
	return parseSharedStrings(data), nil
}

// parseSharedStrings collects each string item as the concatenation of its
// text runs in document order.
func parseSharedStrings(data []byte) SharedStrings {
	var sst SharedStrings
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "si" {
			sst = append(sst, collectTextRuns(dec))
		}
	}
	return sst
}

// At dereferences a shared-string index. Out-of-range references resolve to
// the empty string so that a single bad cell cannot abort a parse.
func (s SharedStrings) At(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// collectTextRuns concatenates the text of every <t> element under the
// current element until its end tag, preserving run order. A run with no
// character data contributes the empty string.
func collectTextRuns(dec *xml.Decoder) string {
	var b strings.Builder
	depth := 1
	inText := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			depth--
		}
	}
	return b.String()
}
