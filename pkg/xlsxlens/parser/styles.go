package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
)

// builtinDateFormats is the fixed set of built-in number-format ids that
// always render as dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 30: true, 36: true, 45: true, 46: true, 47: true,
}

// dateTokens are the pattern fragments the custom-format heuristic looks for.
var dateTokens = []string{"d", "y", "m/", "h", "s"}

// Styles resolves cell style indexes to number formats. The cell-format list
// is positional: a cell's s attribute is an index into it.
type Styles struct {
	cellFormats   []int          // cellXfs position -> numFmtId
	customFormats map[int]string // non-built-in numFmtId -> format code
}

// ReadStyles parses the styles part. An absent part yields empty lookups,
// not an error.
func ReadStyles(c *Container) (*Styles, error) {
	data, err := c.ReadPart(partStyles)
	if err != nil {
		if errors.Is(err, ErrPartMissing) {
			return &Styles{customFormats: map[int]string{}}, nil
		}
		return nil, err
	}
	return parseStyles(data), nil
}

func parseStyles(data []byte) *Styles {
	s := &Styles{customFormats: make(map[int]string)}
	dec := xml.NewDecoder(bytes.NewReader(data))
	inNumFmts := false
	inCellXfs := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "numFmts":
				inNumFmts = true
			case "cellXfs":
				inCellXfs = true
			case "numFmt":
				if !inNumFmts {
					continue
				}
				id := 0
				code := ""
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "numFmtId":
						id, _ = strconv.Atoi(attr.Value)
					case "formatCode":
						code = attr.Value
					}
				}
				s.customFormats[id] = code
			case "xf":
				if !inCellXfs {
					continue
				}
				id := 0
				for _, attr := range t.Attr {
					if attr.Name.Local == "numFmtId" {
						id, _ = strconv.Atoi(attr.Value)
					}
				}
				s.cellFormats = append(s.cellFormats, id)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "numFmts":
				inNumFmts = false
			case "cellXfs":
				inCellXfs = false
			}
		}
	}
	return s
}

// FormatID returns the number-format id referenced by a cell style index,
// or 0 (General) when the index is out of range.
func (s *Styles) FormatID(styleIndex int) int {
	if styleIndex < 0 || styleIndex >= len(s.cellFormats) {
		return 0
	}
	return s.cellFormats[styleIndex]
}

// IsDateFormat reports whether the number-format id renders as a date.
func (s *Styles) IsDateFormat(id int) bool {
	return IsDateFormat(id, s.customFormats[id])
}

// IsDateFormat classifies a number format as date-like: built-in date ids
// always qualify; otherwise a loose token heuristic runs over the lowercased
// custom format code. A pattern with both a 0 digit placeholder and a
// decimal point is taken as a plain decimal format even when it contains a
// stray date letter. Exotic locale patterns can be misjudged either way;
// this is a known limitation.
func IsDateFormat(id int, code string) bool {
	if builtinDateFormats[id] {
		return true
	}
	if code == "" {
		return false
	}
	lower := strings.ToLower(code)
	if strings.Contains(lower, "0") && strings.Contains(lower, ".") {
		return false
	}
	for _, tok := range dateTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
