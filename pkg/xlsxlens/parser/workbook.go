package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/models"
)

// ReadWorkbookSheets parses the workbook part and its relationships part and
// returns the declared sheets in declaration order, each with its worksheet
// part path resolved. A missing relationships part is treated as an empty
// map; a missing workbook part is an error.
func ReadWorkbookSheets(c *Container) ([]models.Sheet, error) {
	data, err := c.ReadPart(partWorkbook)
	if err != nil {
		return nil, err
	}
	sheets := parseWorkbookSheets(data)

	rels := map[string]string{}
	if relsData, err := c.ReadPart(partWorkbookRels); err == nil {
		rels = parseRelationships(relsData)
	} else if !errors.Is(err, ErrPartMissing) {
		return nil, err
	}

	for i := range sheets {
		sheets[i].Path = resolveSheetPath(sheets[i].RelID, rels)
	}
	return sheets, nil
}

// parseWorkbookSheets extracts the ordered sheet declarations from
// workbook.xml.
func parseWorkbookSheets(data []byte) []models.Sheet {
	var sheets []models.Sheet
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s models.Sheet
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				s.Name = attr.Value
			case "sheetId":
				s.SheetID = attr.Value
			case "id":
				// r:id, the relationship back-reference.
				s.RelID = attr.Value
			}
		}
		sheets = append(sheets, s)
	}
	return sheets
}

// parseRelationships builds the relationship id -> target path map from
// workbook.xml.rels.
func parseRelationships(data []byte) map[string]string {
	rels := make(map[string]string)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if id != "" && target != "" {
			rels[id] = target
		}
	}
	return rels
}

// resolveSheetPath maps a sheet's relationship id to an archive path.
// Relative targets are rooted under the workbook directory; absolute-style
// targets drop their leading separator. An unresolved id falls back to the
// conventional first-worksheet path, a documented best-effort behavior for
// packages with missing or malformed relationship metadata.
func resolveSheetPath(relID string, rels map[string]string) string {
	if target, ok := rels[relID]; ok && relID != "" {
		if strings.HasPrefix(target, "/") {
			return target[1:]
		}
		return "xl/" + target
	}
	return defaultSheetPart
}
