package models

// Sheet describes one worksheet declared by the workbook part. Declaration
// order is significant: it defines the 1-based sheet numbering used
// elsewhere in the package.
type Sheet struct {
	// Name is the display name (not necessarily unique).
	Name string `json:"name"`
	// SheetID is the opaque id carried by the workbook part.
	SheetID string `json:"sheet_id"`
	// RelID is the relationship id pointing at the worksheet part, if any.
	RelID string `json:"rel_id,omitempty"`
	// Path is the archive path of the worksheet part, resolved through the
	// relationship map or the first-worksheet fallback convention.
	Path string `json:"path"`
}
