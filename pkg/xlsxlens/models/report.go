package models

// SheetRef is a name/path pair listed in the report for every declared sheet.
type SheetRef struct {
	// Name is the sheet display name.
	Name string `json:"name"`
	// Path is the resolved archive path of the worksheet part.
	Path string `json:"path"`
}

// ColumnSummary aggregates one header column across the sampled data rows.
type ColumnSummary struct {
	// Index is the 0-based column index.
	Index int `json:"index"`
	// Name is the deduplicated header text.
	Name string `json:"name"`
	// InferredKind is the dominant value kind for the column.
	InferredKind Kind `json:"inferred_kind"`
	// NonNullCount is the number of sampled values that are not empty.
	NonNullCount int `json:"non_null_count"`
	// Samples holds up to 5 values taken from the first data rows.
	Samples []interface{} `json:"samples"`
}

// InspectionReport is the aggregate result of inspecting one workbook.
type InspectionReport struct {
	// Sheets lists every declared sheet in declaration order.
	Sheets []SheetRef `json:"sheets"`
	// InspectedSheet is the name of the sheet the report describes.
	InspectedSheet string `json:"inspected_sheet"`
	// SheetPath is the archive path of the inspected sheet.
	SheetPath string `json:"sheet_path"`
	// HeaderRowIndex is the 1-based index of the first row with a non-empty
	// cell. Nil when the sheet has no such row.
	HeaderRowIndex *int `json:"header_row_index"`
	// Headers is the deduplicated header name list.
	Headers []string `json:"headers"`
	// DataRows is the number of data rows scanned (capped by the row limit).
	DataRows int `json:"data_rows"`
	// Columns summarizes each header column.
	Columns []ColumnSummary `json:"columns"`
	// Samples holds up to 5 materialized data rows.
	Samples [][]interface{} `json:"samples"`
}
