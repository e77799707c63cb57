// Package convert turns xlsx worksheets into CSV files. Unlike the decode
// core it reads through the excelize library, trading robustness against
// broken packages for full number-format support.
package convert

import "log/slog"

// Date format modes.
const (
	// DateISO renders date-styled cells as UTC ISO-8601 timestamps.
	DateISO = "iso"
	// DateSerial leaves date-styled cells as raw Excel serial numbers.
	DateSerial = "excel_serial"
)

// Options configures a conversion run.
type Options struct {
	// Sheet selects the worksheet by name. Empty means use SheetIndex.
	Sheet string
	// SheetIndex selects the worksheet by 1-based position when Sheet is
	// empty. Zero means the first sheet.
	SheetIndex int
	// Delimiter is the CSV field separator. Zero means comma.
	Delimiter rune
	// Encoding is the output encoding: utf-8 (default), utf-8-sig, cp1251.
	Encoding string
	// HeaderRow is the 1-based header row index. Zero means row 1. Rows
	// above it are skipped.
	HeaderRow int
	// CRLF switches line endings from LF to CRLF.
	CRLF bool
	// DateFormat is DateISO (default) or DateSerial.
	DateFormat string
	// Force overwrites an existing output file.
	Force bool
	// RowLimit caps the number of data rows written after the header.
	// Zero or negative means no cap.
	RowLimit int
	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Encoding == "" {
		o.Encoding = "utf-8"
	}
	if o.HeaderRow <= 0 {
		o.HeaderRow = 1
	}
	if o.DateFormat == "" {
		o.DateFormat = DateISO
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Result summarizes a completed conversion.
type Result struct {
	// Output is the path of the written CSV file.
	Output string `json:"output"`
	// Rows is the number of data rows written (header excluded).
	Rows int `json:"rows"`
	// Cols is the header column count.
	Cols int `json:"cols"`
}
