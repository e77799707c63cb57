// Package xlsxlens inspects xlsx workbooks with a hand-rolled OOXML decoder:
// it resolves the sheet list, decodes shared strings and number-format
// styles, streams the first sheet's rows, and reports headers, per-column
// inferred kinds, and row samples.
package xlsxlens

import "log/slog"

// DefaultRowLimit is the number of data rows scanned when Options.RowLimit
// is zero.
const DefaultRowLimit = 500

// Options configures an inspection run.
type Options struct {
	// RowLimit caps the number of data rows scanned after the header row.
	// Zero means DefaultRowLimit; a negative value removes the cap. The cap
	// is a sampling limit: the reported data-row count reflects only what
	// was scanned.
	RowLimit int

	// Logger receives debug messages. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.RowLimit == 0 {
		o.RowLimit = DefaultRowLimit
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
