package xlsxlens

import (
	"errors"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/parser"
)

// ErrPackageNotFound indicates the input path does not exist or is not a
// valid xlsx archive. Fatal: the whole run aborts.
var ErrPackageNotFound = errors.New("package not found or not a valid xlsx archive")

// ErrNoSheets indicates the workbook declares zero sheets. Fatal: it is the
// only orchestrator-level hard failure beyond missing required parts.
var ErrNoSheets = errors.New("workbook declares no sheets")

// ErrMissingPart reports an absent package part. It is fatal only when the
// part is required (the workbook definition or the target worksheet);
// shared strings, styles, and relationships recover to empty resources.
var ErrMissingPart = parser.ErrPartMissing
