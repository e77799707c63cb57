package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/valmark/xlsxlens/pkg/xlsxlens/parser"
)

// Conversion errors.
var (
	// ErrOutputExists indicates the output file already exists and Force is
	// not set.
	ErrOutputExists = errors.New("output already exists")
	// ErrSheetNotFound indicates the selected sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedEncoding indicates an unknown output encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File converts one worksheet of the xlsx file at inputPath into a CSV file
// at outputPath, streaming rows rather than loading the sheet whole.
func File(inputPath, outputPath string, opts Options) (*Result, error) {
	opts.defaults()

	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := selectSheet(f, opts)
	if err != nil {
		return nil, err
	}

	if err := ensureOutput(outputPath, opts.Force); err != nil {
		return nil, err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	encoded, flushEnc, err := encodingWriter(out, opts.Encoding)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(encoded)
	w.Comma = opts.Delimiter
	w.UseCRLF = opts.CRLF

	opts.Logger.Info("converting sheet",
		"input", inputPath, "sheet", sheet, "output", outputPath)

	res, err := writeRows(f, sheet, w, opts)
	if err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	if flushEnc != nil {
		if err := flushEnc(); err != nil {
			return nil, fmt.Errorf("flush encoder: %w", err)
		}
	}

	res.Output = outputPath
	opts.Logger.Info("conversion done", "rows", res.Rows, "cols", res.Cols)
	return res, nil
}

func writeRows(f *excelize.File, sheet string, w *csv.Writer, opts Options) (*Result, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	defer rows.Close()

	res := &Result{}
	// Memoized style id -> renders-as-date classification.
	dateStyles := make(map[int]bool)
	rowNum := 0
	for rows.Next() {
		rowNum++
		if rowNum < opts.HeaderRow {
			continue
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum, err)
		}

		if rowNum == opts.HeaderRow {
			if err := w.Write(cols); err != nil {
				return nil, err
			}
			res.Cols = len(cols)
			continue
		}

		record := make([]string, len(cols))
		for i, val := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			record[i] = renderCell(f, sheet, cell, val, dateStyles, opts)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
		res.Rows++
		if opts.RowLimit > 0 && res.Rows >= opts.RowLimit {
			break
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return res, nil
}

// renderCell maps one raw cell value to its CSV text: booleans become
// TRUE/FALSE and date-styled serials become ISO timestamps unless the
// serial format was requested.
func renderCell(f *excelize.File, sheet, cell, val string, dateStyles map[int]bool, opts Options) string {
	if val == "" {
		return ""
	}
	if val == "0" || val == "1" {
		if ct, err := f.GetCellType(sheet, cell); err == nil && ct == excelize.CellTypeBool {
			if val == "1" {
				return "TRUE"
			}
			return "FALSE"
		}
	}
	if opts.DateFormat != DateISO {
		return val
	}
	serial, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return val
	}
	if !isDateCell(f, sheet, cell, dateStyles) {
		return val
	}
	return SerialToTime(serial).UTC().Format("2006-01-02T15:04:05Z")
}

// isDateCell resolves the cell's style to a number format and classifies it
// with the same heuristic the decode core uses.
func isDateCell(f *excelize.File, sheet, cell string, memo map[int]bool) bool {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	if isDate, ok := memo[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := f.GetStyle(styleID); err == nil && style != nil {
		code := ""
		if style.CustomNumFmt != nil {
			code = *style.CustomNumFmt
		}
		isDate = parser.IsDateFormat(style.NumFmt, code)
	}
	memo[styleID] = isDate
	return isDate
}

func selectSheet(f *excelize.File, opts Options) (string, error) {
	list := f.GetSheetList()
	if opts.Sheet != "" {
		for _, name := range list {
			if name == opts.Sheet {
				return name, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, opts.Sheet)
	}
	idx := opts.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(list) {
		return "", fmt.Errorf("%w: index %d of %d", ErrSheetNotFound, idx, len(list))
	}
	return list[idx-1], nil
}

func ensureOutput(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// encodingWriter wraps w for the named output encoding. The returned flush
// function, when non-nil, must be called after the last write.
func encodingWriter(w io.Writer, name string) (io.Writer, func() error, error) {
	switch name {
	case "utf-8":
		return w, nil, nil
	case "utf-8-sig":
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, nil, err
		}
		return w, nil, nil
	case "cp1251":
		tw := transform.NewWriter(w, charmap.Windows1251.NewEncoder())
		return tw, tw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
}

// serialEpoch is 1899-12-30, the Windows spreadsheet epoch that absorbs the
// historical 1900 leap-year bug.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialToTime converts an Excel serial day count into a UTC time. This is
// the calendar interpretation the decode core deliberately defers to its
// consumers.
func SerialToTime(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)
	return serialEpoch.AddDate(0, 0, days).
		Add(time.Duration(frac * 24 * float64(time.Hour)))
}
