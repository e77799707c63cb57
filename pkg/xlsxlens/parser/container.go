// Package parser implements a hand-rolled decoder for the OOXML spreadsheet
// container: workbook and relationship parts, shared strings, number-format
// styles, and per-sheet cell streams. It deliberately avoids spreadsheet
// libraries so that malformed or partial packages can still be inspected.
package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// Part names fixed by the spreadsheet package convention.
const (
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partSharedStrings = "xl/sharedStrings.xml"
	partStyles        = "xl/styles.xml"

	// defaultSheetPart is the conventional location of the first worksheet,
	// used as a best-effort fallback when relationship metadata is missing
	// or does not resolve.
	defaultSheetPart = "xl/worksheets/sheet1.xml"
)

// ErrPartMissing reports a named part absent from the package. Readers of
// optional parts (relationships, shared strings, styles) recover from it by
// substituting an empty resource; for the workbook part it is fatal.
var ErrPartMissing = errors.New("part missing")

// Container provides random access to the named parts of an xlsx package.
type Container struct {
	zc     *zip.ReadCloser
	reader *zip.Reader
}

// OpenContainer opens an xlsx package from a file path. The error covers
// both a missing file and a file that is not a valid archive.
func OpenContainer(path string) (*Container, error) {
	zc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return &Container{zc: zc, reader: &zc.Reader}, nil
}

// NewContainer wraps an already-open archive.
func NewContainer(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &Container{reader: zr}, nil
}

// ReadPart returns the raw bytes of the named part, or an error wrapping
// ErrPartMissing when no such part exists.
func (c *Container) ReadPart(name string) ([]byte, error) {
	for _, f := range c.reader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPartMissing, name)
}

// Close releases the underlying archive when the container owns it.
func (c *Container) Close() error {
	if c.zc != nil {
		return c.zc.Close()
	}
	return nil
}
