package parser

import "testing"

func TestReadSharedStrings(t *testing.T) {
	c := openPackage(t, map[string]string{
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
  <si><t>plain</t></si>
  <si><r><rPr><b/></rPr><t>bold </t></r><r><t/></r><r><t>tail</t></r></si>
  <si><t xml:space="preserve">  spaced  </t></si>
</sst>`,
	})

	sst, err := ReadSharedStrings(c)
	if err != nil {
		t.Fatalf("ReadSharedStrings failed: %v", err)
	}
	if len(sst) != 3 {
		t.Fatalf("expected 3 strings, got %d", len(sst))
	}
	if sst[0] != "plain" {
		t.Errorf("item 0 = %q", sst[0])
	}
	// Formatted runs concatenate in document order; an empty run
	// contributes nothing.
	if sst[1] != "bold tail" {
		t.Errorf("item 1 = %q", sst[1])
	}
	if sst[2] != "  spaced  " {
		t.Errorf("item 2 = %q", sst[2])
	}
}

func TestReadSharedStringsAbsent(t *testing.T) {
	c := openPackage(t, map[string]string{
		"xl/workbook.xml": "<workbook/>",
	})

	sst, err := ReadSharedStrings(c)
	if err != nil {
		t.Fatalf("absent shared strings must not fail: %v", err)
	}
	if len(sst) != 0 {
		t.Errorf("expected empty table, got %d entries", len(sst))
	}
}

func TestSharedStringsAt(t *testing.T) {
	sst := SharedStrings{"a", "b"}
	if got := sst.At(1); got != "b" {
		t.Errorf("At(1) = %q", got)
	}
	// Out-of-range dereferences soft-fail to the empty string.
	if got := sst.At(2); got != "" {
		t.Errorf("At(2) = %q, want empty", got)
	}
	if got := sst.At(-1); got != "" {
		t.Errorf("At(-1) = %q, want empty", got)
	}
}
