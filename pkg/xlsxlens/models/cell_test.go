package models

import "testing"

func TestCellValueText(t *testing.T) {
	tests := []struct {
		v    CellValue
		want string
	}{
		{Empty(), ""},
		{Str("hi"), "hi"},
		{CellValue{Kind: KindBool, Bool: true}, "true"},
		{CellValue{Kind: KindInt, Int: -7}, "-7"},
		{CellValue{Kind: KindFloat, Float: 1.5}, "1.5"},
		{CellValue{Kind: KindDate, Float: 45000}, "45000"},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("Text(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCellValueIsBlank(t *testing.T) {
	if !Empty().IsBlank() || !Str("").IsBlank() {
		t.Error("empty value and empty string must both be blank")
	}
	if Str("x").IsBlank() {
		t.Error("non-empty string must not be blank")
	}
	if (CellValue{Kind: KindInt, Int: 0}).IsBlank() {
		t.Error("integer zero must not be blank")
	}
	if (CellValue{Kind: KindBool, Bool: false}).IsBlank() {
		t.Error("boolean false must not be blank")
	}
}

func TestCellValueInterface(t *testing.T) {
	if v := Empty().Interface(); v != nil {
		t.Errorf("empty Interface() = %v, want nil", v)
	}
	if v := (CellValue{Kind: KindDate, Float: 45000}).Interface(); v != 45000.0 {
		t.Errorf("date Interface() = %v, want raw serial", v)
	}
	if v := (CellValue{Kind: KindInt, Int: 3}).Interface(); v != int64(3) {
		t.Errorf("int Interface() = %v (%T)", v, v)
	}
}
