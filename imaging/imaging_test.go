// seehuhn.de/go/pdfredact - geometric redaction for PDF page content
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package imaging

import "testing"

func TestIndexedPaletteAlpha(t *testing.T) {
	d := NewDIB(2, 1, FormatIndexed8)
	d.Palette = []PaletteEntry{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 128},
	}
	d.Pix[0] = 0
	d.Pix[1] = 1

	if !d.HasAlpha() {
		t.Fatal("palette with a non-opaque entry must report HasAlpha")
	}
	if got := d.AlphaAt(0, 0); got != 255 {
		t.Errorf("AlphaAt(0,0) = %d, want 255", got)
	}
	if got := d.AlphaAt(1, 0); got != 128 {
		t.Errorf("AlphaAt(1,0) = %d, want 128", got)
	}
	r, g, b := d.RGBAt(1, 0)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("RGBAt(1,0) = (%d,%d,%d), want (0,255,0)", r, g, b)
	}
}

func TestBGRA32Alpha(t *testing.T) {
	d := NewDIB(1, 1, FormatBGRA32)
	row := d.Row(0)
	row[0], row[1], row[2], row[3] = 10, 20, 30, 200
	if !d.HasAlpha() {
		t.Fatal("BGRA32 must always report HasAlpha")
	}
	if got := d.AlphaAt(0, 0); got != 200 {
		t.Errorf("AlphaAt = %d, want 200", got)
	}
	r, g, b := d.RGBAt(0, 0)
	if r != 30 || g != 20 || b != 10 {
		t.Errorf("RGBAt = (%d,%d,%d), want (30,20,10)", r, g, b)
	}
}

func TestMissingRowIsNil(t *testing.T) {
	d := NewDIB(4, 4, FormatGray8)
	d.Pix = d.Pix[:8] // truncate to 2 rows
	if d.Row(0) == nil {
		t.Error("row 0 should be present")
	}
	if d.Row(3) != nil {
		t.Error("row 3 should be reported missing, not padded")
	}
}

func TestSoftMaskFrom(t *testing.T) {
	src := NewDIB(2, 1, FormatRGB24)
	src.SetAlpha(0, 0, 255)
	src.SetAlpha(1, 0, 0)
	mask := SoftMaskFrom(src)
	if mask.Format != FormatGray8 {
		t.Fatalf("mask format = %v, want FormatGray8", mask.Format)
	}
	row := mask.Row(0)
	if row[0] != 255 || row[1] != 0 {
		t.Errorf("mask row = %v, want [255 0]", row)
	}
}
