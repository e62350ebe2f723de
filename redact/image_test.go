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

package redact

import (
	"testing"

	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
)

func TestRedactImage_PartialRect(t *testing.T) {
	src := imaging.NewDIB(4, 4, imaging.FormatRGB24)
	for y := 0; y < 4; y++ {
		row := src.Row(y)
		for x := 0; x < 4; x++ {
			row[x*3], row[x*3+1], row[x*3+2] = 10, 20, 30
		}
	}
	// place the 4x4 image so its unit square maps 1:1 onto page-space
	// pixel coordinates, to keep the test's rectangle math simple.
	obj := &fakeImageObj{m: geom.Matrix{4, 0, 0, 4, 0, 0}, pix: imaging.Picture{D: src}}
	doc := &fakeDoc{}

	// covers the top half of the image on the page: pixel columns 0-1 of
	// the top-down DIB rows 0-1.
	rect := geom.Rectangle{Left: 0, Right: 2, Bottom: 2, Top: 4}

	changed, err := RedactImage(obj, []geom.Rectangle{rect}, geom.Identity, doc)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected image to be modified")
	}
	if obj.repainted.D == nil {
		t.Fatal("expected Repaint to be called")
	}
	out := obj.repainted.D

	r, g, b := out.RGBAt(0, 1)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel (0,1) should be redacted to black, got (%d,%d,%d)", r, g, b)
	}
	r, g, b = out.RGBAt(0, 2)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("pixel (0,2) should be untouched, got (%d,%d,%d)", r, g, b)
	}
	r, g, b = out.RGBAt(3, 3)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("pixel (3,3) should be untouched, got (%d,%d,%d)", r, g, b)
	}
}

func TestRedactImage_NoOverlapIsNoop(t *testing.T) {
	src := imaging.NewDIB(2, 2, imaging.FormatRGB24)
	obj := &fakeImageObj{m: geom.Identity, pix: imaging.Picture{D: src}}
	doc := &fakeDoc{}

	rect := geom.Rectangle{Left: 100, Right: 200, Bottom: 100, Top: 200}
	changed, err := RedactImage(obj, []geom.Rectangle{rect}, geom.Identity, doc)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("expected no change for a rectangle outside the image placement")
	}
	if obj.repainted.D != nil {
		t.Error("Repaint should not have been called")
	}
}

func TestRedactImage_IndexedPaletteAlphaGetsSoftMask(t *testing.T) {
	src := imaging.NewDIB(2, 1, imaging.FormatIndexed8)
	src.Palette = []imaging.PaletteEntry{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 64},
	}
	src.Pix[0] = 0
	src.Pix[1] = 1

	obj := &fakeImageObj{m: geom.Identity, pix: imaging.Picture{D: src}}
	doc := &fakeDoc{}
	rect := geom.Rectangle{Left: 0, Right: 0.5, Bottom: 0, Top: 1}

	changed, err := RedactImage(obj, []geom.Rectangle{rect}, geom.Identity, doc)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if len(doc.masks) != 1 {
		t.Fatalf("expected exactly one soft mask to be registered, got %d", len(doc.masks))
	}
	if obj.mask == nil {
		t.Error("expected the repainted image to reference the soft mask")
	}

	out := obj.repainted.D
	// the redacted pixel (index 0) must now be fully opaque
	if got := out.AlphaAt(0, 0); got != 0xFF {
		t.Errorf("redacted pixel alpha = %d, want 255", got)
	}
	// the untouched pixel keeps its original, non-opaque alpha
	if got := out.AlphaAt(1, 0); got != 64 {
		t.Errorf("untouched pixel alpha = %d, want 64", got)
	}
}
