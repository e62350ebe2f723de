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

package fontmetrics

import (
	"testing"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/font"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/sfnt/funit"
	"seehuhn.de/go/sfnt/glyph"
)

// fakeSimpleFont builds a three-glyph font.Font with a 1000-unit em:
// glyph 0 is ".notdef" (no code maps to it), glyph 1 is mapped to code 'A'
// with a 600-unit width and a bounding box offset from the origin, glyph 2
// is mapped to code ' ' with a 250-unit width and an empty bounding box.
func fakeSimpleFont() *font.Font {
	f := &font.Font{
		UnitsPerEm: 1000,
		GlyphExtents: []funit.Rect{
			{LLx: 0, LLy: 0, URx: 0, URy: 0},
			{LLx: 50, LLy: -10, URx: 550, URy: 700},
			{LLx: 0, LLy: 0, URx: 0, URy: 0},
		},
		Widths: []funit.Int16{0, 600, 250},
	}
	f.Enc = func(gid glyph.ID) pdf.String {
		switch gid {
		case 1:
			return pdf.String{'A'}
		case 2:
			return pdf.String{' '}
		}
		return nil
	}
	return f
}

func TestSimpleGlyphBBox(t *testing.T) {
	s := NewSimple(fakeSimpleFont())

	bbox, ok := s.GlyphBBox([]byte("A"), 0, 1)
	if !ok {
		t.Fatal("expected a bounding box for code 'A'")
	}
	want := geom.Rectangle{Left: 50, Bottom: -10, Right: 550, Top: 700}
	if bbox != want {
		t.Errorf("GlyphBBox('A') = %+v, want %+v", bbox, want)
	}

	if _, ok := s.GlyphBBox([]byte("Z"), 0, 1); ok {
		t.Error("GlyphBBox('Z') should report no glyph, 'Z' is unmapped")
	}
}

func TestSimpleGlyphBBoxScalesByUnitsPerEm(t *testing.T) {
	f := fakeSimpleFont()
	f.UnitsPerEm = 2000 // half-scale units: bbox values are halved in /1000 em

	s := NewSimple(f)
	bbox, ok := s.GlyphBBox([]byte("A"), 0, 1)
	if !ok {
		t.Fatal("expected a bounding box for code 'A'")
	}
	want := geom.Rectangle{Left: 25, Bottom: -5, Right: 275, Top: 350}
	if bbox != want {
		t.Errorf("GlyphBBox('A') with UnitsPerEm=2000 = %+v, want %+v", bbox, want)
	}
}

func TestSimpleAdvanceMth(t *testing.T) {
	s := NewSimple(fakeSimpleFont())

	if got := s.AdvanceMth([]byte("A"), 0, 1); got != 600 {
		t.Errorf("AdvanceMth('A') = %v, want 600", got)
	}
	if got := s.AdvanceMth([]byte("Z"), 0, 1); got != 0 {
		t.Errorf("AdvanceMth('Z') = %v, want 0 for an unmapped code", got)
	}
}

func TestSimpleCodeLenIsAlwaysOne(t *testing.T) {
	s := NewSimple(fakeSimpleFont())
	if got := s.CodeLen([]byte("AB"), 0); got != 1 {
		t.Errorf("CodeLen() = %d, want 1", got)
	}
	if got := s.CodeLen([]byte("AB"), 1); got != 1 {
		t.Errorf("CodeLen() = %d, want 1", got)
	}
}

func TestSimpleIsASCIISpace(t *testing.T) {
	s := NewSimple(fakeSimpleFont())

	if !s.IsASCIISpace([]byte(" "), 0, 1) {
		t.Error("IsASCIISpace(' ') should be true")
	}
	if s.IsASCIISpace([]byte("A"), 0, 1) {
		t.Error("IsASCIISpace('A') should be false")
	}
	if s.IsASCIISpace([]byte(" "), 0, 2) {
		t.Error("IsASCIISpace with n != 1 should be false")
	}
}

func TestSimpleIsASCIISpaceRemappedCode(t *testing.T) {
	f := fakeSimpleFont()
	s := NewSimple(f, 0xA0) // a font that uses 0xA0 for its space glyph

	if s.IsASCIISpace([]byte{' '}, 0, 1) {
		t.Error("plain 0x20 should no longer count as a space once spaceCodes overrides the default")
	}
	if !s.IsASCIISpace([]byte{0xA0}, 0, 1) {
		t.Error("0xA0 should count as a space once passed as a spaceCodes override")
	}
}

func TestSimpleWritingModeIsHorizontal(t *testing.T) {
	s := NewSimple(fakeSimpleFont())
	if s.WritingMode() != 0 {
		t.Errorf("WritingMode() = %d, want 0", s.WritingMode())
	}
}
