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

// Package fontmetrics adapts the glyph bounding boxes, advance widths and
// writing mode of a PDF simple or composite font to the redact.Font
// interface. It only ever needs to answer "how wide is this code, and what
// does it cover on the page" -- everything about glyph outlines, subsetting
// and embedding stays in the font package, untouched.
package fontmetrics

import (
	"seehuhn.de/go/pdfredact/font"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/sfnt/glyph"
)

// Simple adapts a simple (single-byte-code) font's glyph metrics, as
// collected in a font.Font, to the redact.Font interface. Character codes
// are one byte each; CodeToGID maps a byte code directly to the glyph
// whose metrics apply, mirroring how font.Font.Enc maps glyph.ID to a
// one-byte pdf.String in the other direction.
type Simple struct {
	f         *font.Font
	codeToGID [256]int32 // -1 where no glyph is mapped
	space     [256]bool
}

// NewSimple builds a Simple adapter from f, a simple PDF font. Enc(gid)
// is called once per glyph to recover the inverse (code -> glyph) mapping
// that redact needs for glyph lookup by code; spaceCodes marks which
// one-byte codes a content stream author can use to mean an ASCII space
// (ordinarily just {0x20}, but simple fonts may remap the glyph at a
// different code).
func NewSimple(f *font.Font, spaceCodes ...byte) *Simple {
	s := &Simple{f: f}
	for i := range s.codeToGID {
		s.codeToGID[i] = -1
	}
	if f.Enc != nil {
		for gid := 0; gid < f.NumGlyphs(); gid++ {
			code := f.Enc(glyph.ID(gid))
			if len(code) == 1 {
				s.codeToGID[code[0]] = int32(gid)
			}
		}
	}
	if len(spaceCodes) == 0 {
		spaceCodes = []byte{' '}
	}
	for _, c := range spaceCodes {
		s.space[c] = true
	}
	return s
}

func (s *Simple) WritingMode() int { return 0 }

func (s *Simple) CodeLen(code []byte, pos int) int { return 1 }

func (s *Simple) GlyphBBox(code []byte, pos, n int) (geom.Rectangle, bool) {
	gid := s.codeToGID[code[pos]]
	if gid < 0 {
		return geom.Rectangle{}, false
	}
	if int(gid) >= len(s.f.GlyphExtents) {
		return geom.Rectangle{}, false
	}
	r := s.f.GlyphExtents[gid]
	scale := 1000.0 / float64(s.f.UnitsPerEm)
	return geom.Rectangle{
		Left:   float64(r.LLx) * scale,
		Bottom: float64(r.LLy) * scale,
		Right:  float64(r.URx) * scale,
		Top:    float64(r.URy) * scale,
	}, true
}

func (s *Simple) AdvanceMth(code []byte, pos, n int) float64 {
	gid := s.codeToGID[code[pos]]
	if gid < 0 || int(gid) >= len(s.f.Widths) {
		return 0
	}
	return float64(s.f.Widths[gid]) * 1000.0 / float64(s.f.UnitsPerEm)
}

func (s *Simple) IsASCIISpace(code []byte, pos, n int) bool {
	return n == 1 && s.space[code[pos]]
}
