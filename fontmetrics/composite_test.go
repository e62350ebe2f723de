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

	"seehuhn.de/go/pdfredact/geom"
)

// fakeCMapInfo describes a 2-byte code space split into a single-code entry
// (0x0000 -> CID 1) and a 16-entry range (0x0010-0x001F -> CIDs 10-25),
// matching the shape of a typical Identity-style CMap.
func fakeCMapInfo() *CompositeInfo {
	return &CompositeInfo{
		CodeSpace: []CodeRange{
			{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}},
		},
		Singles: []CIDSingle{
			{Code: []byte{0x00, 0x00}, Value: 1},
		},
		Ranges: []CIDRange{
			{First: []byte{0x00, 0x10}, Last: []byte{0x00, 0x1F}, Value: 10},
		},
	}
}

func fakeComposite() *Composite {
	widths := map[CID]float64{
		1:  0, // CID 1 is notdef-like, zero width
		10: 500,
		15: 750,
	}
	extents := map[CID]geom.Rectangle{
		10: {Left: 0, Bottom: 0, Right: 500, Top: 700},
		15: {Left: 20, Bottom: -20, Right: 730, Top: 710},
	}
	return NewComposite(fakeCMapInfo(), widths, extents, 1000)
}

func TestCompositeCodeLen(t *testing.T) {
	c := fakeComposite()
	if got := c.CodeLen([]byte{0x00, 0x10, 0xff}, 0); got != 2 {
		t.Errorf("CodeLen() = %d, want 2", got)
	}
}

func TestCompositeCodeLenFallsBackToOne(t *testing.T) {
	c := fakeComposite()
	c.info.CodeSpace = nil // no range matches any code
	if got := c.CodeLen([]byte{0x00, 0x10}, 0); got != 1 {
		t.Errorf("CodeLen() = %d, want 1 for a code outside every range", got)
	}
}

func TestCompositeGlyphBBoxSingle(t *testing.T) {
	c := fakeComposite()
	// code 0x0000 maps to CID 1, which has no entry in extents
	if _, ok := c.GlyphBBox([]byte{0x00, 0x00}, 0, 2); ok {
		t.Error("GlyphBBox for CID 1 should report no glyph, it is absent from extents")
	}
}

func TestCompositeGlyphBBoxRange(t *testing.T) {
	c := fakeComposite()
	// code 0x0015 is index 5 into the range, so CID 10+5 = 15
	bbox, ok := c.GlyphBBox([]byte{0x00, 0x15}, 0, 2)
	if !ok {
		t.Fatal("expected a bounding box for code 0x0015")
	}
	want := geom.Rectangle{Left: 20, Bottom: -20, Right: 730, Top: 710}
	if bbox != want {
		t.Errorf("GlyphBBox(0x0015) = %+v, want %+v", bbox, want)
	}
}

func TestCompositeAdvanceMth(t *testing.T) {
	c := fakeComposite()

	if got := c.AdvanceMth([]byte{0x00, 0x10}, 0, 2); got != 500 {
		t.Errorf("AdvanceMth(0x0010) = %v, want 500", got)
	}

	// code 0x00FF isn't covered by either the single entry or the range,
	// so lookupCID fails and the default width applies
	if got := c.AdvanceMth([]byte{0x00, 0xFF}, 0, 2); got != 1000 {
		t.Errorf("AdvanceMth(0x00FF) = %v, want the default width 1000", got)
	}
}

func TestCompositeIsASCIISpaceIsAlwaysFalse(t *testing.T) {
	c := fakeComposite()
	if c.IsASCIISpace([]byte{0x00, 0x20}, 0, 2) {
		t.Error("IsASCIISpace must always be false for composite fonts")
	}
}

func TestCompositeWritingMode(t *testing.T) {
	info := fakeCMapInfo()
	info.Vertical = true
	c := NewComposite(info, nil, nil, 0)
	if got := c.WritingMode(); got != 1 {
		t.Errorf("WritingMode() = %d, want 1", got)
	}
}
