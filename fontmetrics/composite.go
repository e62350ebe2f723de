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
	"bytes"

	"seehuhn.de/go/pdfredact/geom"
)

// CID is a character identifier, as used by a CIDFont's CMap to look up
// glyph metrics. CID 0 conventionally denotes a missing glyph.
type CID uint32

// CodeRange is one entry of a CMap's code space ranges: a run of
// same-length byte codes, as read from the CMap's codespacerange section.
// Low and High must have equal, non-zero length.
type CodeRange struct {
	Low, High []byte
}

// CIDSingle records that one exact byte code maps to the given CID.
type CIDSingle struct {
	Code  []byte
	Value CID
}

// CIDRange records that a contiguous run of byte codes, from First to
// Last inclusive, maps to consecutive CIDs starting at Value.
type CIDRange struct {
	First, Last []byte
	Value       CID
}

// CompositeInfo describes the parts of a Type 0 font's CMap that matter
// for metrics lookup: how to split a content-stream string into codes, and
// how each code maps to a CID. It carries none of the machinery needed to
// write or re-embed a CMap.
type CompositeInfo struct {
	Vertical  bool
	CodeSpace []CodeRange
	Singles   []CIDSingle
	Ranges    []CIDRange
}

// Composite adapts a Type 0 (CID-keyed) composite font to the redact.Font
// interface. Unlike a simple font, a code can be one to four bytes long,
// decided by the CMap's code space ranges, and maps to a CID rather than
// directly to a glyph index.
//
// Glyph bounding boxes are not available from the CIDFont dictionary
// itself (unlike widths, which PDF stores per CID): Extents must be
// supplied by the caller, typically read from the embedded font program.
// A CID missing from Extents is treated as invisible, matching the
// conservative behavior of a simple font whose glyph program lacks an
// outline for some code.
type Composite struct {
	info    *CompositeInfo
	widths  map[CID]float64
	extents map[CID]geom.Rectangle
	dw      float64
}

// NewComposite builds a Composite adapter. widths and extents are both
// keyed by CID and given in thousandths of an em; defaultWidth applies to
// any CID absent from widths, matching the CIDFont dictionary's /DW entry.
func NewComposite(info *CompositeInfo, widths map[CID]float64, extents map[CID]geom.Rectangle, defaultWidth float64) *Composite {
	return &Composite{
		info:    info,
		widths:  widths,
		extents: extents,
		dw:      defaultWidth,
	}
}

func (c *Composite) WritingMode() int {
	if c.info.Vertical {
		return 1
	}
	return 0
}

// CodeLen matches code[pos:] against the CMap's code space ranges, in
// order, and returns the byte length of the first range whose byte-wise
// bounds contain the code. A code matching no range still consumes one
// byte, so a malformed content stream cannot stall the scanner.
func (c *Composite) CodeLen(code []byte, pos int) int {
	s := code[pos:]
	for _, r := range c.info.CodeSpace {
		n := len(r.Low)
		if n == 0 || len(s) < n {
			continue
		}
		key := s[:n]
		if bytesWithin(key, r.Low, r.High) {
			return n
		}
	}
	return 1
}

func (c *Composite) lookupCID(code []byte, pos, n int) (CID, bool) {
	key := code[pos : pos+n]
	for _, single := range c.info.Singles {
		if bytes.Equal(single.Code, key) {
			return single.Value, true
		}
	}
	for _, r := range c.info.Ranges {
		if len(r.First) == n && bytes.Compare(key, r.First) >= 0 && bytes.Compare(key, r.Last) <= 0 {
			return r.Value + CID(beValue(key)-beValue(r.First)), true
		}
	}
	return 0, false
}

func (c *Composite) GlyphBBox(code []byte, pos, n int) (geom.Rectangle, bool) {
	cid, ok := c.lookupCID(code, pos, n)
	if !ok {
		return geom.Rectangle{}, false
	}
	r, ok := c.extents[cid]
	return r, ok
}

func (c *Composite) AdvanceMth(code []byte, pos, n int) float64 {
	cid, ok := c.lookupCID(code, pos, n)
	if !ok {
		return c.dw
	}
	if w, ok := c.widths[cid]; ok {
		return w
	}
	return c.dw
}

// IsASCIISpace is always false for composite fonts: per PDF 32000-1:2008
// 9.3.3, the word-spacing parameter only ever applies to the single-byte
// code 32 in a simple font, never to any code in a composite font.
func (c *Composite) IsASCIISpace(code []byte, pos, n int) bool { return false }

// bytesWithin reports whether key falls between low and high, byte by byte.
func bytesWithin(key, low, high []byte) bool {
	for i, b := range key {
		if b < low[i] || b > high[i] {
			return false
		}
	}
	return true
}

// beValue interprets b as a big-endian unsigned integer.
func beValue(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
