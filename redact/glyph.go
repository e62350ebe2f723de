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
	"math"

	"seehuhn.de/go/pdfredact/geom"
)

// kerningDeadband is the threshold, in thousandths of an em, below which a
// synthesized or accumulated kerning value is treated as noise and
// suppressed rather than emitted as a TJ adjustment.
const kerningDeadband = 0.25

// maxFormDepth bounds recursion into nested form XObjects. Well-formed
// PDF files never cycle through forms, but this is a defensive bound
// against malformed or adversarial input; it is not a behavior change for
// any file redactHolder would otherwise terminate on.
const maxFormDepth = 64

// roundMth rounds v to the nearest integer, ties away from zero, matching
// the original engine's RoundThousandths.
func roundMth(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return math.Ceil(v - 0.5)
}

// deadbandRound rounds v and collapses anything within kerningDeadband of
// zero down to exactly zero, so float noise never produces a spurious
// zero-width TJ adjustment.
func deadbandRound(v float64) float64 {
	r := roundMth(v)
	if math.Abs(r) < kerningDeadband {
		return 0
	}
	return r
}

// glyphOrigin is a single code's position in text space, along the
// writing axis only: (x, 0) for horizontal fonts, (0, y) for vertical.
type glyphOrigin struct {
	x, y float64
}

func (o glyphOrigin) point() (float64, float64) { return o.x, o.y }

// glyphBBoxPage returns the bounding box, in page user space, of the
// glyph at s[pos:pos+n], given its text-space origin, the font size,
// the text matrix in effect, and the matrix that maps this text object's
// unnested user space into page space (identity unless nested in a form).
func glyphBBoxPage(f Font, s []byte, pos, n int, origin glyphOrigin, fontSize float64, tm, toPage geom.Matrix) (geom.Rectangle, bool) {
	bbox, ok := f.GlyphBBox(s, pos, n)
	if !ok || bbox.IsZero() {
		return geom.Rectangle{}, false
	}

	scale := fontSize / 1000
	textSpace := geom.Rectangle{
		Left:   bbox.Left*scale + origin.x,
		Right:  bbox.Right*scale + origin.x,
		Bottom: bbox.Bottom*scale + origin.y,
		Top:    bbox.Top*scale + origin.y,
	}

	pageSpace := toPage.Mul(tm).TransformRect(textSpace)
	return pageSpace, true
}

// advanceMth returns the total nominal advance of the code at s[pos:pos+n],
// in thousandths of an em, including character and (for ASCII space, in
// horizontal writing mode) word spacing, matching AdvanceThousandths in
// the original engine.
func advanceMth(to TextObject, s []byte, pos, n int) float64 {
	f := to.Font()
	adv := f.AdvanceMth(s, pos, n)

	fontSize := to.FontSize()
	if fontSize == 0 {
		return adv
	}

	if f.WritingMode() == 0 && f.IsASCIISpace(s, pos, n) {
		adv += to.WordSpace() * 1000 / fontSize
	}
	adv += to.CharSpace() * 1000 / fontSize
	return adv
}

// positionStep converts an advance in thousandths of an em into a
// displacement along the writing axis, in unscaled text space units,
// applying horizontal scaling for horizontal writing mode only.
func positionStep(to TextObject, adv float64) float64 {
	step := adv * to.FontSize() / 1000
	if to.Font().WritingMode() == 0 {
		step *= to.HorizScale()
	}
	return step
}

// adjustmentStep is the position displacement a TJ-style adjustment value
// produces: a positive value shifts the next glyph to the left (or down,
// in vertical writing), per the PDF TJ operator's sign convention.
func adjustmentStep(to TextObject, value float64) float64 {
	return -positionStep(to, value)
}

func assert(cond bool, msg string) {
	if !cond {
		panic("redact: " + msg)
	}
}
