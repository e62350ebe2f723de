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

import "seehuhn.de/go/pdfredact/geom"

// TextOutcome reports what RedactTextObject did to a text object.
type TextOutcome int

const (
	// TextUnchanged means no glyph intersected any rectangle; the object
	// was not modified.
	TextUnchanged TextOutcome = iota

	// TextModified means at least one glyph was removed, but at least one
	// glyph survives; Items and the text matrix were rewritten in place.
	TextModified

	// TextRemovedAll means every glyph was removed; the caller should
	// delete the object from its holder entirely.
	TextRemovedAll
)

// textRunState accumulates the kept-run bookkeeping between one appended
// glyph and the next, mirroring RedactionState in the original engine.
type textRunState struct {
	kerningAccumulator  float64
	hasExplicitKerning  bool
	haveKeptGlyph       bool
	prevOrigin          float64 // along the writing axis, relative to the (possibly rewritten) tm
	prevAdvanceMth      float64
	out                 []TextItem
	curRun              []byte
}

func (s *textRunState) flush(kerningMth float64) {
	k := deadbandRound(kerningMth)
	if k == 0 {
		return
	}
	if len(s.curRun) > 0 {
		s.out = append(s.out, TextItem{Glyphs: s.curRun})
		s.curRun = nil
	}
	s.out = append(s.out, TextItem{IsAdjustment: true, Adjustment: k})
}

func (s *textRunState) appendGlyph(code []byte) {
	s.curRun = append(s.curRun, code...)
}

func (s *textRunState) resetBetweenGlyphs() {
	s.kerningAccumulator = 0
	s.hasExplicitKerning = false
}

func (s *textRunState) finish() []TextItem {
	if len(s.curRun) > 0 {
		s.out = append(s.out, TextItem{Glyphs: s.curRun})
		s.curRun = nil
	}
	// Drop a dangling trailing adjustment: the original never emits a TJ
	// array ending in a bare number with nothing shown after it.
	if n := len(s.out); n > 0 && s.out[n-1].IsAdjustment {
		s.out = s.out[:n-1]
	}
	return s.out
}

// RedactTextObject removes every glyph of to whose page-space bounding box
// strictly intersects any rectangle in pageRects, reconstructing the kept
// glyphs' runs and kerning so that every surviving glyph keeps its exact
// page-space position. toPage maps this object's (already-nested) user
// space into page space; pass geom.Identity for a text object that is a
// direct child of the page.
func RedactTextObject(to TextObject, pageRects []geom.Rectangle, toPage geom.Matrix) TextOutcome {
	font := to.Font()
	fontSize := to.FontSize()
	tm := to.TextMatrix()
	vertical := font.WritingMode() == 1

	var st textRunState
	var pos float64 // running coordinate along the writing axis, relative to the *original* tm
	var baseline float64
	anyKept := false
	anyRemoved := false

	for _, item := range to.Items() {
		if item.IsAdjustment {
			step := adjustmentStep(to, item.Adjustment)
			pos += step
			st.kerningAccumulator += item.Adjustment
			st.hasExplicitKerning = true
			continue
		}

		s := item.Glyphs
		for i := 0; i < len(s); {
			n := font.CodeLen(s, i)
			if n <= 0 {
				n = 1
			}
			if i+n > len(s) {
				n = len(s) - i
			}

			origin := glyphOrigin{}
			rel := pos - baseline
			if vertical {
				origin.y = rel
			} else {
				origin.x = rel
			}

			bbox, visible := glyphBBoxPage(font, s, i, n, origin, fontSize, tm, toPage)
			adv := advanceMth(to, s, i, n)

			hit := visible && bbox.IntersectsAny(pageRects)
			if hit {
				st.kerningAccumulator -= adv
				anyRemoved = true
			} else {
				if !st.haveKeptGlyph {
					// First kept glyph: absorb its text-space offset into
					// the text matrix, since a TJ array cannot start with
					// a bare kerning number.
					if vertical {
						tm[4] += origin.y * tm[2]
						tm[5] += origin.y * tm[3]
					} else {
						tm[4] += origin.x * tm[0]
						tm[5] += origin.x * tm[1]
					}
					baseline = pos
					st.kerningAccumulator = 0
					st.hasExplicitKerning = false
				} else {
					var kerningMth float64
					if st.hasExplicitKerning {
						kerningMth = st.kerningAccumulator
					} else {
						deltaMth := (pos - st.prevOrigin) * 1000 / fontSize
						kerningMth = st.prevAdvanceMth - deltaMth
					}
					st.flush(kerningMth)
				}

				st.appendGlyph(s[i : i+n])
				st.haveKeptGlyph = true
				st.prevOrigin = pos
				st.prevAdvanceMth = adv
				st.resetBetweenGlyphs()
				anyKept = true
			}

			pos += positionStep(to, adv)
			i += n
		}
	}

	if !anyRemoved {
		return TextUnchanged
	}
	if !anyKept {
		return TextRemovedAll
	}

	to.SetItems(st.finish())
	to.SetTextMatrix(tm)
	to.MarkDirty()
	return TextModified
}
