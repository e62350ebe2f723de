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
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
)

// fakeFont is a fixed-pitch, one-byte-per-code, horizontal-writing Font
// used by the tests: every code, the space character (0x20) included, has
// the same 500-unit advance; every code except the space has a 400x700
// bounding box starting at the origin, and the space has an empty box.
type fakeFont struct {
	wmode int
}

func (f *fakeFont) WritingMode() int { return f.wmode }

func (f *fakeFont) CodeLen(s []byte, pos int) int { return 1 }

func (f *fakeFont) GlyphBBox(s []byte, pos, n int) (geom.Rectangle, bool) {
	if s[pos] == ' ' {
		return geom.Rectangle{}, true
	}
	return geom.Rectangle{Left: 0, Bottom: 0, Right: 400, Top: 700}, true
}

func (f *fakeFont) AdvanceMth(s []byte, pos, n int) float64 {
	if s[pos] == ' ' {
		return 500
	}
	return 500
}

func (f *fakeFont) IsASCIISpace(s []byte, pos, n int) bool {
	return n == 1 && s[pos] == ' '
}

// fakeText implements TextObject over a plain slice of TextItem, for
// feeding to RedactTextObject directly.
type fakeText struct {
	font      Font
	fontSize  float64
	charSpace float64
	wordSpace float64
	hScale    float64
	tm        geom.Matrix
	items     []TextItem
	dirty     bool
}

func newFakeText(items []TextItem) *fakeText {
	return &fakeText{
		font:     &fakeFont{},
		fontSize: 12,
		hScale:   1,
		tm:       geom.Identity,
		items:    items,
	}
}

func (t *fakeText) Font() Font                   { return t.font }
func (t *fakeText) FontSize() float64            { return t.fontSize }
func (t *fakeText) CharSpace() float64           { return t.charSpace }
func (t *fakeText) WordSpace() float64           { return t.wordSpace }
func (t *fakeText) HorizScale() float64          { return t.hScale }
func (t *fakeText) TextMatrix() geom.Matrix      { return t.tm }
func (t *fakeText) SetTextMatrix(m geom.Matrix)  { t.tm = m }
func (t *fakeText) Items() []TextItem            { return t.items }
func (t *fakeText) SetItems(items []TextItem)    { t.items = items }
func (t *fakeText) MarkDirty()                   { t.dirty = true }

// fakeImageObj implements ImageObject over an imaging.DIB.
type fakeImageObj struct {
	m         geom.Matrix
	pix       imaging.Picture
	repainted imaging.Picture
	mask      SoftMaskRef
	dirty     bool
}

func (o *fakeImageObj) Matrix() geom.Matrix { return o.m }
func (o *fakeImageObj) Pixels() Image       { return o.pix }
func (o *fakeImageObj) Repaint(img Image, mask SoftMaskRef) {
	o.repainted = img.(imaging.Picture)
	o.mask = mask
}
func (o *fakeImageObj) MarkDirty() { o.dirty = true }

// fakeDoc implements Document, recording every soft mask it is asked to
// add.
type fakeDoc struct {
	masks []Image
}

func (d *fakeDoc) AddSoftMask(mask Image) (SoftMaskRef, error) {
	d.masks = append(d.masks, mask)
	return len(d.masks), nil
}

// fakePathObj implements PathObject.
type fakePathObj struct {
	m    geom.Matrix
	bbox geom.Rectangle
}

func (p *fakePathObj) Matrix() geom.Matrix       { return p.m }
func (p *fakePathObj) LocalBBox() geom.Rectangle { return p.bbox }

// fakeObj wraps one concrete object kind as an Object.
type fakeObj struct {
	text  TextObject
	image ImageObject
	path  PathObject
	form  FormObject
}

func (o *fakeObj) AsText() (TextObject, bool)   { return o.text, o.text != nil }
func (o *fakeObj) AsImage() (ImageObject, bool) { return o.image, o.image != nil }
func (o *fakeObj) AsPath() (PathObject, bool)   { return o.path, o.path != nil }
func (o *fakeObj) AsForm() (FormObject, bool)   { return o.form, o.form != nil }

// fakeHolder implements Holder over a plain slice.
type fakeHolder struct {
	objs     []Object
	overlays []geom.Rectangle
}

func (h *fakeHolder) Objects() []Object { return h.objs }

func (h *fakeHolder) Remove(indices []int) {
	dead := make(map[int]bool, len(indices))
	for _, i := range indices {
		dead[i] = true
	}
	out := h.objs[:0]
	for i, o := range h.objs {
		if !dead[i] {
			out = append(out, o)
		}
	}
	h.objs = out
}

func (h *fakeHolder) AppendPath(bbox geom.Rectangle, m geom.Matrix, r, g, b float64) {
	h.overlays = append(h.overlays, m.TransformRect(bbox))
	h.objs = append(h.objs, &fakeObj{path: &fakePathObj{m: m, bbox: bbox}})
}

// fakeForm implements FormObject, nesting a fakeHolder.
type fakeForm struct {
	m       geom.Matrix
	content *fakeHolder
}

func (f *fakeForm) Matrix() geom.Matrix { return f.m }
func (f *fakeForm) Content() Holder     { return f.content }

// fakePage implements Page, counting how many times each holder was
// regenerated.
type fakePage struct {
	content      *fakeHolder
	regenerated  map[Holder]int
}

func newFakePage(h *fakeHolder) *fakePage {
	return &fakePage{content: h, regenerated: make(map[Holder]int)}
}

func (p *fakePage) Content() Holder { return p.content }

func (p *fakePage) Regenerate(h Holder) error {
	p.regenerated[h]++
	return nil
}
