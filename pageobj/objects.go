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

package pageobj

import (
	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/redact"
)

// textObject is the mutable, in-memory form of one BT...ET-delimited run
// of glyph-showing operators that share a single font, size and starting
// text matrix.
type textObject struct {
	font       redact.Font
	fontName   pdf.Name
	fontSize   float64
	charSpace  float64
	wordSpace  float64
	horizScale float64
	tm         geom.Matrix
	items      []redact.TextItem
	dirty      bool
}

func (t *textObject) Font() redact.Font         { return t.font }
func (t *textObject) FontSize() float64         { return t.fontSize }
func (t *textObject) CharSpace() float64        { return t.charSpace }
func (t *textObject) WordSpace() float64        { return t.wordSpace }
func (t *textObject) HorizScale() float64       { return t.horizScale }
func (t *textObject) TextMatrix() geom.Matrix   { return t.tm }
func (t *textObject) SetTextMatrix(m geom.Matrix) { t.tm = m }
func (t *textObject) Items() []redact.TextItem  { return t.items }
func (t *textObject) SetItems(items []redact.TextItem) { t.items = items }
func (t *textObject) MarkDirty()                { t.dirty = true }

// imageObject is the mutable, in-memory form of one image XObject
// placement (an "Do" invocation naming an /Subtype /Image resource).
type imageObject struct {
	matrix  geom.Matrix
	resName pdf.Name
	ref     pdf.Reference
	doc     *Document
	pixels  redact.Image

	repainted bool
	newPixels redact.Image
	newMask   redact.SoftMaskRef
	hasMask   bool
	dirty     bool
	flushed   bool
}

func (im *imageObject) Matrix() geom.Matrix { return im.matrix }
func (im *imageObject) Pixels() redact.Image { return im.pixels }
func (im *imageObject) Repaint(img redact.Image, mask redact.SoftMaskRef) {
	im.repainted = true
	im.newPixels = img
	im.newMask = mask
	im.hasMask = mask != nil
}
func (im *imageObject) MarkDirty() { im.dirty = true }

// pathObject is the mutable, in-memory form of a simple rectangular path
// (one "re" followed by a fill operator), or, when isOverlay is true, a
// redaction overlay box appended by AppendPath. Non-rectangular paths
// (Bezier curves, multi-segment subpaths) are never represented here: they
// are left untouched in the holder's backing operator stream and are never
// candidates for removal, matching the conservative, fully-contained-only
// culling this redactor performs.
type pathObject struct {
	matrix    geom.Matrix
	bbox      geom.Rectangle
	paintOp   string // the original paint operator (f, S, B, ...); unused for overlays
	isOverlay bool
	r, g, b   float64
}

func (p *pathObject) Matrix() geom.Matrix      { return p.matrix }
func (p *pathObject) LocalBBox() geom.Rectangle { return p.bbox }

// formObject is the mutable, in-memory form of one form XObject placement.
// Its nested Holder is parsed lazily, the first time Content is called, so
// that a page with many form placements that never get examined (outside
// every redaction rectangle) never pays for parsing them.
type formObject struct {
	matrix  geom.Matrix
	resName pdf.Name
	ref     pdf.Reference
	doc     *Document

	// parentResources is the /Resources dictionary in force where this
	// form was invoked, used when the form itself carries none, per the
	// PDF spec's resource-inheritance rule for forms.
	parentResources *pdf.Resources

	content *holder
}

func (f *formObject) Matrix() geom.Matrix { return f.matrix }
func (f *formObject) Content() redact.Holder {
	if f.content == nil {
		h, err := f.doc.parseForm(f.ref, f.parentResources)
		if err != nil {
			// A form that cannot be parsed is treated as opaque: an empty
			// holder, so traversal simply finds nothing to redact inside
			// it rather than failing the whole page.
			h = &holder{doc: f.doc}
		}
		f.content = h
	}
	return f.content
}

// passthroughOp is one content-stream operator this redactor has no
// interest in (clipping, color, marked content, non-rectangular path
// construction, and anything else not modeled by the other object kinds).
// It matches none of Object's As* methods, so the redaction core skips it
// silently; the serializer plays it back verbatim to keep the
// regenerated stream visually identical outside the redacted regions.
type passthroughOp struct {
	op   string
	args []pdf.Object
}

// object is the closed-set Object implementation: exactly one of its
// text/image/path/form fields is non-nil, or pass is set for content this
// redactor passes through unexamined.
type object struct {
	text  *textObject
	image *imageObject
	path  *pathObject
	form  *formObject
	pass  *passthroughOp
}

func (o *object) AsText() (redact.TextObject, bool) {
	if o.text == nil {
		return nil, false
	}
	return o.text, true
}

func (o *object) AsImage() (redact.ImageObject, bool) {
	if o.image == nil {
		return nil, false
	}
	return o.image, true
}

func (o *object) AsPath() (redact.PathObject, bool) {
	if o.path == nil {
		return nil, false
	}
	return o.path, true
}

func (o *object) AsForm() (redact.FormObject, bool) {
	if o.form == nil {
		return nil, false
	}
	return o.form, true
}

// holder is an ordered, mutable collection of page objects backed by one
// content stream (a page's own content, or a form XObject's).
type holder struct {
	doc *Document

	objs []*object

	// streamRef identifies the indirect stream object this holder must be
	// serialized back into when changed; resources is the /Resources
	// dictionary in force while parsing and re-serializing it.
	streamRef pdf.Reference
	resources *pdf.Resources
}

func (h *holder) Objects() []redact.Object {
	out := make([]redact.Object, len(h.objs))
	for i, o := range h.objs {
		out[i] = o
	}
	return out
}

func (h *holder) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := h.objs[:0:0]
	for i, o := range h.objs {
		if !drop[i] {
			kept = append(kept, o)
		}
	}
	h.objs = kept
}

func (h *holder) AppendPath(bbox geom.Rectangle, m geom.Matrix, r, g, b float64) {
	h.objs = append(h.objs, &object{path: &pathObject{
		matrix: m, bbox: bbox, isOverlay: true, r: r, g: g, b: b,
	}})
}

// flushImages writes the out-of-band indirect stream rewrite for every
// image object in h that RedactImage repainted but that has not yet been
// flushed, so Regenerate never reuses stale pixel data across repeated
// calls on the same Holder (RedactTextInRects may call it once after
// redaction and again after drawing overlay boxes).
func (h *holder) flushImages() error {
	for _, o := range h.objs {
		im := o.image
		if im == nil || !im.repainted || im.flushed {
			continue
		}
		if err := h.doc.rewriteImageStream(im.ref, im.newPixels, im.newMask); err != nil {
			return err
		}
		im.flushed = true
	}
	return nil
}
