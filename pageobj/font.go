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
	"errors"
	"math"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/font"
	"seehuhn.de/go/pdfredact/font/widths"
	"seehuhn.de/go/pdfredact/fontmetrics"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/redact"
	"seehuhn.de/go/pdfredact/sfnt/funit"
	"seehuhn.de/go/sfnt/glyph"
)

// resolveFont builds a redact.Font for the font resource referenced by ref,
// reading only what a redaction pass needs (widths, and a conservative
// per-glyph bounding box) rather than the font's embedded outline program.
// Results are cached per font reference on the document, since the same
// font resource is typically shared by every text object on a page.
func (d *Document) resolveFont(ref pdf.Reference) (redact.Font, error) {
	if f, ok := d.fontCache[ref]; ok {
		return f, nil
	}

	dicts, err := font.ExtractDicts(d.r, ref)
	if err != nil {
		return nil, err
	}

	var f redact.Font
	if dicts.Type.IsComposite() {
		f, err = d.resolveCompositeFont(dicts)
	} else {
		f, err = d.resolveSimpleFont(dicts)
	}
	if err != nil {
		return nil, err
	}

	d.fontCache[ref] = f
	return f, nil
}

// resolveSimpleFont builds a fontmetrics.Simple from a simple font's
// resource dictionary. Glyph index and character code are treated as the
// same value (gid = code): without parsing the embedded outline program,
// there is no finer-grained glyph identity to recover, and content
// streams only ever address simple-font glyphs by code anyway.
//
// Every visible code shares the FontDescriptor's overall FontBBox as its
// bounding box, rather than a true per-glyph box. This is conservative in
// the direction redaction needs: using the whole font's bounding box can
// only make a glyph's hit-test region larger than its real ink, so a
// redaction rectangle that just grazes a glyph's true outline is more
// likely, never less likely, to be caught.
func (d *Document) resolveSimpleFont(dicts *font.Dicts) (*fontmetrics.Simple, error) {
	ww, err := widths.ExtractSimple(d.r, dicts)
	if err != nil {
		return nil, err
	}

	var bbox funit.Rect
	if dicts.FontDescriptor != nil && dicts.FontDescriptor.FontBBox != nil {
		b := dicts.FontDescriptor.FontBBox
		bbox = funit.Rect{
			LLx: funit.Int16(b.LLx), LLy: funit.Int16(b.LLy),
			URx: funit.Int16(b.URx), URy: funit.Int16(b.URy),
		}
	}

	extents := make([]funit.Rect, 256)
	widthsInt := make([]funit.Int16, 256)
	for code := 0; code < 256; code++ {
		widthsInt[code] = funit.Int16(ww[code])
		if ww[code] != 0 {
			extents[code] = bbox
		}
	}

	legacy := &font.Font{
		UnitsPerEm:   1000,
		GlyphExtents: extents,
		Widths:       widthsInt,
		Enc: func(gid glyph.ID) pdf.String {
			return pdf.String{byte(gid)}
		},
	}
	return fontmetrics.NewSimple(legacy, ' '), nil
}

// resolveCompositeFont builds a fontmetrics.Composite from a Type 0 font's
// resource dictionary. The CMap named by /Encoding and the /W array of the
// descendant CIDFont are each decoded locally (see cmap.go and
// decodeCompositeWidths below) rather than through font/cmap, whose CMap
// and CID types come from two incompatible generations of that package and
// cannot be relied on here.
//
// As documented on fontmetrics.Composite, no per-CID bounding box is
// available without parsing the embedded font program; every CID present
// in the width map is given the descriptor's FontBBox as a conservative
// stand-in, matching resolveSimpleFont's approximation.
func (d *Document) resolveCompositeFont(dicts *font.Dicts) (*fontmetrics.Composite, error) {
	info, err := resolveCMap(d.r, dicts.FontDict["Encoding"])
	if err != nil {
		return nil, err
	}

	cidFontRef := dicts.CIDFontDict
	ww, dw, err := decodeCompositeWidths(d.r, cidFontRef["W"], cidFontRef["DW"])
	if err != nil {
		return nil, err
	}
	if dw == 0 {
		dw = 1000
	}

	var box geom.Rectangle
	if dicts.FontDescriptor != nil && dicts.FontDescriptor.FontBBox != nil {
		b := dicts.FontDescriptor.FontBBox
		box = geom.Rectangle{Left: b.LLx, Bottom: b.LLy, Right: b.URx, Top: b.URy}
	}
	extents := make(map[fontmetrics.CID]geom.Rectangle, len(ww))
	for cid := range ww {
		extents[cid] = box
	}

	return fontmetrics.NewComposite(info, ww, extents, dw), nil
}

// decodeCompositeWidths decodes the /W and /DW entries of a CIDFont
// dictionary (PDF 32000-1:2008, 9.7.4.3), returning a sparse map of the
// widths that differ from the default width dw.
func decodeCompositeWidths(r pdf.Getter, wObj, dwObj pdf.Object) (map[fontmetrics.CID]float64, float64, error) {
	w, err := pdf.GetArray(r, wObj)
	if err != nil {
		return nil, 0, err
	}
	dw, _ := pdf.GetNumber(r, dwObj)

	res := make(map[fontmetrics.CID]float64)
	for len(w) > 1 {
		c0, err := pdf.GetInteger(r, w[0])
		if err != nil {
			return nil, 0, err
		}
		obj1, err := pdf.Resolve(r, w[1])
		if err != nil {
			return nil, 0, err
		}
		if c1, ok := obj1.(pdf.Integer); ok {
			// [cFirst cLast w] form: a uniform width over a range of CIDs.
			if len(w) < 3 || c0 < 0 || c1 < c0 || c1-c0 > 65536 {
				return nil, 0, &pdf.MalformedFileError{
					Err: errors.New("invalid W entry in CIDFont dictionary"),
				}
			}
			wi, err := pdf.GetNumber(r, w[2])
			if err != nil {
				return nil, 0, err
			}
			if math.Abs(float64(wi)-float64(dw)) > 1e-6 {
				for c := c0; c <= c1; c++ {
					res[fontmetrics.CID(c)] = float64(wi)
				}
			}
			w = w[3:]
		} else {
			// [c [w1 w2 ...]] form: one width per consecutive CID.
			wi, err := pdf.GetArray(r, w[1])
			if err != nil {
				return nil, 0, err
			}
			for _, wiObj := range wi {
				wi, err := pdf.GetNumber(r, wiObj)
				if err != nil {
					return nil, 0, err
				}
				if math.Abs(float64(wi)-float64(dw)) > 1e-6 {
					res[fontmetrics.CID(c0)] = float64(wi)
				}
				c0++
			}
			w = w[2:]
		}
	}

	return res, float64(dw), nil
}
