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

// Package pageobj adapts an in-memory PDF file (opened through the
// teacher's own pdf.Reader/pdf.Writer object model) to the collaborator
// interfaces redact operates on: Document, Page, Holder, TextObject,
// ImageObject, PathObject, FormObject.
package pageobj

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/redact"
)

// Document wraps an open PDF file for both reading (font and image
// resource resolution) and writing (allocating new indirect objects for
// soft masks).
type Document struct {
	r pdf.Getter
	w pdf.Putter

	fontCache map[pdf.Reference]redact.Font
}

// NewDocument wraps w (and, transitively through w.GetMeta(), the
// underlying file r was opened from) for use as a redact.Document.
// r and w must refer to the same underlying file.
func NewDocument(r pdf.Getter, w pdf.Putter) *Document {
	return &Document{
		r:         r,
		w:         w,
		fontCache: make(map[pdf.Reference]redact.Font),
	}
}

// AddSoftMask writes mask as a new, indirect DeviceGray image XObject and
// returns a reference to it, suitable for use as an SMask entry on the
// image it belongs to.
func (d *Document) AddSoftMask(mask redact.Image) (redact.SoftMaskRef, error) {
	w, h := mask.Width(), mask.Height()

	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(w),
		"Height":           pdf.Integer(h),
		"BitsPerComponent": pdf.Integer(8),
		"ColorSpace":       pdf.Name("DeviceGray"),
	}

	ref := d.w.Alloc()
	stm, err := d.w.OpenStream(ref, dict)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[x] = mask.Alpha(x, y)
		}
		if _, err := stm.Write(buf); err != nil {
			stm.Close()
			return nil, err
		}
	}
	if err := stm.Close(); err != nil {
		return nil, err
	}

	return ref, nil
}

// parseForm decodes and parses the content stream of the form XObject at
// ref, resolving its own /Resources or, when it carries none, falling
// back to parentResources (the resources in force where the form was
// invoked), per the PDF spec's resource-inheritance rule for forms.
func (d *Document) parseForm(ref pdf.Reference, parentResources *pdf.Resources) (*holder, error) {
	stm, err := pdf.GetStream(d.r, ref)
	if err != nil {
		return nil, err
	}
	if stm == nil {
		return nil, fmt.Errorf("form XObject %s: not a stream", ref)
	}

	resources := parentResources
	if dict, err := pdf.GetDict(d.r, stm.Dict["Resources"]); err == nil && dict != nil {
		var r pdf.Resources
		if err := pdf.DecodeDict(d.r, &r, dict); err == nil {
			resources = &r
		}
	}

	body, err := pdf.DecodeStream(d.r, stm, 0)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	h, err := d.parseContent(data, resources)
	if err != nil {
		return nil, err
	}
	h.streamRef = ref
	return h, nil
}

// rewriteImageStream overwrites the image XObject stream at ref with
// img's raw RGB samples (8 bits per component, no filter), replacing
// whatever encoding the original stream used, and points its /SMask
// entry at mask when repainting introduced one.
func (d *Document) rewriteImageStream(ref pdf.Reference, img redact.Image, mask redact.SoftMaskRef) error {
	w, h := img.Width(), img.Height()

	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(w),
		"Height":           pdf.Integer(h),
		"BitsPerComponent": pdf.Integer(8),
		"ColorSpace":       pdf.Name("DeviceRGB"),
	}
	if mask != nil {
		if maskRef, ok := mask.(pdf.Reference); ok {
			dict["SMask"] = maskRef
		}
	}

	stm, err := d.w.OpenStream(ref, dict)
	if err != nil {
		return err
	}
	row := make([]byte, w*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := img.RGBAt(x, y)
			off := x * 3
			row[off], row[off+1], row[off+2] = r, g, b
		}
		if _, err := stm.Write(row); err != nil {
			stm.Close()
			return err
		}
	}
	return stm.Close()
}
