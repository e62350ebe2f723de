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
	"fmt"
	"io"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/pagetree"
	"seehuhn.de/go/pdfredact/redact"
)

// Page adapts one page dictionary of an open PDF file to redact.Page. Its
// own content is parsed lazily and cached, same as a formObject's; repeat
// calls to Content (RedactTextInRects calls it both before and after
// redacting, and again before drawing overlay boxes) always return the
// same Holder.
type Page struct {
	doc     *Document
	ref     pdf.Reference
	dict    pdf.Dict
	content *holder
}

// NewPage loads the pageNo'th page of doc's file (0-based, matching
// pagetree.GetPage) and wraps it for use as a redact.Page. /Resources,
// /MediaBox, /CropBox and /Rotate are resolved with page-tree inheritance
// applied, per pagetree.GetPage.
func NewPage(doc *Document, pageNo int) (*Page, error) {
	ref, dict, err := pagetree.GetPage(doc.r, pageNo)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, fmt.Errorf("page %d: missing dictionary", pageNo)
	}
	return &Page{doc: doc, ref: ref, dict: dict}, nil
}

func (p *Page) resources() (*pdf.Resources, error) {
	resDict, err := pdf.GetDict(p.doc.r, p.dict["Resources"])
	if err != nil {
		return nil, err
	}
	if resDict == nil {
		return &pdf.Resources{}, nil
	}
	var r pdf.Resources
	if err := pdf.DecodeDict(p.doc.r, &r, resDict); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Page) Content() redact.Holder {
	if p.content != nil {
		return p.content
	}

	resources, err := p.resources()
	if err != nil {
		p.content = &holder{doc: p.doc}
		return p.content
	}

	stm, err := pagetree.ContentStream(p.doc.r, p.dict)
	if err != nil {
		p.content = &holder{doc: p.doc, resources: resources}
		return p.content
	}
	data, err := io.ReadAll(stm)
	if err != nil {
		p.content = &holder{doc: p.doc, resources: resources}
		return p.content
	}

	h, err := p.doc.parseContent(data, resources)
	if err != nil {
		h = &holder{doc: p.doc, resources: resources}
	}
	p.content = h
	return p.content
}

// Regenerate rewrites the content stream belonging to h. When h is the
// page's own Holder, the freshly allocated stream reference replaces the
// page dictionary's /Contents entry (collapsing a multi-stream /Contents
// array down to the single stream this package always writes); when h is
// a form XObject's Holder, only the form's own stream is rewritten, since
// forms never own a page dictionary.
func (p *Page) Regenerate(h redact.Holder) error {
	hh, ok := h.(*holder)
	if !ok {
		return fmt.Errorf("pageobj: Regenerate called with a foreign Holder type %T", h)
	}

	if err := hh.flushImages(); err != nil {
		return err
	}

	data, err := hh.serialize()
	if err != nil {
		return err
	}

	ref := hh.streamRef
	isPage := hh == p.content
	if ref == (pdf.Reference(0)) || isPage {
		ref = p.doc.w.Alloc()
		hh.streamRef = ref
	}

	stm, err := p.doc.w.OpenStream(ref, pdf.Dict{}, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	if _, err := stm.Write(data); err != nil {
		stm.Close()
		return err
	}
	if err := stm.Close(); err != nil {
		return err
	}

	if isPage {
		p.dict["Contents"] = ref
		if err := p.doc.w.Put(p.ref, p.dict); err != nil {
			return err
		}
	}

	return nil
}
