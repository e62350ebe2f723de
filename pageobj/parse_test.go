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
	"io"
	"strings"
	"testing"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/geom"
)

// newTestPage builds a one-page in-memory document whose content stream is
// content, and returns the Document/Page pair.
func newTestPage(t *testing.T, content string) (*Document, *Page) {
	t.Helper()

	data := pdf.NewData(pdf.V1_7)

	pageRef := data.Alloc()
	contentRef := data.Alloc()

	pagesRef := data.Alloc()
	pagesDict := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
	}
	if err := data.Put(pagesRef, pagesDict); err != nil {
		t.Fatalf("Put(pages): %v", err)
	}

	pageDict := pdf.Dict{
		"Type":     pdf.Name("Page"),
		"Parent":   pagesRef,
		"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(612), pdf.Integer(792)},
		"Contents": contentRef,
	}
	if err := data.Put(pageRef, pageDict); err != nil {
		t.Fatalf("Put(page): %v", err)
	}

	stm, err := data.OpenStream(contentRef, pdf.Dict{})
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	if _, err := io.WriteString(stm, content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := stm.Close(); err != nil {
		t.Fatalf("close content stream: %v", err)
	}

	data.GetMeta().Catalog.Pages = pagesRef

	doc := NewDocument(data, data)
	page, err := NewPage(doc, 0)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return doc, page
}

func TestParseTextAndPath(t *testing.T) {
	const content = `
q
1 0 0 1 0 0 cm
BT
/F1 12 Tf
72 700 Td
(Hello) Tj
ET
Q
1 0 0 rg
10 10 100 50 re
f
`
	_, page := newTestPage(t, content)

	h := page.Content().(*holder)

	var texts, paths int
	for _, o := range h.objs {
		if o.text != nil {
			texts++
			items := o.text.Items()
			if len(items) != 1 {
				t.Fatalf("text object: got %d items, want 1", len(items))
			}
			if string(items[0].Glyphs) != "Hello" {
				t.Errorf("text object: got glyphs %q, want %q", items[0].Glyphs, "Hello")
			}
		}
		if o.path != nil {
			paths++
		}
	}
	if texts != 1 {
		t.Errorf("got %d text objects, want 1", texts)
	}
	if paths != 1 {
		t.Errorf("got %d path objects, want 1", paths)
	}
}

func TestParseRectPathBBox(t *testing.T) {
	const content = "10 20 30 40 re\nf\n"
	_, page := newTestPage(t, content)

	h := page.Content().(*holder)
	if len(h.objs) != 1 || h.objs[0].path == nil {
		t.Fatalf("expected exactly one path object, got %+v", h.objs)
	}
	bbox := h.objs[0].path.bbox
	want := geom.Rectangle{Left: 10, Bottom: 20, Right: 40, Top: 60}
	if bbox != want {
		t.Errorf("got bbox %+v, want %+v", bbox, want)
	}
}

func TestNonRectanglePathIsPassthrough(t *testing.T) {
	const content = "10 10 m\n20 20 l\n30 10 l\nh\nf\n"
	_, page := newTestPage(t, content)

	h := page.Content().(*holder)
	for _, o := range h.objs {
		if o.path != nil {
			t.Errorf("a multi-segment path must never be parsed as a rectangle path object")
		}
	}
}

func TestRemoveAndRegenerate(t *testing.T) {
	const content = `
BT
/F1 12 Tf
72 700 Td
(Secret) Tj
ET
1 0 0 rg
10 10 100 50 re
f
`
	doc, page := newTestPage(t, content)
	h := page.Content().(*holder)

	var removeIdx []int
	for i, o := range h.objs {
		if o.text != nil {
			removeIdx = append(removeIdx, i)
		}
	}
	if len(removeIdx) != 1 {
		t.Fatalf("expected exactly one text object to remove, got %d", len(removeIdx))
	}
	h.Remove(removeIdx)

	if err := page.Regenerate(h); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	out := reopenAndRead(t, doc)
	if strings.Contains(out, "Secret") {
		t.Errorf("regenerated stream still contains the redacted text: %q", out)
	}
	if !strings.Contains(out, "re") {
		t.Errorf("regenerated stream lost the surviving path: %q", out)
	}
}

func TestAppendPathOverlay(t *testing.T) {
	doc, page := newTestPage(t, "")
	h := page.Content().(*holder)

	h.AppendPath(geom.Rectangle{Left: 0, Bottom: 0, Right: 50, Top: 50}, geom.Identity, 0, 0, 0)
	if err := page.Regenerate(h); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	out := reopenAndRead(t, doc)
	if !strings.Contains(out, "re") || !strings.Contains(out, "\nf\n") {
		t.Errorf("overlay box missing from regenerated stream: %q", out)
	}
}

// reopenAndRead wraps a fresh Document/Page around doc's underlying Data
// (simulating a later pass reading back what Regenerate wrote) and returns
// its content stream as a string.
func reopenAndRead(t *testing.T, doc *Document) string {
	t.Helper()
	fresh := NewDocument(doc.r, doc.w)
	page, err := NewPage(fresh, 0)
	if err != nil {
		t.Fatalf("NewPage (reopen): %v", err)
	}
	h := page.Content().(*holder)
	data, err := h.serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return string(data)
}
