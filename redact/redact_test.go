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
	"reflect"
	"testing"

	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
)

// TestRedactTextInRects_SingleLineMiddleWord exercises the common case: one
// text object on the page, the rectangle covers a word in the middle of a
// single run of glyphs, and the object is rewritten in place.
func TestRedactTextInRects_SingleLineMiddleWord(t *testing.T) {
	txt := newFakeText([]TextItem{{Glyphs: []byte("ABCDE")}})
	holder := &fakeHolder{objs: []Object{&fakeObj{text: txt}}}
	page := newFakePage(holder)
	rect := geom.Rectangle{Left: 11, Right: 17, Bottom: -1, Top: 10}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	want := []TextItem{
		{Glyphs: []byte("AB")},
		{IsAdjustment: true, Adjustment: -500},
		{Glyphs: []byte("DE")},
	}
	if !reflect.DeepEqual(txt.items, want) {
		t.Errorf("items = %+v, want %+v", txt.items, want)
	}
	if page.regenerated[holder] != 1 {
		t.Errorf("expected the page content to be regenerated once, got %d", page.regenerated[holder])
	}
}

// TestRedactTextInRects_AllGlyphsRemovedDropsObject checks that a text
// object entirely inside the rectangle is dropped from the holder.
func TestRedactTextInRects_AllGlyphsRemovedDropsObject(t *testing.T) {
	txt := newFakeText([]TextItem{{Glyphs: []byte("ABCDE")}})
	holder := &fakeHolder{objs: []Object{&fakeObj{text: txt}}}
	page := newFakePage(holder)
	rect := geom.Rectangle{Left: -10, Right: 100, Bottom: -10, Top: 100}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if len(holder.objs) != 0 {
		t.Fatalf("expected the fully-redacted text object to be removed, got %d objects", len(holder.objs))
	}
}

// TestRedactTextInRects_PreExistingAdjustmentPreserved verifies that an
// adjustment item outside the redaction zone survives untouched alongside
// the rewritten run.
func TestRedactTextInRects_PreExistingAdjustmentPreserved(t *testing.T) {
	txt := newFakeText([]TextItem{
		{Glyphs: []byte("AB")},
		{IsAdjustment: true, Adjustment: 42},
		{Glyphs: []byte("CDE")},
	})
	holder := &fakeHolder{objs: []Object{&fakeObj{text: txt}}}
	page := newFakePage(holder)
	// covers only the trailing glyph of the run, well past the explicit
	// +42 adjustment; "AB" and the adjustment must survive unchanged.
	rect := geom.Rectangle{Left: 24, Right: 30, Bottom: -1, Top: 10}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	// the explicit +42 kerning before "CDE" must still separate "AB" from
	// "C"; "E" is dropped from the end of the run, leaving "CD".
	if len(txt.items) == 0 {
		t.Fatal("expected at least one surviving item")
	}
	first, ok := asTextItemRun(txt.items[0])
	if !ok || string(first) != "AB" {
		t.Errorf("first run = %+v, want \"AB\"", txt.items[0])
	}
}

func asTextItemRun(item TextItem) ([]byte, bool) {
	if item.IsAdjustment {
		return nil, false
	}
	return item.Glyphs, true
}

// TestRedactTextInRects_ImageAndPathTogether drives a holder containing an
// image object and a fully-contained path object through a single call,
// checking that both are redacted independently of the text handling.
func TestRedactTextInRects_ImageAndPathTogether(t *testing.T) {
	src := imaging.NewDIB(2, 2, imaging.FormatRGB24)
	for y := 0; y < 2; y++ {
		row := src.Row(y)
		for x := 0; x < 2; x++ {
			row[x*3], row[x*3+1], row[x*3+2] = 5, 6, 7
		}
	}
	img := &fakeImageObj{m: geom.Matrix{2, 0, 0, 2, 0, 0}, pix: imaging.Picture{D: src}}
	path := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: 0.2, Right: 0.8, Bottom: 0.2, Top: 0.8}}
	holder := &fakeHolder{objs: []Object{&fakeObj{image: img}, &fakeObj{path: path}}}
	page := newFakePage(holder)
	rect := geom.Rectangle{Left: 0, Right: 1, Bottom: 0, Top: 1}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if img.repainted.D == nil {
		t.Error("expected the image to be repainted")
	}
	if len(holder.objs) != 1 {
		t.Fatalf("expected the fully-contained path to be removed, leaving 1 object, got %d", len(holder.objs))
	}
	if _, ok := holder.objs[0].AsImage(); !ok {
		t.Error("the surviving object should be the image")
	}
}

// TestRedactTextInRects_NestedFormRecursed is the end-to-end version of
// TestRedactHolder_FormRecursion, going through the public entry point and
// checking that both the form's own content and the top-level page content
// get regenerated.
func TestRedactTextInRects_NestedFormRecursed(t *testing.T) {
	nestedTxt := newFakeText([]TextItem{{Glyphs: []byte("ABCDE")}})
	nested := &fakeHolder{objs: []Object{&fakeObj{text: nestedTxt}}}
	form := &fakeForm{m: geom.Identity, content: nested}
	top := &fakeHolder{objs: []Object{&fakeObj{form: form}}}
	page := newFakePage(top)
	rect := geom.Rectangle{Left: 11, Right: 17, Bottom: -1, Top: 10}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{RecurseForms: true})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if page.regenerated[nested] != 1 {
		t.Errorf("nested form content regenerated %d times, want 1", page.regenerated[nested])
	}
	if page.regenerated[top] != 1 {
		t.Errorf("top-level page content regenerated %d times, want 1", page.regenerated[top])
	}
}

// TestRedactTextInRects_BlackBoxOverlayAfterRemoval checks that with both
// redaction and the optional overlay enabled, the overlay rectangle is
// still appended even though the underlying text was already removed.
func TestRedactTextInRects_BlackBoxOverlayAfterRemoval(t *testing.T) {
	txt := newFakeText([]TextItem{{Glyphs: []byte("ABCDE")}})
	holder := &fakeHolder{objs: []Object{&fakeObj{text: txt}}}
	page := newFakePage(holder)
	rect := geom.Rectangle{Left: -10, Right: 100, Bottom: -10, Top: 100}

	changed, err := RedactTextInRect(page, &fakeDoc{}, rect, Options{DrawBlackBoxes: true})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if len(holder.overlays) != 1 {
		t.Fatalf("expected 1 overlay rectangle, got %d", len(holder.overlays))
	}
	if page.regenerated[holder] != 2 {
		t.Errorf("expected content to be regenerated twice (redaction, then overlay), got %d", page.regenerated[holder])
	}
}
