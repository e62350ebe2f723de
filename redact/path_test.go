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
	"testing"

	"seehuhn.de/go/pdfredact/geom"
)

func TestPathFullyRedacted_Contained(t *testing.T) {
	obj := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: 1, Right: 2, Bottom: 1, Top: 2}}
	rect := geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}

	if !pathFullyRedacted(obj, []geom.Rectangle{rect}, geom.Identity) {
		t.Error("a path fully inside the rectangle should be redacted")
	}
}

func TestPathFullyRedacted_Straddling(t *testing.T) {
	obj := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: -1, Right: 5, Bottom: -1, Top: 5}}
	rect := geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}

	if pathFullyRedacted(obj, []geom.Rectangle{rect}, geom.Identity) {
		t.Error("a path only partially inside the rectangle must not be redacted")
	}
}

func TestPathFullyRedacted_Disjoint(t *testing.T) {
	obj := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: 100, Right: 110, Bottom: 100, Top: 110}}
	rect := geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}

	if pathFullyRedacted(obj, []geom.Rectangle{rect}, geom.Identity) {
		t.Error("a disjoint path must not be redacted")
	}
}

func TestPathFullyRedacted_EdgeTouchingCountsAsContained(t *testing.T) {
	// a path whose bbox shares an edge with the rectangle is still fully
	// contained under the closed (weak) containment test.
	obj := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}}
	rect := geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}

	if !pathFullyRedacted(obj, []geom.Rectangle{rect}, geom.Identity) {
		t.Error("an exactly-matching bbox should count as contained")
	}
}

func TestPathFullyRedacted_TransformedByObjectMatrix(t *testing.T) {
	// the path's own placement matrix must be applied before the
	// containment test, not just the holder's toPage matrix.
	obj := &fakePathObj{
		m:    geom.Matrix{1, 0, 0, 1, 100, 100},
		bbox: geom.Rectangle{Left: 0, Right: 1, Bottom: 0, Top: 1},
	}
	near := geom.Rectangle{Left: 0, Right: 2, Bottom: 0, Top: 2}
	far := geom.Rectangle{Left: 100, Right: 102, Bottom: 100, Top: 102}

	if pathFullyRedacted(obj, []geom.Rectangle{near}, geom.Identity) {
		t.Error("the untranslated rectangle should not contain the translated path")
	}
	if !pathFullyRedacted(obj, []geom.Rectangle{far}, geom.Identity) {
		t.Error("the translated path should be contained in the rectangle at its placement")
	}
}

func TestPathFullyRedacted_ZeroAreaBBoxNeverRedacted(t *testing.T) {
	obj := &fakePathObj{m: geom.Identity, bbox: geom.Rectangle{Left: 5, Right: 5, Bottom: 0, Top: 10}}
	rect := geom.Rectangle{Left: 0, Right: 10, Bottom: 0, Top: 10}

	if pathFullyRedacted(obj, []geom.Rectangle{rect}, geom.Identity) {
		t.Error("a degenerate zero-area path should never be reported as redacted")
	}
}
