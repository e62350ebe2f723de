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

package geom

import (
	"math"
	"testing"
)

func TestIntersectsStrict(t *testing.T) {
	a := Rectangle{Left: 0, Bottom: 0, Right: 10, Top: 10}
	edgeTouch := Rectangle{Left: 10, Bottom: 0, Right: 20, Top: 10}
	if a.Intersects(edgeTouch) {
		t.Error("rectangles touching only along an edge must not intersect")
	}

	overlap := Rectangle{Left: 5, Bottom: 5, Right: 15, Top: 15}
	if !a.Intersects(overlap) {
		t.Error("overlapping rectangles must intersect")
	}

	zero := Rectangle{Left: 5, Bottom: 5, Right: 5, Top: 9}
	if a.Intersects(zero) || zero.Intersects(a) {
		t.Error("a zero-area rectangle must never intersect")
	}
}

func TestContainedIn(t *testing.T) {
	outer := Rectangle{Left: 0, Bottom: 0, Right: 100, Top: 100}
	inner := Rectangle{Left: 10, Bottom: 10, Right: 20, Top: 20}
	if !inner.ContainedIn(outer) {
		t.Error("inner should be contained in outer")
	}
	partial := Rectangle{Left: -5, Bottom: 10, Right: 20, Top: 20}
	if partial.ContainedIn(outer) {
		t.Error("a partially overlapping rectangle must not be reported contained")
	}
}

func TestMatrixMulOrder(t *testing.T) {
	// m.Mul(child): apply child first, then m.
	translate := Translate(10, 0)
	scale := Matrix{2, 0, 0, 2, 0, 0}

	combined := translate.Mul(scale) // scale first, then translate
	x, y := combined.Apply(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("got (%v, %v), want (12, 2)", x, y)
	}
}

func TestMatrixInv(t *testing.T) {
	m := Matrix{2, 0, 0, 3, 5, 7}
	inv := m.Inv()
	x, y := m.Apply(1, 1)
	x2, y2 := inv.Apply(x, y)
	if math.Abs(x2-1) > 1e-9 || math.Abs(y2-1) > 1e-9 {
		t.Errorf("round trip through inverse failed: got (%v, %v)", x2, y2)
	}
}

func TestTransformRectRotated(t *testing.T) {
	// 90 degree rotation: (x,y) -> (-y, x)
	rot := Matrix{0, 1, -1, 0, 0, 0}
	r := Rectangle{Left: 0, Bottom: 0, Right: 2, Top: 1}
	got := rot.TransformRect(r)
	want := Rectangle{Left: -1, Bottom: 0, Right: 0, Top: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
