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

// Rectangle is an axis-aligned rectangle in some 2-D space (page user
// space, image pixel space, or font-unit glyph space, depending on
// context). Unlike pdf.Rectangle, values are not required to be
// normalized on construction; call Normalize before relying on
// Left <= Right and Bottom <= Top.
type Rectangle struct {
	Left, Bottom, Right, Top float64
}

// Normalize returns r with its corners reordered so that
// Left <= Right and Bottom <= Top.
func (r Rectangle) Normalize() Rectangle {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Bottom > r.Top {
		r.Bottom, r.Top = r.Top, r.Bottom
	}
	return r
}

// IsZero reports whether r has zero area.
func (r Rectangle) IsZero() bool {
	return r.Left == r.Right || r.Bottom == r.Top
}

// Intersects reports whether r and other overlap, using the strict,
// open-interval test required by the redaction core: rectangles that only
// touch along an edge or a corner do not intersect, and a zero-area
// rectangle never intersects anything.
func (r Rectangle) Intersects(other Rectangle) bool {
	if r.IsZero() || other.IsZero() {
		return false
	}
	return r.Right > other.Left && r.Left < other.Right &&
		r.Top > other.Bottom && r.Bottom < other.Top
}

// IntersectsAny reports whether r strictly intersects any rectangle in rs.
func (r Rectangle) IntersectsAny(rs []Rectangle) bool {
	for _, other := range rs {
		if r.Intersects(other) {
			return true
		}
	}
	return false
}

// ContainedIn reports whether r is fully contained in other (all four
// edges weakly inside), the test used by the path culler.
func (r Rectangle) ContainedIn(other Rectangle) bool {
	return r.Left >= other.Left && r.Right <= other.Right &&
		r.Bottom >= other.Bottom && r.Top <= other.Top
}

// Scale multiplies both axes independently, used when mapping a unit-square
// rectangle into a W x H pixel grid.
func (r Rectangle) Scale(sx, sy float64) Rectangle {
	return Rectangle{
		Left:   r.Left * sx,
		Right:  r.Right * sx,
		Bottom: r.Bottom * sy,
		Top:    r.Top * sy,
	}
}

// Clamp restricts r to the box [0, maxX] x [0, maxY].
func (r Rectangle) Clamp(maxX, maxY float64) Rectangle {
	r = r.Normalize()
	r.Left = clampf(r.Left, 0, maxX)
	r.Right = clampf(r.Right, 0, maxX)
	r.Bottom = clampf(r.Bottom, 0, maxY)
	r.Top = clampf(r.Top, 0, maxY)
	return r
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
