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

// Package geom holds the affine-geometry primitives shared by the
// redaction core: 2x3 matrices and axis-aligned rectangles, both in
// PDF user-space conventions.
package geom

// Matrix is a PDF-style affine transformation matrix, stored in the same
// element order as the "cm" content-stream operator.
//
// If M = [a b c d e f] is a Matrix, it corresponds to the 3x3 matrix
//
//	/ a b 0 \
//	| c d 0 |
//	\ e f 1 /
//
// and transforms a point (x, y) into (a*x+c*y+e, b*x+d*y+f).
type Matrix [6]float64

// Identity is the identity transformation.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms the point (x, y) by M.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Mul composes two matrices so that applying the result is the same as
// first applying child, then applying m to the outcome:
//
//	m.Mul(child) == "apply child first, then m"
//
// This matches the composition convention used throughout the redaction
// core (parent.Mul(child)), where "parent" is the matrix already
// accumulated while descending into nested forms and "child" is the
// placement matrix of the object being transformed.
func (m Matrix) Mul(child Matrix) Matrix {
	return Matrix{
		child[0]*m[0] + child[1]*m[2],
		child[0]*m[1] + child[1]*m[3],
		child[2]*m[0] + child[3]*m[2],
		child[2]*m[1] + child[3]*m[3],
		child[4]*m[0] + child[5]*m[2] + m[4],
		child[4]*m[1] + child[5]*m[3] + m[5],
	}
}

// Inv returns the inverse of m. It panics if m is singular.
func (m Matrix) Inv() Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		panic("geom: singular matrix")
	}
	invDet := 1 / det
	return Matrix{
		m[3] * invDet, -m[1] * invDet,
		-m[2] * invDet, m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// Translate returns a matrix that shifts the origin by (dx, dy).
func Translate(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// TransformRect transforms the four corners of r by m and returns their
// axis-aligned bounding box. For non-rotating matrices this is exactly the
// transformed rectangle; for rotated or skewed matrices it is the
// enclosing axis-aligned box, which is what the strict-intersection test
// in this package needs.
func (m Matrix) TransformRect(r Rectangle) Rectangle {
	xs := [4]float64{}
	ys := [4]float64{}
	xs[0], ys[0] = m.Apply(r.Left, r.Bottom)
	xs[1], ys[1] = m.Apply(r.Right, r.Bottom)
	xs[2], ys[2] = m.Apply(r.Right, r.Top)
	xs[3], ys[3] = m.Apply(r.Left, r.Top)

	out := Rectangle{Left: xs[0], Right: xs[0], Bottom: ys[0], Top: ys[0]}
	for i := 1; i < 4; i++ {
		if xs[i] < out.Left {
			out.Left = xs[i]
		}
		if xs[i] > out.Right {
			out.Right = xs[i]
		}
		if ys[i] < out.Bottom {
			out.Bottom = ys[i]
		}
		if ys[i] > out.Top {
			out.Top = ys[i]
		}
	}
	return out
}
