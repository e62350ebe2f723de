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
	"math"

	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
)

// pageRectsToImageGrid maps page-space rectangles into the pixel grid of
// a W x H image placed by imageToPage (mapping the unit square [0,1]x[0,1]
// to page space), clamping to the image bounds and dropping rectangles
// that end up with no area. This mirrors PageRectsToImageGrid.
func pageRectsToImageGrid(imageToPage geom.Matrix, w, h int, pageRects []geom.Rectangle) []geom.Rectangle {
	toUnit := imageToPage.Inv()
	out := make([]geom.Rectangle, 0, len(pageRects))
	for _, r := range pageRects {
		unit := toUnit.TransformRect(r).Normalize()
		px := geom.Rectangle{
			Left:   math.Floor(unit.Left * float64(w)),
			Right:  math.Ceil(unit.Right * float64(w)),
			Bottom: math.Floor(unit.Bottom * float64(h)),
			Top:    math.Ceil(unit.Top * float64(h)),
		}.Clamp(float64(w), float64(h))
		if px.IsZero() {
			continue
		}
		out = append(out, px)
	}
	return out
}

// pixelRectContains reports whether pixel (x, y), treated as the unit
// square [x, x+1] x [y, y+1], strictly intersects any rectangle in rs.
func pixelRectContains(x, y int, rs []geom.Rectangle) bool {
	px := geom.Rectangle{Left: float64(x), Right: float64(x + 1), Bottom: float64(y), Top: float64(y + 1)}
	return px.IntersectsAny(rs)
}

// RedactImage overwrites every pixel of obj's image that falls inside
// pageRects with solid black, preserving every pixel outside the
// rectangles exactly, and forces full opacity for every redacted pixel so
// that the painted-over area can never show through a soft mask. It
// returns false (and does not touch obj) if no pixel needed redaction.
func RedactImage(obj ImageObject, pageRects []geom.Rectangle, toPage geom.Matrix, doc Document) (bool, error) {
	src := obj.Pixels()
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return false, nil
	}

	imageToPage := toPage.Mul(obj.Matrix())
	imgRects := pageRectsToImageGrid(imageToPage, w, h, pageRects)
	if len(imgRects) == 0 {
		return false, nil
	}

	needsAlpha := src.HasAlpha()
	out := imaging.NewDIB(w, h, imaging.FormatRGB24)
	if needsAlpha {
		out.Alpha = make([]byte, w*h)
	}

	redactedPixels := 0
	for y := 0; y < h; y++ {
		if !src.RowPresent(y) {
			// Missing scanline: treat the whole row as if it were inside
			// every rectangle that overlaps its y-extent, matching the
			// original's handling of a truncated bitmap.
			for x := 0; x < w; x++ {
				out.SetRGB(x, y, 0, 0, 0)
				if needsAlpha {
					out.SetAlpha(x, y, 0xFF)
				}
				redactedPixels++
			}
			continue
		}

		// imgRects count rows up from the image's bottom edge, DIB rows
		// run top-down.
		yImg := h - 1 - y
		for x := 0; x < w; x++ {
			if pixelRectContains(x, yImg, imgRects) {
				out.SetRGB(x, y, 0, 0, 0)
				if needsAlpha {
					out.SetAlpha(x, y, 0xFF)
				}
				redactedPixels++
				continue
			}

			r, g, b := src.RGBAt(x, y)
			out.SetRGB(x, y, r, g, b)
			if needsAlpha {
				out.SetAlpha(x, y, src.Alpha(x, y))
			}
		}
	}

	// Enforce full opacity inside every redacted rectangle, even for
	// pixels whose row was present but which fell on a redacted region
	// boundary handled above; this loop is the belt-and-braces pass the
	// original performs after the main scan.
	if needsAlpha {
		for _, r := range imgRects {
			x0, x1 := int(r.Left), int(r.Right)
			y0, y1 := int(r.Bottom), int(r.Top)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					out.SetAlpha(x, h-1-y, 0xFF)
				}
			}
		}
	}

	if redactedPixels == 0 {
		return false, nil
	}

	var maskRef SoftMaskRef
	if needsAlpha {
		mask := imaging.SoftMaskFrom(out)
		var err error
		maskRef, err = doc.AddSoftMask(imaging.Picture{D: mask})
		if err != nil {
			return false, err
		}
	}

	obj.Repaint(imaging.Picture{D: out}, maskRef)
	obj.MarkDirty()
	return true, nil
}
