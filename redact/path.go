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

import "seehuhn.de/go/pdfredact/geom"

// pathFullyRedacted reports whether obj's page-space bounding box is fully
// contained in some single rectangle of pageRects. Unlike glyphs and image
// pixels, a path is never partially redacted: a path only straddling the
// edge of a rectangle is left untouched, since there is no general way to
// clip an arbitrary vector path to a rectangle without risking a visibly
// wrong result. This is the conservative, closed (weak) containment test,
// as opposed to the strict intersection test used for hit-testing.
func pathFullyRedacted(obj PathObject, pageRects []geom.Rectangle, toPage geom.Matrix) bool {
	toPageFull := toPage.Mul(obj.Matrix())
	bbox := toPageFull.TransformRect(obj.LocalBBox())
	if bbox.IsZero() {
		return false
	}
	for _, r := range pageRects {
		if bbox.ContainedIn(r) {
			return true
		}
	}
	return false
}
