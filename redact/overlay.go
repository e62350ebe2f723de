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

// emitOverlay appends one opaque, non-stroked, winding-fill black
// rectangle per entry in rects, painted last so nothing drawn earlier on
// the page can show through. Each rectangle is placed with the identity
// matrix: overlays are always expressed directly in page space, even
// when RedactTextInRects is applied through a nested context, since an
// overlay's whole purpose is to cover the page at that exact location
// regardless of how any single object on the page happens to be nested.
func emitOverlay(h Holder, rects []geom.Rectangle) {
	for _, r := range rects {
		h.AppendPath(r, geom.Identity, 0, 0, 0)
	}
}
