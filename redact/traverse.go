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

// redactHolder walks h's objects in painting order, redacting text and
// image objects in place, culling fully-contained paths, and recursing
// into form XObjects when recurseForms is true. toPage maps h's own
// coordinate space into page space. page must not be nil: redactHolder
// calls page.Regenerate for every form content it recurses into that
// changed, while regenerating h itself is left to the caller.
func redactHolder(page Page, h Holder, pageRects []geom.Rectangle, toPage geom.Matrix, recurseForms bool, doc Document, depth int) (bool, error) {
	if depth > maxFormDepth {
		return false, nil
	}

	objs := h.Objects()
	changed := false
	var toRemove []int

	for i, obj := range objs {
		if text, ok := obj.AsText(); ok {
			switch RedactTextObject(text, pageRects, toPage) {
			case TextModified:
				changed = true
			case TextRemovedAll:
				toRemove = append(toRemove, i)
				changed = true
			}
			continue
		}

		if img, ok := obj.AsImage(); ok {
			did, err := RedactImage(img, pageRects, toPage, doc)
			if err != nil {
				return changed, err
			}
			if did {
				changed = true
			}
			continue
		}

		if path, ok := obj.AsPath(); ok {
			if pathFullyRedacted(path, pageRects, toPage) {
				toRemove = append(toRemove, i)
				changed = true
			}
			continue
		}

		if form, ok := obj.AsForm(); ok {
			if !recurseForms {
				continue
			}
			nextToPage := toPage.Mul(form.Matrix())
			formChanged, err := redactHolder(page, form.Content(), pageRects, nextToPage, recurseForms, doc, depth+1)
			if err != nil {
				return changed, err
			}
			if formChanged {
				if err := page.Regenerate(form.Content()); err != nil {
					return changed, err
				}
				changed = true
			}
			continue
		}
	}

	if len(toRemove) > 0 {
		h.Remove(toRemove)
	}

	return changed, nil
}
