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

// Options controls the optional behaviors of RedactTextInRects.
type Options struct {
	// RecurseForms, when true, descends into nested form XObject
	// placements and regenerates any form whose content changed. When
	// false, forms are left untouched (their content may still visually
	// overlap a redaction rectangle).
	RecurseForms bool

	// DrawBlackBoxes, when true, appends an opaque black rectangle over
	// each entry in rects after every other redaction has been applied,
	// painted on top of everything else on the page.
	DrawBlackBoxes bool
}

// RedactTextInRect is RedactTextInRects for a single rectangle.
func RedactTextInRect(page Page, doc Document, rect geom.Rectangle, opts Options) (bool, error) {
	return RedactTextInRects(page, doc, []geom.Rectangle{rect}, opts)
}

// RedactTextInRects permanently removes every glyph, image pixel, and
// fully-contained vector path within any of rects from page, optionally
// recursing into nested forms and optionally covering rects with opaque
// black rectangles afterwards. It reports whether the page was modified
// in any way; a false result with a nil error means rects did not
// intersect anything on the page.
func RedactTextInRects(page Page, doc Document, rects []geom.Rectangle, opts Options) (bool, error) {
	normalized := make([]geom.Rectangle, 0, len(rects))
	for _, r := range rects {
		r = r.Normalize()
		if r.IsZero() {
			continue
		}
		normalized = append(normalized, r)
	}
	if len(normalized) == 0 {
		return false, nil
	}

	changed, err := redactHolder(page, page.Content(), normalized, geom.Identity, opts.RecurseForms, doc, 0)
	if err != nil {
		return changed, err
	}

	if changed {
		if err := page.Regenerate(page.Content()); err != nil {
			return changed, err
		}
	}

	if opts.DrawBlackBoxes {
		emitOverlay(page.Content(), normalized)
		if err := page.Regenerate(page.Content()); err != nil {
			return true, err
		}
		changed = true
	}

	return changed, nil
}
