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

// Package redact removes every glyph, image pixel, and vector path that
// falls inside a set of caller-supplied rectangles, permanently and
// irreversibly, without needing to understand the rest of a PDF file's
// structure. It consumes the surrounding PDF machinery (parser, object
// model, font metrics, image decoding, content-stream serialization)
// through the small collaborator interfaces in this file.
package redact

import (
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
)

// PixelFormat identifies the in-memory layout of an Image's pixel data.
type PixelFormat = imaging.Format

// PaletteEntry is one entry of an indexed image's color table.
type PaletteEntry = imaging.PaletteEntry

// Font answers geometry questions about character codes as found in a
// content stream's string operands. It never exposes glyph outlines.
type Font interface {
	// WritingMode returns 0 for horizontal, 1 for vertical writing.
	WritingMode() int

	// CodeLen returns the number of bytes making up one character code at
	// s[pos:]. Simple fonts always return 1.
	CodeLen(s []byte, pos int) int

	// GlyphBBox returns the bounding box, in thousandths of an em, of the
	// glyph mapped to the code at s[pos:pos+n]. ok is false for codes that
	// map to no glyph; the caller then treats the glyph as invisible.
	GlyphBBox(s []byte, pos, n int) (bbox geom.Rectangle, ok bool)

	// AdvanceMth returns the glyph's nominal advance along the writing
	// direction, in thousandths of an em: the horizontal width for
	// WritingMode() == 0, the vertical advance for WritingMode() == 1.
	AdvanceMth(s []byte, pos, n int) float64

	// IsASCIISpace reports whether the code at s[pos:pos+n] is the single
	// byte 0x20. Fonts whose codes are never one byte wide (composite
	// fonts with a 2-byte code space) must return false unconditionally.
	IsASCIISpace(s []byte, pos, n int) bool
}

// TextItem is one element of a text object's shown-item sequence: either a
// glyph run (a string to be shown with Font) or a kerning adjustment (the
// numeric entries of a TJ array, or the synthetic single adjustment implied
// by Tj/'/"' operators that no longer apply once items are rewritten).
type TextItem struct {
	// IsAdjustment is true for a kerning/position adjustment, false for a
	// glyph-showing string.
	IsAdjustment bool

	// Glyphs holds the raw bytes shown, valid when !IsAdjustment.
	Glyphs []byte

	// Adjustment is the TJ-array displacement in thousandths of an em,
	// valid when IsAdjustment. A positive value moves the next glyph to
	// the left (for horizontal writing) per the PDF spec's TJ semantics.
	Adjustment float64
}

// TextObject is a placed text object: a font, a size, spacing parameters,
// a text matrix, and a sequence of shown items. The redact core replaces
// Items and the text matrix in place when glyphs are removed; it never
// needs to know how the object was parsed or how it will be serialized.
type TextObject interface {
	Font() Font
	FontSize() float64
	CharSpace() float64
	WordSpace() float64
	HorizScale() float64 // Tz, as a fraction (1.0 == 100%)

	// TextMatrix returns the text matrix in effect at the start of this
	// object (the Tm in force when the first item is shown).
	TextMatrix() geom.Matrix
	SetTextMatrix(m geom.Matrix)

	Items() []TextItem
	SetItems(items []TextItem)

	// MarkDirty records that Items/TextMatrix changed and the object's
	// content stream must be regenerated.
	MarkDirty()
}

// Image is the decoded-pixel collaborator for a placed image. It exposes
// just enough to let the core read and overwrite pixels; it knows nothing
// about PDF filters or color space theory beyond the discrete pixel
// formats it reports.
type Image interface {
	Width() int
	Height() int

	// RowPresent reports whether scanline y exists in the source data;
	// false models a truncated bitmap (a short final row), which the core
	// treats as fully redacted rather than guessing at padding.
	RowPresent(y int) bool

	// RGBAt returns pixel (x, y) already expanded to DeviceRGB, regardless
	// of the underlying pixel format (palette expansion, BGR byte swap,
	// gray replication all happen behind this interface).
	RGBAt(x, y int) (r, g, b uint8)

	// Alpha returns the soft-mask/explicit-alpha byte for pixel (x, y), or
	// 0xFF if the image carries no alpha information at all.
	Alpha(x, y int) uint8

	// HasAlpha reports whether this image carries per-pixel alpha, either
	// through an embedded alpha channel (FormatBGRA32) or an external
	// soft mask / indexed palette with non-opaque entries.
	HasAlpha() bool
}

// SoftMaskRef is an opaque handle returned by Document.AddSoftMask,
// identifying the indirect object a repainted image's SMask entry should
// point to. The core never looks inside it.
type SoftMaskRef any

// ImageObject is a placed image: a placement matrix mapping the unit
// square to page user space, and the decoded pixel data. RedactImage
// replaces Pixels with a new image built by the imaging package, installed
// in place of the original stream.
type ImageObject interface {
	Matrix() geom.Matrix
	Pixels() Image

	// Repaint installs a new pixel image in place of the current one. The
	// caller guarantees img has the same Width/Height as Pixels(). mask is
	// non-nil when the new image needs an explicit soft mask (as opposed
	// to a format with a built-in alpha channel); it must have come from
	// this ImageObject's Document.AddSoftMask.
	Repaint(img Image, mask SoftMaskRef)

	MarkDirty()
}

// PathObject is a placed vector path: only its axis-aligned bounding box
// in the path's own local coordinate space and its placement matrix are
// needed, since redaction only ever removes a path outright, never edits
// its geometry.
type PathObject interface {
	Matrix() geom.Matrix
	LocalBBox() geom.Rectangle
}

// FormObject is a placed form XObject: a nested Holder plus the matrix
// that places that holder's coordinate space into its parent.
type FormObject interface {
	Matrix() geom.Matrix
	Content() Holder
}

// Object is one member of a Holder, down-cast through the As* accessors.
// Exactly one As* method returns non-nil/true; this mirrors the closed
// set of page-object variants the original engine dispatches on (text,
// image, path, form placement), with no open-ended extension point.
type Object interface {
	AsText() (TextObject, bool)
	AsImage() (ImageObject, bool)
	AsPath() (PathObject, bool)
	AsForm() (FormObject, bool)
}

// Holder is an ordered, mutable collection of page objects in painting
// order (later objects painted on top). The core never reorders objects;
// it only removes members and appends overlay rectangles.
type Holder interface {
	Objects() []Object

	// Remove deletes the objects at the given indices (into the slice
	// returned by the most recent call to Objects). Indices need not be
	// sorted; duplicates are ignored.
	Remove(indices []int)

	// AppendPath appends a new filled path object, painted last, with the
	// given local bounding box, placement matrix, and fill color
	// components (as DeviceRGB, 0..1).
	AppendPath(bbox geom.Rectangle, m geom.Matrix, r, g, b float64)
}

// Document lets the core allocate and write the indirect object a
// rewritten image's soft mask needs, without knowing anything about xref
// tables or object streams.
type Document interface {
	// AddSoftMask writes mask (a FormatGray8 Image) as a new indirect
	// XObject stream and returns a handle for ImageObject.Repaint.
	AddSoftMask(mask Image) (SoftMaskRef, error)
}

// Page is the top-level entry point: a page's content, plus the means to
// regenerate a form's content stream after the form's Holder changed.
type Page interface {
	Content() Holder

	// Regenerate rewrites the content stream of a Holder (the page itself
	// or a form XObject) to reflect the current state of its Objects.
	// Called for holders whose objects redaction changed, and for the
	// page's own content again after overlay boxes have been added.
	Regenerate(h Holder) error
}
