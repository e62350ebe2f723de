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

// Package imaging decodes placed-image pixel data into a small set of
// discrete-in-memory-interchange formats (DIBs), and back into PDF image
// XObject streams, mirroring the format detection and pixel painting done
// by cpdf_text_redactor.cpp's RedactImageObject. It knows about concrete
// byte layouts; it does not know about PDF filters, color space theory, or
// anything resembling a full raster library.
package imaging

// Format identifies the byte layout of one pixel row of a DIB. Only the
// formats the redaction core actually needs to paint over are supported;
// DecodeSource and pageobj's image decoding convert every source image
// into one of them before it reaches the core.
type Format int

const (
	// FormatGray8 is one byte per pixel, 0 = black, 255 = white.
	FormatGray8 Format = iota

	// FormatRGB24 is three bytes per pixel, in R, G, B order.
	FormatRGB24

	// FormatBGRA32 is four bytes per pixel, in B, G, R, A order, with a
	// meaningful alpha channel.
	FormatBGRA32

	// FormatBGRX32 is four bytes per pixel, in B, G, R, X order, the X
	// byte unused (always opaque).
	FormatBGRX32

	// FormatIndexed8 is one byte per pixel, indexing into a Palette.
	FormatIndexed8
)

// BytesPerPixel returns the number of bytes one pixel occupies in this
// format's scanlines.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatGray8, FormatIndexed8:
		return 1
	case FormatRGB24:
		return 3
	case FormatBGRA32, FormatBGRX32:
		return 4
	default:
		return 0
	}
}

// PaletteEntry is one entry of an indexed image's color table, expressed
// in DeviceRGB plus alpha. Alpha other than 0xFF on any entry is what the
// original's palette_has_alpha test looks for.
type PaletteEntry struct {
	R, G, B, A uint8
}
