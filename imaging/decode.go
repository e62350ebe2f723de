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

package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hhrutter/tiff"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// DecodeSource decodes an embedded image stream (JPEG, PNG, BMP, WebP, or
// TIFF bytes, as opposed to a raw PDF bitmap already in DIB form) into a
// DIB. This mirrors the pack of epdf_jpeg_shim.cpp / epdf_webp_shim.cpp /
// epdf_png_shim.cpp: the PDF engine normally consumes DCTDecode/FlateDecode
// bitmaps directly, and only reaches for a general image codec when an
// image arrives already wrapped in one of these container formats.
func DecodeSource(data []byte) (*DIB, error) {
	// image/jpeg and image/png register themselves with image.Decode via
	// their blank imports above; bmp, webp and tiff are tried explicitly,
	// since they are not part of the stdlib registry.
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(img), nil
	}
	if img, err := bmp.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(img), nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(img), nil
	}
	if img, err := tiff.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(img), nil
	}
	return nil, fmt.Errorf("imaging: unrecognized source image format")
}

// fromImage converts a decoded image.Image into a DIB, choosing
// FormatGray8 for grayscale sources and FormatRGB24 (with a separate
// Alpha plane when the source has one) otherwise.
func fromImage(img image.Image) *DIB {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if gray, ok := img.(*image.Gray); ok {
		d := NewDIB(w, h, FormatGray8)
		for y := 0; y < h; y++ {
			copy(d.Row(y), gray.Pix[(y)*gray.Stride:(y)*gray.Stride+w])
		}
		return d
	}

	d := NewDIB(w, h, FormatRGB24)
	var alpha []byte
	hasAlpha := false
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		hasAlpha = true
	}
	if hasAlpha {
		alpha = make([]byte, w*h)
	}
	for y := 0; y < h; y++ {
		row := d.Row(y)
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			off := x * 3
			row[off] = uint8(r >> 8)
			row[off+1] = uint8(g >> 8)
			row[off+2] = uint8(bl >> 8)
			if hasAlpha {
				alpha[y*w+x] = uint8(a >> 8)
			}
		}
	}
	if hasAlpha {
		d.Alpha = alpha
	}
	return d
}
