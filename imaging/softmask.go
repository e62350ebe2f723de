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

// SoftMaskFrom builds a FormatGray8 DIB suitable for use as a PDF image's
// SMask entry, from a source DIB's effective alpha (its Alpha plane, its
// BGRA32 alpha byte, or its palette's alpha). Pixels with no alpha
// information at all come out fully opaque (255), matching the original's
// default-to-opaque initialization of a freshly allocated alpha plane.
func SoftMaskFrom(src *DIB) *DIB {
	mask := NewDIB(src.Width, src.Height, FormatGray8)
	for y := 0; y < src.Height; y++ {
		row := mask.Row(y)
		for x := 0; x < src.Width; x++ {
			row[x] = src.AlphaAt(x, y)
		}
	}
	return mask
}
