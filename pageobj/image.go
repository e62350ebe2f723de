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

package pageobj

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/imaging"
)

// decodeImageXObject builds an imaging.DIB from a PDF image XObject
// stream, unpacking raw samples of any of the standard 1/2/4/8-bit
// component depths into the 8-bit-per-component DIB formats the redaction
// core paints over. Images whose last filter is DCTDecode/JPXDecode are
// instead handed, still filter-wrapped, to imaging.DecodeSource, mirroring
// how the original engine only reaches for a general image codec once its
// own filter pipeline has stripped everything but the compressed payload.
func decodeImageXObject(r pdf.Getter, stm *pdf.Stream) (*imaging.DIB, error) {
	filters, err := filterNames(r, stm.Dict["Filter"])
	if err != nil {
		return nil, err
	}
	if n := len(filters); n > 0 && (filters[n-1] == "DCTDecode" || filters[n-1] == "JPXDecode") {
		raw, err := pdf.DecodeStream(r, stm, 1)
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(raw)
		if err != nil {
			return nil, err
		}
		return imaging.DecodeSource(data)
	}

	width, err := intField(r, stm.Dict["Width"])
	if err != nil {
		return nil, err
	}
	height, err := intField(r, stm.Dict["Height"])
	if err != nil {
		return nil, err
	}
	bpc, err := intField(r, stm.Dict["BitsPerComponent"])
	if err != nil {
		return nil, err
	}
	if bpc == 0 {
		bpc = 8
	}

	nComp, palette, err := colorSpaceInfo(r, stm.Dict["ColorSpace"])
	if err != nil {
		return nil, err
	}

	body, err := pdf.DecodeStream(r, stm, 0)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	format := imaging.FormatRGB24
	if palette != nil {
		format = imaging.FormatIndexed8
	} else if nComp == 1 {
		format = imaging.FormatGray8
	}

	dib := imaging.NewDIB(width, height, format)
	dib.Palette = palette

	rowBits := width * nComp * bpc
	rowBytes := (rowBits + 7) / 8
	for y := 0; y < height; y++ {
		start := y * rowBytes
		end := start + rowBytes
		if end > len(raw) {
			// short scanline: cut Pix so that DIB.Row(y) and every later
			// row return nil, which the redaction core treats as redacted
			dib.Pix = dib.Pix[:y*len(dib.Pix)/height]
			break
		}
		row := raw[start:end]
		br := bitReader{data: row}
		for x := 0; x < width; x++ {
			switch {
			case palette != nil:
				idx := br.read(bpc)
				dib.Pix[y*dib.Stride+x] = byte(idx)
			case nComp == 1:
				v := expandSample(br.read(bpc), bpc)
				dib.Pix[y*dib.Stride+x] = v
			case nComp == 3:
				rr := expandSample(br.read(bpc), bpc)
				gg := expandSample(br.read(bpc), bpc)
				bb := expandSample(br.read(bpc), bpc)
				off := x * 3
				dib.Pix[y*dib.Stride+off] = rr
				dib.Pix[y*dib.Stride+off+1] = gg
				dib.Pix[y*dib.Stride+off+2] = bb
			case nComp == 4:
				c := expandSample(br.read(bpc), bpc)
				m := expandSample(br.read(bpc), bpc)
				ye := expandSample(br.read(bpc), bpc)
				k := expandSample(br.read(bpc), bpc)
				rr, gg, bb := cmykToRGB(c, m, ye, k)
				off := x * 3
				dib.Pix[y*dib.Stride+off] = rr
				dib.Pix[y*dib.Stride+off+1] = gg
				dib.Pix[y*dib.Stride+off+2] = bb
			default:
				br.read(bpc)
			}
		}
	}

	if maskRef, ok := stm.Dict["SMask"]; ok && maskRef != nil {
		if maskStm, err := pdf.GetStream(r, maskRef); err == nil && maskStm != nil {
			if mask, err := decodeImageXObject(r, maskStm); err == nil &&
				mask.Width == dib.Width && mask.Height == dib.Height {
				for y := 0; y < dib.Height; y++ {
					for x := 0; x < dib.Width; x++ {
						dib.SetAlpha(x, y, mask.AlphaAt(x, y))
						if mask.Format == imaging.FormatGray8 {
							g, _, _ := mask.RGBAt(x, y)
							dib.SetAlpha(x, y, g)
						}
					}
				}
			}
		}
	}

	return dib, nil
}

func intField(r pdf.Getter, obj pdf.Object) (int, error) {
	v, err := pdf.GetInteger(r, obj)
	return int(v), err
}

func filterNames(r pdf.Getter, obj pdf.Object) ([]pdf.Name, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch f := obj.(type) {
	case nil:
		return nil, nil
	case pdf.Name:
		return []pdf.Name{f}, nil
	case pdf.Array:
		var out []pdf.Name
		for _, e := range f {
			name, err := pdf.GetName(r, e)
			if err != nil {
				return nil, err
			}
			out = append(out, name)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected type %T for /Filter", obj)
	}
}

// colorSpaceInfo reports the number of color components a sample carries
// and, for an Indexed color space, the expanded DeviceRGB palette. Color
// spaces this redactor has no business interpreting precisely (Separation,
// DeviceN, Lab, CalRGB/CalGray beyond their component count) fall back to
// their underlying component count, which is enough to keep pixels in the
// right place even when their exact color rendering is approximated.
func colorSpaceInfo(r pdf.Getter, obj pdf.Object) (nComp int, palette []imaging.PaletteEntry, err error) {
	obj, err = pdf.Resolve(r, obj)
	if err != nil {
		return 0, nil, err
	}
	switch cs := obj.(type) {
	case nil:
		return 1, nil, nil
	case pdf.Name:
		switch cs {
		case "DeviceGray", "CalGray", "G":
			return 1, nil, nil
		case "DeviceCMYK", "CMYK":
			return 4, nil, nil
		default: // DeviceRGB, CalRGB, RGB, and anything unrecognized
			return 3, nil, nil
		}
	case pdf.Array:
		if len(cs) == 0 {
			return 3, nil, nil
		}
		family, _ := pdf.GetName(r, cs[0])
		switch family {
		case "ICCBased":
			if len(cs) < 2 {
				return 3, nil, nil
			}
			stm, err := pdf.GetStream(r, cs[1])
			if err != nil || stm == nil {
				return 3, nil, nil
			}
			n, _ := intField(r, stm.Dict["N"])
			if n == 0 {
				n = 3
			}
			return n, nil, nil
		case "Indexed":
			if len(cs) < 4 {
				return 0, nil, fmt.Errorf("malformed Indexed color space")
			}
			baseComp, _, err := colorSpaceInfo(r, cs[1])
			if err != nil {
				return 0, nil, err
			}
			hival, _ := intField(r, cs[2])
			table, err := indexedLookupTable(r, cs[3])
			if err != nil {
				return 0, nil, err
			}
			pal := make([]imaging.PaletteEntry, hival+1)
			for i := range pal {
				off := i * baseComp
				var rr, gg, bb uint8
				switch baseComp {
				case 1:
					if off < len(table) {
						rr, gg, bb = table[off], table[off], table[off]
					}
				case 4:
					if off+3 < len(table) {
						rr, gg, bb = cmykToRGB(table[off], table[off+1], table[off+2], table[off+3])
					}
				default:
					if off+2 < len(table) {
						rr, gg, bb = table[off], table[off+1], table[off+2]
					}
				}
				pal[i] = imaging.PaletteEntry{R: rr, G: gg, B: bb, A: 0xFF}
			}
			return 1, pal, nil
		case "Separation", "DeviceN":
			return 1, nil, nil
		default:
			return 3, nil, nil
		}
	default:
		return 3, nil, nil
	}
}

func indexedLookupTable(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case pdf.String:
		return []byte(v), nil
	case *pdf.Stream:
		data, err := pdf.DecodeStream(r, v, 0)
		if err != nil {
			return nil, err
		}
		return io.ReadAll(data)
	default:
		return nil, fmt.Errorf("unexpected type %T for Indexed lookup table", obj)
	}
}

func cmykToRGB(c, m, y, k uint8) (r, g, b uint8) {
	scale := func(v, k uint8) uint8 {
		inv := 255 - v
		black := 255 - k
		val := int(inv) * int(black) / 255
		return uint8(val)
	}
	return scale(c, k), scale(m, k), scale(y, k)
}

// expandSample replicates a bpc-bit sample to fill a full byte, so that a
// 1-bit DeviceGray image is decoded with 0/255 rather than 0/1.
func expandSample(v uint32, bpc int) uint8 {
	if bpc >= 8 {
		return uint8(v)
	}
	maxVal := uint32(1)<<uint(bpc) - 1
	return uint8(v * 255 / maxVal)
}

// bitReader pulls consecutive bpc-bit big-endian samples out of a packed
// byte row, matching PDF's sample packing (each row byte-aligned, samples
// packed MSB-first with no padding between them).
type bitReader struct {
	data   []byte
	bitPos int
}

func (b *bitReader) read(bits int) uint32 {
	var v uint32
	for i := 0; i < bits; i++ {
		byteIdx := b.bitPos / 8
		bitIdx := 7 - b.bitPos%8
		var bit uint32
		if byteIdx < len(b.data) {
			bit = uint32(b.data[byteIdx]>>uint(bitIdx)) & 1
		}
		v = v<<1 | bit
		b.bitPos++
	}
	return v
}
