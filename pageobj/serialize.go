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
	"bytes"

	"seehuhn.de/go/pdfredact"
)

// serialize rewrites h.objs as content-stream bytes. Passthrough
// operators are replayed exactly as parsed; text objects are rebuilt
// from their current font/spacing/matrix/items, since the Td/TD/T*/Tm
// operators that originally established each one's starting matrix are
// never preserved verbatim (SetTextMatrix may have changed it). Kept
// (non-overlay) paths and image/form placements are replayed as bare
// "x y w h re <op>" / "/Name Do" commands: the cm/q/Q operators that
// placed them in the original stream survive untouched as passthrough
// entries in their original position, so the ambient CTM at replay time
// already matches the one recorded when the object was parsed.
func (h *holder) serialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, o := range h.objs {
		switch {
		case o.text != nil:
			if err := writeTextObject(&buf, o.text); err != nil {
				return nil, err
			}
		case o.image != nil:
			if err := writeOperator(&buf, "Do", []pdf.Object{o.image.resName}); err != nil {
				return nil, err
			}
		case o.form != nil:
			if err := writeOperator(&buf, "Do", []pdf.Object{o.form.resName}); err != nil {
				return nil, err
			}
		case o.path != nil:
			if err := writePathObject(&buf, o.path); err != nil {
				return nil, err
			}
		case o.pass != nil:
			if err := writeOperator(&buf, o.pass.op, o.pass.args); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

func writeOperator(buf *bytes.Buffer, op string, args []pdf.Object) error {
	for _, a := range args {
		if a == nil {
			buf.WriteString("null")
		} else if err := a.PDF(buf); err != nil {
			return err
		}
		buf.WriteByte(' ')
	}
	buf.WriteString(op)
	buf.WriteByte('\n')
	return nil
}

func writeTextObject(buf *bytes.Buffer, t *textObject) error {
	buf.WriteString("BT\n")
	if t.fontName != "" {
		if err := writeOperator(buf, "Tf", []pdf.Object{t.fontName, pdf.Real(t.fontSize)}); err != nil {
			return err
		}
	}
	if err := writeOperator(buf, "Tc", []pdf.Object{pdf.Real(t.charSpace)}); err != nil {
		return err
	}
	if err := writeOperator(buf, "Tw", []pdf.Object{pdf.Real(t.wordSpace)}); err != nil {
		return err
	}
	if err := writeOperator(buf, "Tz", []pdf.Object{pdf.Real(t.horizScale * 100)}); err != nil {
		return err
	}
	m := t.tm
	if err := writeOperator(buf, "Tm", []pdf.Object{
		pdf.Real(m[0]), pdf.Real(m[1]), pdf.Real(m[2]), pdf.Real(m[3]), pdf.Real(m[4]), pdf.Real(m[5]),
	}); err != nil {
		return err
	}
	if len(t.items) > 0 {
		arr := make(pdf.Array, len(t.items))
		for i, item := range t.items {
			if item.IsAdjustment {
				arr[i] = pdf.Real(item.Adjustment)
			} else {
				arr[i] = pdf.String(item.Glyphs)
			}
		}
		if err := writeOperator(buf, "TJ", []pdf.Object{arr}); err != nil {
			return err
		}
	}
	buf.WriteString("ET\n")
	return nil
}

func writePathObject(buf *bytes.Buffer, p *pathObject) error {
	x, y := p.bbox.Left, p.bbox.Bottom
	w, hgt := p.bbox.Right-p.bbox.Left, p.bbox.Top-p.bbox.Bottom

	if p.isOverlay {
		buf.WriteString("q\n")
		m := p.matrix
		if err := writeOperator(buf, "cm", []pdf.Object{
			pdf.Real(m[0]), pdf.Real(m[1]), pdf.Real(m[2]), pdf.Real(m[3]), pdf.Real(m[4]), pdf.Real(m[5]),
		}); err != nil {
			return err
		}
		if err := writeOperator(buf, "rg", []pdf.Object{pdf.Real(p.r), pdf.Real(p.g), pdf.Real(p.b)}); err != nil {
			return err
		}
		if err := writeOperator(buf, "re", []pdf.Object{pdf.Real(x), pdf.Real(y), pdf.Real(w), pdf.Real(hgt)}); err != nil {
			return err
		}
		if err := writeOperator(buf, "f", nil); err != nil {
			return err
		}
		buf.WriteString("Q\n")
		return nil
	}

	op := p.paintOp
	if op == "" {
		op = "f"
	}
	if err := writeOperator(buf, "re", []pdf.Object{pdf.Real(x), pdf.Real(y), pdf.Real(w), pdf.Real(hgt)}); err != nil {
		return err
	}
	return writeOperator(buf, op, nil)
}
