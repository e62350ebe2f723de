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
	"fmt"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/content"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/imaging"
	"seehuhn.de/go/pdfredact/redact"
)

// parseState is the graphics state tracked while walking a content
// stream: just enough to place text, image, form and simple-rectangle
// path objects. Everything else a real content stream carries (color,
// clipping, line style, marked content) passes through unexamined.
type parseState struct {
	ctm geom.Matrix

	tm, tlm    geom.Matrix
	tc, tw, tz float64
	tl         float64
	fontName   pdf.Name
	fontSize   float64
	font       redact.Font

	cur *textObject

	// pathBuf accumulates path-construction and clip operators (re, m, l,
	// c, v, y, h, W, W*) since the last paint operator, in order, so a
	// non-rectangular or clip-bearing path can be replayed verbatim
	// instead of being silently dropped. pathRect/pathRectCTM record the
	// bounding rectangle only while pathBuf consists of exactly the one
	// "re" that built it: the one shape this redactor can cull.
	pathBuf     []passthroughOp
	pathRect    geom.Rectangle
	pathRectCTM geom.Matrix
	pathIsRect  bool

	gstack []savedGState
}

type savedGState struct {
	ctm      geom.Matrix
	tc, tw   float64
	tz       float64
	fontName pdf.Name
	fontSize float64
	font     redact.Font
}

func newParseState() *parseState {
	return &parseState{
		ctm: geom.Identity,
		tm:  geom.Identity,
		tlm: geom.Identity,
		tz:  1,
	}
}

// flushText closes the in-progress text object, if any, appending it to h
// when it actually shows something.
func (st *parseState) flushText(h *holder) {
	if st.cur != nil && len(st.cur.items) > 0 {
		h.objs = append(h.objs, &object{text: st.cur})
	}
	st.cur = nil
}

// ensureText returns the in-progress text object, starting a new one at
// the current text matrix if none is open.
func (st *parseState) ensureText() *textObject {
	if st.cur == nil {
		st.cur = &textObject{
			font: st.font, fontName: st.fontName, fontSize: st.fontSize,
			charSpace: st.tc, wordSpace: st.tw, horizScale: st.tz,
			tm: st.tm,
		}
	}
	return st.cur
}

// advanceLine applies a Td-style displacement to the text line matrix,
// flushing whatever text object was accumulating under the old matrix
// first: a single redact.TextObject never spans more than one starting
// text matrix.
func (st *parseState) advanceLine(h *holder, tx, ty float64) {
	st.flushText(h)
	st.tlm = st.tlm.Mul(geom.Translate(tx, ty))
	st.tm = st.tlm
}

func realArg(args []pdf.Object, i int) float64 {
	if i >= len(args) {
		return 0
	}
	switch v := args[i].(type) {
	case pdf.Real:
		return float64(v)
	case pdf.Integer:
		return float64(v)
	case pdf.Number:
		return float64(v)
	}
	return 0
}

func nameArg(args []pdf.Object, i int) pdf.Name {
	if i >= len(args) {
		return ""
	}
	n, _ := args[i].(pdf.Name)
	return n
}

// parseContent tokenizes data (one page's or one form's decoded content
// stream) into a holder. resources is the /Resources dictionary in force
// for the stream (the form's own, or the parent page's when a form
// carries none).
func (d *Document) parseContent(data []byte, resources *pdf.Resources) (*holder, error) {
	h := &holder{doc: d, resources: resources}
	st := newParseState()

	err := content.ForEachOperator(bytes.NewReader(data), func(op content.Operator, args []pdf.Object) error {
		return d.applyOperator(h, st, resources, string(op), args)
	})
	st.flushText(h)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (d *Document) applyOperator(h *holder, st *parseState, resources *pdf.Resources, op string, args []pdf.Object) error {
	switch op {
	case "q":
		st.gstack = append(st.gstack, savedGState{
			ctm: st.ctm, tc: st.tc, tw: st.tw, tz: st.tz,
			fontName: st.fontName, fontSize: st.fontSize, font: st.font,
		})
	case "Q":
		if n := len(st.gstack); n > 0 {
			saved := st.gstack[n-1]
			st.gstack = st.gstack[:n-1]
			st.ctm = saved.ctm
			st.tc, st.tw, st.tz = saved.tc, saved.tw, saved.tz
			st.fontName, st.fontSize, st.font = saved.fontName, saved.fontSize, saved.font
		}

	case "cm":
		if len(args) < 6 {
			return nil
		}
		m := geom.Matrix{
			realArg(args, 0), realArg(args, 1), realArg(args, 2),
			realArg(args, 3), realArg(args, 4), realArg(args, 5),
		}
		st.ctm = st.ctm.Mul(m)

	case "BT":
		st.tm, st.tlm = geom.Identity, geom.Identity
	case "ET":
		st.flushText(h)

	case "Tf":
		st.flushText(h)
		name := nameArg(args, 0)
		st.fontName = name
		st.fontSize = realArg(args, 1)
		if resources != nil && resources.Font != nil {
			if ref, ok := resources.Font[name].(pdf.Reference); ok {
				f, err := d.resolveFont(ref)
				if err == nil {
					st.font = f
				}
			}
		}
	case "Tc":
		st.flushText(h)
		st.tc = realArg(args, 0)
	case "Tw":
		st.flushText(h)
		st.tw = realArg(args, 0)
	case "Tz":
		st.flushText(h)
		st.tz = realArg(args, 0) / 100
	case "TL":
		st.tl = realArg(args, 0)

	case "Td":
		st.advanceLine(h, realArg(args, 0), realArg(args, 1))
	case "TD":
		st.tl = -realArg(args, 1)
		st.advanceLine(h, realArg(args, 0), realArg(args, 1))
	case "T*":
		st.advanceLine(h, 0, -st.tl)
	case "Tm":
		if len(args) < 6 {
			return nil
		}
		st.flushText(h)
		m := geom.Matrix{
			realArg(args, 0), realArg(args, 1), realArg(args, 2),
			realArg(args, 3), realArg(args, 4), realArg(args, 5),
		}
		st.tlm, st.tm = m, m

	case "Tj":
		if s, ok := arg0String(args); ok {
			st.ensureText().items = append(st.ensureText().items, redact.TextItem{Glyphs: []byte(s)})
		}
	case "TJ":
		if len(args) == 0 {
			return nil
		}
		arr, ok := args[0].(pdf.Array)
		if !ok {
			return nil
		}
		to := st.ensureText()
		for _, e := range arr {
			switch v := e.(type) {
			case pdf.String:
				to.items = append(to.items, redact.TextItem{Glyphs: []byte(v)})
			case pdf.Real:
				to.items = append(to.items, redact.TextItem{IsAdjustment: true, Adjustment: float64(v)})
			case pdf.Integer:
				to.items = append(to.items, redact.TextItem{IsAdjustment: true, Adjustment: float64(v)})
			}
		}
	case "'":
		st.advanceLine(h, 0, -st.tl)
		if s, ok := arg0String(args); ok {
			st.ensureText().items = append(st.ensureText().items, redact.TextItem{Glyphs: []byte(s)})
		}
	case "\"":
		st.flushText(h)
		st.tw = realArg(args, 0)
		st.tc = realArg(args, 1)
		st.advanceLine(h, 0, -st.tl)
		if len(args) >= 3 {
			if s, ok := args[2].(pdf.String); ok {
				st.ensureText().items = append(st.ensureText().items, redact.TextItem{Glyphs: []byte(s)})
			}
		}

	case "re":
		if len(args) < 4 {
			return nil
		}
		x, y, w, hgt := realArg(args, 0), realArg(args, 1), realArg(args, 2), realArg(args, 3)
		st.pathBuf = append(st.pathBuf, passthroughOp{op: op, args: cloneArgs(args)})
		if len(st.pathBuf) == 1 {
			st.pathRect = geom.Rectangle{Left: x, Bottom: y, Right: x + w, Top: y + hgt}.Normalize()
			st.pathRectCTM = st.ctm
			st.pathIsRect = true
		} else {
			st.pathIsRect = false
		}
	case "m", "l", "c", "v", "y", "h", "W", "W*":
		st.pathBuf = append(st.pathBuf, passthroughOp{op: op, args: cloneArgs(args)})
		st.pathIsRect = false

	case "f", "F", "f*", "B", "B*", "b", "b*", "S", "s", "n":
		isInk := op != "n"
		if isInk && st.pathIsRect {
			h.objs = append(h.objs, &object{path: &pathObject{
				matrix: st.pathRectCTM, bbox: st.pathRect, paintOp: op,
			}})
		} else {
			for _, po := range st.pathBuf {
				h.objs = append(h.objs, &object{pass: &passthroughOp{op: po.op, args: po.args}})
			}
			h.objs = append(h.objs, &object{pass: &passthroughOp{op: op, args: cloneArgs(args)}})
		}
		st.pathBuf = nil
		st.pathIsRect = false

	case "Do":
		name := nameArg(args, 0)
		if err := d.handleDo(h, st, resources, name); err != nil {
			h.objs = append(h.objs, &object{pass: &passthroughOp{op: op, args: cloneArgs(args)}})
		}
		return nil

	default:
		h.objs = append(h.objs, &object{pass: &passthroughOp{op: op, args: cloneArgs(args)}})
	}
	return nil
}

// cloneArgs copies args into freshly allocated storage. content.ForEachOperator
// reuses its operand buffer between operators, so any args slice kept
// beyond the callback that received it (a passthrough entry, a buffered
// path-construction operator) must be copied out first.
func cloneArgs(args []pdf.Object) []pdf.Object {
	return append([]pdf.Object(nil), args...)
}

func arg0String(args []pdf.Object) (pdf.String, bool) {
	if len(args) == 0 {
		return nil, false
	}
	s, ok := args[0].(pdf.String)
	return s, ok
}

// handleDo resolves the XObject named name through resources and appends
// either an imageObject or a formObject to h. Resources the redactor
// cannot resolve (a missing entry, an unsupported Subtype) fall back to a
// passthrough entry in the caller, leaving the placement in the
// regenerated stream untouched.
func (d *Document) handleDo(h *holder, st *parseState, resources *pdf.Resources, name pdf.Name) error {
	if resources == nil || resources.XObject == nil {
		return fmt.Errorf("no resources for XObject %s", name)
	}
	refObj, ok := resources.XObject[name]
	if !ok {
		return fmt.Errorf("undefined XObject %s", name)
	}
	ref, _ := refObj.(pdf.Reference)

	stm, err := pdf.GetStream(d.r, refObj)
	if err != nil || stm == nil {
		return fmt.Errorf("XObject %s: %w", name, err)
	}
	subtype, _ := stm.Dict["Subtype"].(pdf.Name)

	switch subtype {
	case "Image":
		dib, err := decodeImageXObject(d.r, stm)
		if err != nil {
			return err
		}
		h.objs = append(h.objs, &object{image: &imageObject{
			matrix: st.ctm, resName: name, ref: ref, doc: d,
			pixels: imaging.Picture{D: dib},
		}})
		return nil

	case "Form":
		formMatrix := geom.Identity
		if arr, ok := stm.Dict["Matrix"].(pdf.Array); ok && len(arr) == 6 {
			formMatrix = geom.Matrix{
				realArg(arr, 0), realArg(arr, 1), realArg(arr, 2),
				realArg(arr, 3), realArg(arr, 4), realArg(arr, 5),
			}
		}
		h.objs = append(h.objs, &object{form: &formObject{
			matrix: st.ctm.Mul(formMatrix), resName: name, ref: ref, doc: d,
			parentResources: resources,
		}})
		return nil

	default:
		return fmt.Errorf("XObject %s: unsupported Subtype %q", name, subtype)
	}
}
