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
	"testing"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/fontmetrics"
)

func TestResolveCMapIdentity(t *testing.T) {
	data := pdf.NewData(pdf.V1_7)

	for _, name := range []pdf.Name{"Identity-H", "Identity-V"} {
		info, err := resolveCMap(data, name)
		if err != nil {
			t.Fatalf("resolveCMap(%s): %v", name, err)
		}
		if len(info.Ranges) != 1 || info.Ranges[0].Value != 0 {
			t.Errorf("%s: got ranges %+v, want a single all-CIDs range starting at 0", name, info.Ranges)
		}
		wantVertical := name == "Identity-V"
		if info.Vertical != wantVertical {
			t.Errorf("%s: got Vertical=%v, want %v", name, info.Vertical, wantVertical)
		}
	}
}

func TestResolveCMapUnsupportedPredefined(t *testing.T) {
	data := pdf.NewData(pdf.V1_7)
	if _, err := resolveCMap(data, pdf.Name("UniGB-UCS2-H")); err == nil {
		t.Errorf("expected an error for an unsupported predefined CMap, got nil")
	}
}

func TestDecodeCompositeWidthsUniform(t *testing.T) {
	data := pdf.NewData(pdf.V1_7)
	w := pdf.Array{pdf.Integer(10), pdf.Integer(20), pdf.Integer(600)}

	ww, dw, err := decodeCompositeWidths(data, w, pdf.Integer(1000))
	if err != nil {
		t.Fatalf("decodeCompositeWidths: %v", err)
	}
	if dw != 1000 {
		t.Errorf("got dw=%v, want 1000", dw)
	}
	for cid := fontmetrics.CID(10); cid <= 20; cid++ {
		if ww[cid] != 600 {
			t.Errorf("CID %d: got width %v, want 600", cid, ww[cid])
		}
	}
	if _, ok := ww[fontmetrics.CID(21)]; ok {
		t.Errorf("CID 21 should not be present in the sparse width map")
	}
}

func TestDecodeCompositeWidthsIndividual(t *testing.T) {
	data := pdf.NewData(pdf.V1_7)
	w := pdf.Array{
		pdf.Integer(5),
		pdf.Array{pdf.Integer(100), pdf.Integer(200), pdf.Integer(1000)},
	}

	ww, dw, err := decodeCompositeWidths(data, w, nil)
	if err != nil {
		t.Fatalf("decodeCompositeWidths: %v", err)
	}
	if dw != 0 {
		t.Errorf("got dw=%v, want 0 (no /DW given)", dw)
	}
	if ww[fontmetrics.CID(5)] != 100 || ww[fontmetrics.CID(6)] != 200 {
		t.Errorf("got widths %v, want CID 5->100, 6->200", ww)
	}
	// The third width (1000) happens to equal the default and is recorded
	// anyway here since dw is 0, not 1000; entries equal to dw are elided.
	if _, ok := ww[fontmetrics.CID(7)]; !ok {
		t.Errorf("CID 7 should be present (1000 != default 0)")
	}
}

func TestDecodeCompositeWidthsInvalidRange(t *testing.T) {
	data := pdf.NewData(pdf.V1_7)
	// cLast < cFirst is invalid.
	w := pdf.Array{pdf.Integer(20), pdf.Integer(10), pdf.Integer(600)}

	if _, _, err := decodeCompositeWidths(data, w, nil); err == nil {
		t.Errorf("expected an error for a descending CID range, got nil")
	}
}
