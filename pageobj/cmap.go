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
	"seehuhn.de/go/pdfredact/fontmetrics"
	"seehuhn.de/go/postscript"
)

// resolveCMap reads the CMap named by a Type 0 font's /Encoding entry and
// builds the fontmetrics.CompositeInfo a Composite needs to split a string
// into codes and map each code to a CID. Only the two predefined identity
// CMaps and embedded CMap streams are recognized; any other predefined CMap
// name (one of the legacy CJK encodings) is reported as an error rather
// than guessed at.
func resolveCMap(r pdf.Getter, obj pdf.Object) (*fontmetrics.CompositeInfo, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	switch obj := obj.(type) {
	case pdf.Name:
		switch obj {
		case "Identity-H":
			return identityCompositeInfo(false), nil
		case "Identity-V":
			return identityCompositeInfo(true), nil
		default:
			return nil, fmt.Errorf("pageobj: unsupported predefined CMap %q", obj)
		}

	case *pdf.Stream:
		if _, err := pdf.GetDictTyped(r, obj.Dict, "CMap"); err != nil {
			return nil, err
		}
		body, err := pdf.DecodeStream(r, obj, 0)
		if err != nil {
			return nil, err
		}
		info, err := parseCMapStream(body)
		if err != nil {
			return nil, err
		}
		if wMode, err := pdf.GetInteger(r, obj.Dict["WMode"]); err == nil && wMode == 1 {
			info.Vertical = true
		}
		return info, nil

	default:
		return nil, fmt.Errorf("pageobj: invalid /Encoding entry of type %T", obj)
	}
}

// identityCompositeInfo describes the Identity-H/Identity-V predefined
// CMaps, in which every 2-byte code is its own CID.
func identityCompositeInfo(vertical bool) *fontmetrics.CompositeInfo {
	return &fontmetrics.CompositeInfo{
		Vertical: vertical,
		CodeSpace: []fontmetrics.CodeRange{
			{Low: []byte{0x00, 0x00}, High: []byte{0xFF, 0xFF}},
		},
		Ranges: []fontmetrics.CIDRange{
			{First: []byte{0x00, 0x00}, Last: []byte{0xFF, 0xFF}, Value: 0},
		},
	}
}

// parseCMapStream reads an embedded CMap stream's PostScript body and
// extracts the parts a Composite needs for metrics lookup: code space
// ranges and CID mappings. The stream's own name, ROS and any UseCMap
// parent affect neither glyph boundaries nor CID assignment, so none of
// them are read here.
func parseCMapStream(r io.Reader) (*fontmetrics.CompositeInfo, error) {
	raw, err := postscript.ReadCMap(r)
	if err != nil {
		return nil, err
	}

	codeMap, ok := raw["CodeMap"].(*postscript.CMapInfo)
	if !ok {
		return nil, fmt.Errorf("pageobj: embedded CMap stream has no CodeMap section")
	}

	info := &fontmetrics.CompositeInfo{}
	for _, e := range codeMap.CodeSpaceRanges {
		info.CodeSpace = append(info.CodeSpace, fontmetrics.CodeRange{Low: e.Low, High: e.High})
	}
	for _, e := range codeMap.CidChars {
		cid, ok := e.Dst.(postscript.Integer)
		if !ok || cid < 0 {
			continue
		}
		info.Singles = append(info.Singles, fontmetrics.CIDSingle{Code: e.Src, Value: fontmetrics.CID(cid)})
	}
	for _, e := range codeMap.CidRanges {
		cid, ok := e.Dst.(postscript.Integer)
		if !ok || cid < 0 {
			continue
		}
		info.Ranges = append(info.Ranges, fontmetrics.CIDRange{First: e.Low, Last: e.High, Value: fontmetrics.CID(cid)})
	}

	if len(info.Singles) == 0 && len(info.Ranges) == 0 {
		return nil, fmt.Errorf("pageobj: embedded CMap stream defines no CID mappings")
	}
	return info, nil
}
