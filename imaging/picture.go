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

// Picture adapts a *DIB to the narrow, method-based pixel interface the
// redact package consumes (a plain DIB can't implement that interface
// itself, since its fields and the interface's methods share names).
type Picture struct {
	D *DIB
}

func (p Picture) Width() int  { return p.D.Width }
func (p Picture) Height() int { return p.D.Height }

func (p Picture) RowPresent(y int) bool { return p.D.Row(y) != nil }

func (p Picture) RGBAt(x, y int) (r, g, b uint8) { return p.D.RGBAt(x, y) }

func (p Picture) Alpha(x, y int) uint8 { return p.D.AlphaAt(x, y) }

func (p Picture) HasAlpha() bool { return p.D.HasAlpha() }
