// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package content

import (
	"io"

	"seehuhn.de/go/pdfredact"
)

// ForEachOperator scans stm into operator/operand pairs, invoking yield once
// per operator with the operands accumulated since the previous operator (or
// since the start of the stream).
func ForEachOperator(stm io.Reader, yield func(op Operator, args []pdf.Object) error) error {
	seq := &operatorSeq{}
	return seq.forAllCommands(stm, yield)
}

type operatorSeq struct {
	args []pdf.Object
}

func (o *operatorSeq) forAllCommands(stm io.Reader, yield func(name Operator, args []pdf.Object) error) error {
	s := NewScanner(stm)
	for {
		obj, err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		cmd, ok := obj.(Operator)
		if !ok {
			o.args = append(o.args, obj)
			continue
		}

		if err := yield(cmd, o.args); err != nil {
			return err
		}
		o.args = o.args[:0]
	}
}

