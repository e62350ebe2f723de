// seehuhn.de/go/pdf - support for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"errors"
	"io"
	"os"
)

// ReaderOptions controls the behaviour of NewReader and Open.  A nil
// *ReaderOptions is equivalent to the zero value.
type ReaderOptions struct {
	// ReadPassword is consulted if the file turns out to be encrypted.
	// This redactor has no use for encrypted input, so a non-nil value is
	// currently never exercised; the field exists so ReaderOptions keeps
	// the shape callers across the wider codebase expect.
	ReadPassword ReadPwdFunc
}

// Reader represents a PDF file opened for reading.  Use Open or NewReader
// to create a new Reader.
type Reader struct {
	meta MetaInfo

	size int64
	r    io.ReaderAt

	pos    int64
	objStm *objStm
	level  int

	xref    map[int]*xRefEntry
	trailer Dict
}

// ReadPwdFunc describes a function which can be used to query the user for a
// password for the document with the given ID.  The first call for each
// authentication attempt has try == 0.  If the returned password was wrong,
// the function is called again, repeatedly, with sequentially increasing
// values of try.  If the ReadPwdFunc return the empty string, the
// authentication attempt is aborted and an AuthenticationError is reported to
// the caller.
type ReadPwdFunc func(ID []byte, try int) string

// Open opens the named PDF file for reading.  After use, Close() must be
// called to close the file the Reader is reading from.
func Open(fname string, opt *ReaderOptions) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return r, nil
}

// NewReader creates a new Reader, reading the cross-reference table and
// document catalog of data.
func NewReader(data io.ReadSeeker, opt *ReaderOptions) (*Reader, error) {
	size, err := data.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		size: size,
		r:    asReaderAt(data),
	}

	s := r.scannerAt(0)
	version, err := s.readHeaderVersion()
	if err != nil {
		return nil, err
	}
	r.meta.Version = version

	xref, trailer, err := r.readXRef()
	if err != nil {
		return nil, err
	}
	r.xref = xref
	r.trailer = trailer

	if ID, ok := trailer["ID"].(Array); ok && len(ID) >= 2 {
		var id [][]byte
		for i := 0; i < 2; i++ {
			s, ok := ID[i].(String)
			if !ok {
				break
			}
			id = append(id, []byte(s))
		}
		if len(id) == 2 {
			r.meta.ID = id
		}
	}

	catalogDict, err := GetDict(r, trailer["Root"])
	if err != nil {
		return nil, err
	}
	catalog := &Catalog{}
	if err := DecodeDict(r, catalog, catalogDict); err != nil {
		return nil, err
	}
	r.meta.Catalog = catalog

	if catalog.Version > r.meta.Version {
		// if unset, catalog.Version is zero and thus smaller than r.meta.Version
		r.meta.Version = catalog.Version
	}

	infoDict, err := GetDict(r, trailer["Info"])
	if err != nil {
		return nil, err
	}
	if infoDict != nil {
		info := &Info{}
		if err := DecodeDict(r, info, infoDict); err != nil {
			return nil, err
		}
		r.meta.Info = info
	}

	r.meta.Trailer = trailer

	return r, nil
}

// asReaderAt adapts an io.ReadSeeker to io.ReaderAt without assuming the
// concrete type already implements it (e.g. a bytes.Reader does, but a
// freshly-wrapped io.ReadSeeker from a pipe-like source might not).
func asReaderAt(r io.ReadSeeker) io.ReaderAt {
	if ra, ok := r.(io.ReaderAt); ok {
		return ra
	}
	return &seekerReaderAt{r: r}
}

type seekerReaderAt struct {
	r io.ReadSeeker
}

func (s *seekerReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := s.r.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.r, p)
}

// Close closes the file underlying the reader.  This call only has an
// effect if the io.ReaderAt passed to NewReader has a Close() method, or if
// the Reader was created using Open.  Otherwise, Close() has no effect and
// returns nil.
func (r *Reader) Close() error {
	if closer, ok := r.r.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// GetMeta returns the file's meta information, satisfying the Getter
// interface.
func (r *Reader) GetMeta() *MetaInfo {
	return &r.meta
}

// Get resolves a single indirect object, satisfying the Getter interface.
func (r *Reader) Get(ref Reference) (Object, error) {
	return r.doGet(ref, true)
}

func (r *Reader) doGet(ref Reference, canStream bool) (Object, error) {
	if r.xref == nil {
		return nil, &MalformedFileError{
			Pos: 0,
			Err: errors.New("cannot use references while reading xref table"),
		}
	}

	entry := r.xref[int(ref.Number())]
	if entry.IsFree() || entry.Generation != ref.Generation() {
		return nil, nil
	}

	if entry.InStream != 0 {
		if !canStream {
			return nil, &MalformedFileError{
				Pos: 0,
				Err: errors.New("object streams inside streams not allowed"),
			}
		}
		return r.getFromObjectStream(ref.Number(), entry.InStream)
	}

	s := r.scannerAt(entry.Pos)
	ind, err := s.ReadIndirectObject()
	if err != nil {
		return nil, err
	}

	if ref != ind.Reference {
		return nil, &MalformedFileError{
			Pos: 0,
			Err: errors.New("xref corrupted"),
		}
	}

	return ind.Obj, nil
}

type objStm struct {
	s   *scanner
	idx []stmObj
}

type stmObj struct {
	number, offs int
}

func (r *Reader) objStmScanner(stream *Stream, errPos int64) (*objStm, error) {
	N, ok := stream.Dict["N"].(Integer)
	if !ok || N < 0 || N > 10000 {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: errors.New("no valid /N for ObjStm"),
		}
	}
	n := int(N)

	decoded, err := DecodeStream(r, stream, 0)
	if err != nil {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: err,
		}
	}
	s := newScanner(decoded, r.safeGetInt)

	idx := make([]stmObj, n)
	for i := 0; i < n; i++ {
		no, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		offs, err := s.ReadInteger()
		if err != nil {
			return nil, err
		}
		idx[i].number = int(no)
		idx[i].offs = int(offs)
	}

	pos := s.bytesRead()
	first, ok := stream.Dict["First"].(Integer)
	if !ok || first < Integer(pos) {
		return nil, &MalformedFileError{
			Pos: errPos,
			Err: errors.New("no valid /First for ObjStm"),
		}
	}
	for i := range idx {
		idx[i].offs += int(first)
	}

	return &objStm{s: s, idx: idx}, nil
}

func (r *Reader) getFromObjectStream(number uint32, sRef Reference) (Object, error) {
	container, err := r.doGet(sRef, false)
	if err != nil {
		return nil, err
	}
	stream, ok := container.(*Stream)
	if !ok {
		return nil, &MalformedFileError{
			Pos: r.errPos(sRef),
			Err: errors.New("wrong type for object stream"),
		}
	}

	contents, err := r.objStmScanner(stream, r.errPos(sRef))
	if err != nil {
		return nil, err
	}

	found := false
	for _, info := range contents.idx {
		if uint32(info.number) == number {
			if err := contents.s.Discard(int64(info.offs) - contents.s.bytesRead()); err != nil {
				return nil, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, &MalformedFileError{
			Pos: r.errPos(sRef),
			Err: errors.New("object missing from stream"),
		}
	}

	return contents.s.ReadObject()
}

func (r *Reader) safeGetInt(obj Object) (Integer, error) {
	if x, ok := obj.(Integer); ok {
		return x, nil
	}

	if r.level > 2 {
		return 0, &MalformedFileError{
			Err: errors.New("length in ObjStm with Length in ... exceeded"),
		}
	}
	r.level++
	val, err := GetInt(r, obj)
	r.level--
	return val, err
}

func (r *Reader) scannerAt(pos int64) *scanner {
	return newScanner(io.NewSectionReader(r.r, pos, r.size-pos), r.safeGetInt)
}

func (r *Reader) errPos(ref Reference) int64 {
	if r.xref == nil {
		return 0
	}

	number := ref.Number()
	gen := ref.Generation()
	for {
		entry := r.xref[int(number)]
		if entry.IsFree() || entry.Generation != gen {
			return 0
		}
		if entry.InStream == 0 {
			return entry.Pos
		}
		number = entry.InStream.Number()
		gen = entry.InStream.Generation()
	}
}
