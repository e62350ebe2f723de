// seehuhn.de/go/pdf - a library for reading and writing PDF files
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
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/maps"
)

// WriterOptions controls the behaviour of NewWriter.
type WriterOptions struct {
	// Version is the PDF version to write.  The zero value selects V1_7.
	Version Version

	// ID is the file identifier to record in the trailer, as for
	// MetaInfo.ID.  A nil value omits the /ID entry.
	ID [][]byte
}

// Writer represents a PDF file open for writing.  Unlike a streaming
// incremental writer, Writer collects all indirect objects in memory and
// serializes them, in one pass, when Close is called; this keeps object
// allocation (Alloc) and replacement (Put) independent of the order in
// which objects end up written to the file.
type Writer struct {
	w      *posWriter
	origW  io.Writer
	closer io.Closer
	meta   MetaInfo
	closed bool

	objects   map[Reference]Object
	lastRef   uint32
	autoclose map[Reference]io.Closer
}

// NewWriter prepares a PDF file for writing.  A nil opt selects PDF version
// 1.7 and no file identifier.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	ver := V1_7
	var id [][]byte
	if opt != nil {
		if opt.Version != 0 {
			ver = opt.Version
		}
		id = opt.ID
	}

	pdf := &Writer{
		w:     &posWriter{w: w},
		origW: w,
		meta: MetaInfo{
			Version: ver,
			ID:      id,
			Catalog: &Catalog{},
		},
		objects:   map[Reference]Object{},
		autoclose: map[Reference]io.Closer{},
	}
	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close() must be called to write the file contents and to close
// the underlying file.
func Create(name string) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	pdf, err := NewWriter(fd, nil)
	if err != nil {
		fd.Close()
		return nil, err
	}
	pdf.closer = fd
	return pdf, nil
}

func (pdf *Writer) GetMeta() *MetaInfo {
	return &pdf.meta
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	for {
		pdf.lastRef++
		ref := NewReference(pdf.lastRef, 0)
		if _, ok := pdf.objects[ref]; !ok {
			return ref
		}
	}
}

// Put records obj under ref, overwriting any previous object stored there.
// Putting a nil obj removes the object.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if obj == nil {
		delete(pdf.objects, ref)
	} else {
		pdf.objects[ref] = obj
	}
	return nil
}

// OpenStream allocates a new stream object at ref and returns a writer for
// its data; filters are applied in order as the data is written, same as
// Data.OpenStream.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	streamDict := maps.Clone(dict)
	if streamDict == nil {
		streamDict = Dict{}
	}
	if filter, ok := streamDict["Filter"].(Array); ok {
		streamDict["Filter"] = append(Array{}, filter...)
	}
	if decodeParms, ok := streamDict["DecodeParms"].(Array); ok {
		streamDict["DecodeParms"] = append(Array{}, decodeParms...)
	}

	s := &Stream{Dict: streamDict}
	pdf.objects[ref] = s

	var w io.WriteCloser = &dataStreamWriter{s: s}
	var err error
	for _, filter := range filters {
		w, err = filter.Encode(pdf.meta.Version, w)
		if err != nil {
			return nil, err
		}
		name, parms, err := filter.Info(pdf.meta.Version)
		if err != nil {
			return nil, err
		}
		appendFilter(streamDict, name, parms)
	}
	return w, nil
}

// WriteCompressed stores objects directly, the same way Put does; this
// writer never actually places them inside a PDF object stream.
func (pdf *Writer) WriteCompressed(refs []Reference, objects ...Object) error {
	if err := checkCompressed(refs, objects); err != nil {
		return err
	}
	for i, obj := range objects {
		if err := pdf.Put(refs[i], obj); err != nil {
			return err
		}
	}
	return nil
}

// AutoClose registers res.C to be closed, in Reference order, when Close is
// called.
func (pdf *Writer) AutoClose(res Closer) {
	pdf.autoclose[res.Ref] = res.C
}

// Close flushes the autoclose queue, then writes the header, all indirect
// objects, the cross-reference table and the trailer to the underlying
// io.Writer, in ascending object-number order.
func (pdf *Writer) Close() error {
	if pdf.closed {
		return nil
	}
	pdf.closed = true

	keys := maps.Keys(pdf.autoclose)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Generation() != keys[j].Generation() {
			return keys[i].Generation() < keys[j].Generation()
		}
		return keys[i].Number() < keys[j].Number()
	})
	for _, key := range keys {
		if err := pdf.autoclose[key].Close(); err != nil {
			return err
		}
		delete(pdf.autoclose, key)
	}

	verString, err := pdf.meta.Version.ToString()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString); err != nil {
		return err
	}

	if pdf.meta.Trailer == nil {
		pdf.meta.Trailer = Dict{}
	}
	if pdf.meta.Catalog != nil {
		catRef := pdf.Alloc()
		pdf.objects[catRef] = AsDict(pdf.meta.Catalog)
		pdf.meta.Trailer["Root"] = catRef
	}
	if pdf.meta.Info != nil {
		infoRef := pdf.Alloc()
		pdf.objects[infoRef] = AsDict(pdf.meta.Info)
		pdf.meta.Trailer["Info"] = infoRef
	}

	refs := maps.Keys(pdf.objects)
	sort.Slice(refs, func(i, j int) bool { return refs[i].Number() < refs[j].Number() })

	xref := make(map[int]*xRefEntry, len(refs)+1)
	xref[0] = &xRefEntry{Pos: -1, Generation: 65535}
	nextRef := int(pdf.lastRef) + 1

	for _, ref := range refs {
		pos := pdf.w.pos
		if _, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number(), ref.Generation()); err != nil {
			return err
		}
		if err := pdf.objects[ref].PDF(pdf.w); err != nil {
			return err
		}
		if _, err := pdf.w.Write([]byte("\nendobj\n")); err != nil {
			return err
		}
		xref[int(ref.Number())] = &xRefEntry{Pos: pos, Generation: ref.Generation()}
	}

	xRefPos := pdf.w.pos
	if _, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", nextRef); err != nil {
		return err
	}
	for i := 0; i < nextRef; i++ {
		entry := xref[i]
		var err error
		if entry != nil && entry.Pos >= 0 {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", entry.Pos, entry.Generation)
		} else {
			_, err = pdf.w.Write([]byte("0000000000 65535 f\r\n"))
		}
		if err != nil {
			return err
		}
	}

	trailer := pdf.meta.Trailer
	trailer["Size"] = Integer(nextRef)
	if pdf.meta.ID != nil {
		id := Array{}
		for _, part := range pdf.meta.ID {
			id = append(id, String(part))
		}
		trailer["ID"] = id
	}

	if _, err := pdf.w.Write([]byte("trailer\n")); err != nil {
		return err
	}
	if err := trailer.PDF(pdf.w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos); err != nil {
		return err
	}

	if pdf.closer != nil {
		return pdf.closer.Close()
	}
	return nil
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

// Flush exists so that *Writer satisfies the shape Placeholder's
// seek-and-patch code path expects; posWriter never buffers, so there is
// nothing to flush.
func (w *posWriter) Flush() error { return nil }
