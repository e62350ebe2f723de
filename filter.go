// Copyright 2020 Jochen Voss <voss@seehuhn.de>
//
// Some code here, e.g. the pngUpReader, is taken from
// https://pkg.go.dev/rsc.io/pdf .  Use of this source code is governed by a
// BSD-style license, which is reproduced here:
//
//     Copyright (c) 2009 The Go Authors. All rights reserved.
//
//     Redistribution and use in source and binary forms, with or without
//     modification, are permitted provided that the following conditions are
//     met:
//
//        * Redistributions of source code must retain the above copyright
//     notice, this list of conditions and the following disclaimer.
//        * Redistributions in binary form must reproduce the above
//     copyright notice, this list of conditions and the following disclaimer
//     in the documentation and/or other materials provided with the
//     distribution.
//        * Neither the name of Google Inc. nor the names of its
//     contributors may be used to endorse or promote products derived from
//     this software without specific prior written permission.
//
//     THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
//     "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
//     LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
//     A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
//     OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
//     SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
//     LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
//     DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
//     THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
//     (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
//     OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package pdf

import (
	"compress/zlib"
	"fmt"
	"io"
)

// Filter is a stream encoding applied by OpenStream as data is written.
// Encode wraps w so that writes to the returned WriteCloser are encoded
// before reaching w; Info reports the /Filter name and /DecodeParms value
// OpenStream must record in the stream dictionary for the encoding Encode
// performs.
type Filter interface {
	Encode(v Version, w io.WriteCloser) (io.WriteCloser, error)
	Info(v Version) (Name, Object, error)
}

// FilterCompress is the zlib-based FlateDecode filter, with no predictor
// (Predictor 1): the only encoding OpenStream's callers in this module
// need to produce.
type FilterCompress struct{}

func (FilterCompress) Encode(v Version, w io.WriteCloser) (io.WriteCloser, error) {
	return &flateWriteCloser{zw: zlib.NewWriter(w), inner: w}, nil
}

func (FilterCompress) Info(v Version) (Name, Object, error) {
	return "FlateDecode", nil, nil
}

type flateWriteCloser struct {
	zw    *zlib.Writer
	inner io.WriteCloser
}

func (f *flateWriteCloser) Write(p []byte) (int, error) {
	return f.zw.Write(p)
}

func (f *flateWriteCloser) Close() error {
	if err := f.zw.Close(); err != nil {
		return err
	}
	return f.inner.Close()
}

// appendFilter records name (and, if non-nil, parms) as the next stage of
// dict's /Filter pipeline, promoting a single existing entry to an array
// when a second filter is added.
func appendFilter(dict Dict, name Name, parms Object) {
	switch existing := dict["Filter"].(type) {
	case nil:
		dict["Filter"] = name
		if parms != nil {
			dict["DecodeParms"] = parms
		}
	case Name:
		dict["Filter"] = Array{existing, name}
		oldParms := dict["DecodeParms"]
		dict["DecodeParms"] = Array{oldParms, parms}
	case Array:
		dict["Filter"] = append(existing, name)
		parmsArr, _ := dict["DecodeParms"].(Array)
		for len(parmsArr) < len(existing) {
			parmsArr = append(parmsArr, nil)
		}
		dict["DecodeParms"] = append(parmsArr, parms)
	}
}

// DecodeStream returns a reader for the decoded data of stream. Filters
// are applied in pipeline order (the order /Filter lists them); numFilters
// controls how many filters, counted from the end of the pipeline, are
// left undecoded -- pass 0 to fully decode the stream, the only value any
// caller in this module needs.
func DecodeStream(r Getter, stream *Stream, numFilters int) (io.Reader, error) {
	filterObj, err := Resolve(r, stream.Dict["Filter"])
	if err != nil {
		return nil, err
	}
	if filterObj == nil {
		return stream.R, nil
	}

	parmsObj, err := Resolve(r, stream.Dict["DecodeParms"])
	if err != nil {
		return nil, err
	}

	var filters, parms Array
	switch f := filterObj.(type) {
	case Name:
		filters = Array{f}
		parms = Array{parmsObj}
	case Array:
		filters = f
		if p, ok := parmsObj.(Array); ok {
			parms = p
		} else {
			parms = make(Array, len(filters))
			for i := range parms {
				parms[i] = parmsObj
			}
		}
	default:
		return nil, fmt.Errorf("unexpected type %T for /Filter", filterObj)
	}

	n := len(filters) - numFilters
	if n < 0 {
		n = 0
	} else if n > len(filters) {
		n = len(filters)
	}

	out := stream.R
	for i := 0; i < n; i++ {
		var p Object
		if i < len(parms) {
			p = parms[i]
		}
		p, err := Resolve(r, p)
		if err != nil {
			return nil, err
		}
		name, err := Resolve(r, filters[i])
		if err != nil {
			return nil, err
		}
		out = applyFilter(out, name, p)
	}
	return out, nil
}

func applyFilter(r io.Reader, name Object, param Object) io.Reader {
	n, ok := name.(Name)
	if !ok {
		return &errorReader{
			fmt.Errorf("invalid filter description %s", Format(name))}
	}
	switch string(n) {
	case "FlateDecode":
		params := map[string]int{
			"Predictor":        1,
			"Colors":           1,
			"BitsPerComponent": 8,
			"Columns":          1,
			"EarlyChange":      1,
		}
		if pDict, ok := param.(Dict); ok {
			for key := range params {
				if val, ok := pDict[Name(key)].(Integer); ok {
					params[key] = int(val)
				}
			}
		}
		var zr io.Reader
		var err error
		zr, err = zlib.NewReader(r)
		if err != nil {
			return &errorReader{err}
		}
		switch params["Predictor"] {
		case 1:
			// pass
		case 12:
			columns := params["Columns"]
			zr = &pngUpReader{
				r:    zr,
				hist: make([]byte, 1+columns),
				tmp:  make([]byte, 1+columns),
				pend: []byte{},
			}
		default:
			zr = &errorReader{fmt.Errorf("unsupported predictor %d",
				params["Predictor"])}
		}
		return zr
	default:
		return &errorReader{fmt.Errorf("unsupported filter %q", n)}
	}
}

type pngUpReader struct {
	r    io.Reader
	hist []byte
	tmp  []byte
	pend []byte
}

func (r *pngUpReader) Read(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		if len(r.pend) > 0 {
			m := copy(b, r.pend)
			n += m
			b = b[m:]
			r.pend = r.pend[m:]
			continue
		}
		_, err := io.ReadFull(r.r, r.tmp)
		if err != nil {
			return n, err
		}
		if r.tmp[0] != 2 {
			return n, fmt.Errorf("malformed PNG-Up encoding")
		}
		for i, b := range r.tmp {
			r.hist[i] += b
		}
		r.pend = r.hist[1:]
	}
	return n, nil
}

type errorReader struct {
	err error
}

func (e *errorReader) Read([]byte) (int, error) {
	return 0, e.err
}
