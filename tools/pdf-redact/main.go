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

// Command pdf-redact permanently removes every glyph, image pixel, and
// fully-contained vector path within caller-supplied rectangles from a PDF
// file, optionally recursing into form XObjects and optionally covering the
// redacted regions with opaque black boxes.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"seehuhn.de/go/pdfredact"
	"seehuhn.de/go/pdfredact/geom"
	"seehuhn.de/go/pdfredact/pageobj"
	"seehuhn.de/go/pdfredact/pagetree"
	"seehuhn.de/go/pdfredact/redact"

	"seehuhn.de/go/pdfredact/tools/internal/buildinfo"
	"seehuhn.de/go/pdfredact/tools/internal/profile"
)

// pageRect is one --rect flag value: a 1-based page number plus the
// rectangle to redact on it, in PDF user space.
type pageRect struct {
	page int
	rect geom.Rectangle
}

// parseRect parses "PAGE:X0,Y0,X1,Y1" as produced by the --rect flag.
func parseRect(s string) (pageRect, error) {
	head, tail, ok := strings.Cut(s, ":")
	if !ok {
		return pageRect{}, fmt.Errorf("rect %q: expected PAGE:X0,Y0,X1,Y1", s)
	}
	page, err := strconv.Atoi(head)
	if err != nil || page < 1 {
		return pageRect{}, fmt.Errorf("rect %q: invalid page number %q", s, head)
	}

	parts := strings.Split(tail, ",")
	if len(parts) != 4 {
		return pageRect{}, fmt.Errorf("rect %q: expected 4 coordinates, got %d", s, len(parts))
	}
	var coords [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return pageRect{}, fmt.Errorf("rect %q: invalid coordinate %q", s, p)
		}
		coords[i] = v
	}

	return pageRect{
		page: page - 1,
		rect: geom.Rectangle{Left: coords[0], Bottom: coords[1], Right: coords[2], Top: coords[3]},
	}, nil
}

func run(inputFile, outputFile string, rects []pageRect, opts redact.Options, force bool) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputFile, err)
	}
	defer in.Close()

	// Data holds every indirect object of the input file in memory and acts
	// as both the Getter pageobj reads through and the Putter it writes
	// replacement page/image streams through; objects neither redaction
	// touches pass through to the output unchanged.
	data, err := pdf.Read(in, nil)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	totalPages, err := pagetree.NumPages(data)
	if err != nil {
		return fmt.Errorf("failed to read page tree: %w", err)
	}

	byPage := make(map[int][]geom.Rectangle)
	for _, pr := range rects {
		if pr.page < 0 || pr.page >= totalPages {
			return fmt.Errorf("rect on page %d: document only has %d pages", pr.page+1, totalPages)
		}
		byPage[pr.page] = append(byPage[pr.page], pr.rect)
	}
	if len(byPage) == 0 {
		return fmt.Errorf("no --rect given; nothing to redact")
	}

	pages := make([]int, 0, len(byPage))
	for pageNo := range byPage {
		pages = append(pages, pageNo)
	}
	sort.Ints(pages)

	wdoc := pageobj.NewDocument(data, data)

	changedPages := 0
	for _, pageNo := range pages {
		page, err := pageobj.NewPage(wdoc, pageNo)
		if err != nil {
			return fmt.Errorf("page %d: %w", pageNo+1, err)
		}

		changed, err := redact.RedactTextInRects(page, wdoc, byPage[pageNo], opts)
		if err != nil {
			return fmt.Errorf("page %d: %w", pageNo+1, err)
		}
		if changed {
			changedPages++
		}
	}

	fmt.Fprintf(os.Stderr, "redacted %d page(s) of %d\n", changedPages, totalPages)

	out, closer, err := openOutput(outputFile, force)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := data.Write(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return data.Close()
}

func openOutput(filename string, force bool) (*os.File, *os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if force {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(filename, flags, 0666)
	if err != nil {
		if os.IsExist(err) {
			return nil, nil, fmt.Errorf("file %s already exists (use -f to overwrite)", filename)
		}
		return nil, nil, err
	}
	return f, f, nil
}

func main() {
	var rectFlags []string
	var recurseForms, blackBox, force, help bool
	var cpuprofile, memprofile string

	pflag.StringArrayVarP(&rectFlags, "rect", "r", nil, "rectangle to redact, as PAGE:X0,Y0,X1,Y1 (repeatable)")
	pflag.BoolVar(&recurseForms, "recurse-forms", false, "also redact inside nested form XObjects")
	pflag.BoolVar(&blackBox, "black-box", false, "paint an opaque black box over each redacted rectangle")
	pflag.BoolVarP(&force, "force", "f", false, "overwrite the output file if it exists")
	pflag.StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
	pflag.StringVar(&memprofile, "memprofile", "", "write memory profile to file")
	pflag.BoolVarP(&help, "help", "h", false, "show help information")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdf-redact — permanently remove page content inside given rectangles\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdf-redact"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdf-redact [options] -r PAGE:X0,Y0,X1,Y1 [-r ...] <input.pdf> <output.pdf>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdf-redact -r 1:100,200,300,400 in.pdf out.pdf\n")
		fmt.Fprintf(os.Stderr, "  pdf-redact --black-box --recurse-forms -r 1:0,0,612,50 in.pdf out.pdf\n")
	}

	pflag.Parse()

	if help {
		pflag.Usage()
		return
	}

	args := pflag.Args()
	if len(args) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	var rects []pageRect
	for _, s := range rectFlags {
		pr, err := parseRect(s)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		rects = append(rects, pr)
	}

	stop, err := profile.Start(cpuprofile, memprofile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer stop()

	opts := redact.Options{RecurseForms: recurseForms, DrawBlackBoxes: blackBox}
	if err := run(args[0], args[1], rects, opts, force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
