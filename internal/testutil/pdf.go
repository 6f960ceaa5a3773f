// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
)

// BuildPDF returns a minimal, well-formed PDF with one 200x200pt page per color,
// each page filled entirely with its color.
func BuildPDF(pages ...color.RGBA) []byte {
	var objects []string

	// 1: catalog, 2: page tree, then a page and a content stream per color.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i*2)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	)

	for i, c := range pages {
		stream := fmt.Sprintf("%.3f %.3f %.3f rg 0 0 200 200 re f",
			float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Resources << >> /Contents %d 0 R >>", 4+i*2),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

var (
	Red   = color.RGBA{R: 0xff, A: 0xff}
	Green = color.RGBA{G: 0xff, A: 0xff}
	Blue  = color.RGBA{B: 0xff, A: 0xff}
)
