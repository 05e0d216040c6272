package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"SquareBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrEmptyPath = errors.New("export: empty output path")

const (
	pageMargin = 10.0 // mm
	headerGap  = 8.0
)

// ExportPDF writes the board to a PDF file at path.
func ExportPDF(path string, snap state.Snapshot) error {
	if path == "" {
		return ErrEmptyPath
	}
	p := render(snap)
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export pdf %s: %w", path, err)
	}
	return nil
}

// WritePDF writes the board as a PDF document to w.
func WritePDF(w io.Writer, snap state.Snapshot) error {
	p := render(snap)
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

func render(snap state.Snapshot) *gofpdf.Fpdf {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("Square Board", true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	p.SetFont("Helvetica", "", 10)
	p.Text(pageMargin, pageMargin, fmt.Sprintf("Square Board, revision %d, %d squares", snap.Revision, len(snap.Squares)))

	top := pageMargin + headerGap
	availW := pageW - 2*pageMargin
	availH := pageH - top - pageMargin
	w, h := snap.Width, snap.Height
	if w <= 0 || h <= 0 {
		w, h = state.SurfaceWidth, state.SurfaceHeight
	}
	scale := math.Min(availW/w, availH/h)

	// board frame
	p.SetDrawColor(203, 213, 224)
	p.SetLineWidth(0.5)
	p.Rect(pageMargin, top, w*scale, h*scale, "D")

	or, og, ob := rgb(state.OutlineColor)
	p.SetDrawColor(or, og, ob)
	p.SetLineWidth(state.OutlineWidth * scale)
	for _, sq := range snap.Squares {
		r, g, b := rgb(sq.Color)
		p.SetFillColor(r, g, b)
		p.Rect(pageMargin+sq.X*scale, top+sq.Y*scale, sq.Width*scale, sq.Height*scale, "FD")
	}
	return p
}

func rgb(hex string) (int, int, int) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0
	}
	r, g, b := c.RGB255()
	return int(r), int(g), int(b)
}
