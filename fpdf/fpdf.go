// Provides routines to render canvases as PDFs, one canvas per page.
package fpdf

import(
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/castviz/scene"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

var(
	PageMargin = 10.0 // mm, all round
	TitleHeight = 10.0
	NumTicks = 5
)

// {{{ NewPdf

func NewPdf() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetFont("Arial", "", 10)
	return pdf
}

// }}}
// {{{ DrawTitle

func DrawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0,0,0)
	pdf.MoveTo(PageMargin, PageMargin)
	pdf.Cell(200, TitleHeight, title)
}

// }}}
// {{{ DrawCanvas

// DrawCanvas adds a page showing the canvas: axes, then the marks in order.
func DrawCanvas(pdf *gofpdf.Fpdf, c *scene.Canvas) error {
	pdf.AddPage()
	if c.Title != "" { DrawTitle(pdf, c.Title) }

	pageW,pageH := pdf.GetPageSize()
	top := PageMargin + TitleHeight
	bg := NewCanvasGrid(pdf, c.Frame, PageMargin+15, top, pageW-2*PageMargin-15, pageH-top-PageMargin)
	bg.DrawAxes(c.Frame, NumTicks)

	for i,m := range c.Marks {
		ink := c.Palette.Ink(m.Kind, m.State)
		r,g,b,err := ink.RGB()
		if err != nil { return fmt.Errorf("canvas %s mark %d: %w", c.ID, i, err) }

		pdf.SetAlpha(ink.Opacity, "Normal")
		switch m.Shape {
		case scene.ShapePoint:
			pdf.SetFillColor(r, g, b)
			bg.Circle(m.Points[0].X, m.Points[0].Y, m.Radius)
		case scene.ShapePolyline:
			pdf.SetDrawColor(r, g, b)
			pdf.SetLineWidth(bg.Scale(ink.Width))
			bg.Polyline(m.Points)
		}
	}
	pdf.SetAlpha(1.0, "Normal")

	return pdf.Error()
}

// }}}
// {{{ Write

// Write renders each canvas onto its own page.
func Write(output io.Writer, canvases ...*scene.Canvas) error {
	if len(canvases) == 0 { return fmt.Errorf("fpdf.Write: no canvases") }

	pdf := NewPdf()
	for _,c := range canvases {
		if err := DrawCanvas(pdf, c); err != nil { return err }
	}
	return pdf.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
