package fpdf

import(
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/castviz"
)

// Describes a grid we're going to plot over, and the location of its top-left corner in PDF space.
// Grid coords are canvas pixels, so the origin is top-left and y grows downwards, as in PDF.
type BaseGrid struct {
	*gofpdf.Fpdf        // Embed the thing we're writing to

	// Describe the portion of PDF page space the grid will be drawn over
	OffsetU     float64 // where the origin (top-left) should be, in PDF coords
	OffsetV     float64 // where the origin (top-left) should be, in PDF coords
	W,H         float64 // width and height of the grid, in PDF units (should be mm)

	// Control how (x,y) vals are mapped into (u,v) vals
	InvertX,InvertY     bool    // A grid's origin defaults to top-left; these bools flip that
	MinX,MinY,MaxX,MaxY float64 // the range of values that should be scaled onto the grid.
	Clip                bool    // whether to skip lines that stray outside the grid

	// Other formatting
	LineColor []int // rgb, each [0,255] - axis labels
}

// NewCanvasGrid fits the whole of a canvas (margins included) into the box
// at (u,v) of size (w,h), keeping its aspect ratio.
func NewCanvasGrid(pdf *gofpdf.Fpdf, f castviz.Frame, u,v,w,h float64) BaseGrid {
	scale := w / f.Width()
	if s := h / f.Height(); s < scale { scale = s }
	return BaseGrid{
		Fpdf: pdf,
		OffsetU: u,
		OffsetV: v,
		W: f.Width() * scale,
		H: f.Height() * scale,
		MaxX: f.Width(),
		MaxY: f.Height(),
		LineColor: []int{0,0,0},
	}
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)U(x float64) (float64, bool) {
	// Scale the X value to [0.0, 1.0], then map into PDF coords
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	if bg.InvertX { xRatio = 1.0 - xRatio }

	u := bg.OffsetU + (xRatio * bg.W)
	outOfBounds := xRatio<0 || xRatio>1
	
	return u,outOfBounds
}

// the bool is whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	if bg.InvertY { yRatio = 1.0 - yRatio }

	v := bg.OffsetV + (yRatio * bg.H)
	outOfBounds := yRatio<0 || yRatio>1
	
	return v,outOfBounds
}

// the bool is whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)UV(x,y float64) (float64, float64, bool) {
	u,oobU := bg.U(x)
	v,oobV := bg.V(y)
	
	return u, v, (oobU || oobV)
}

// Scale converts a length in grid units to PDF units.
func (bg BaseGrid)Scale(d float64) float64 {
	return d * bg.W / (bg.MaxX - bg.MinX)
}

// }}}
// {{{ bg.MoveBy

func (bg BaseGrid)MoveBy(x,y float64) {
	currX,currY := bg.GetXY()
	bg.Fpdf.MoveTo(currX+x, currY+y)
}

// }}}
// {{{ bg.MaybeSet{Draw|Text}Color

func (bg BaseGrid)MaybeSetDrawColor() {
	if len(bg.LineColor) == 3 {
		bg.SetDrawColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
	}
}

func (bg BaseGrid)MaybeSetTextColor() {
	if len(bg.LineColor) == 3 {
		bg.SetTextColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
	}
}

// }}}

// {{{ bg.MoveTo, LineTo, Line, Polyline, Circle

// We submit coords in gridspace (e.g. x,y), and the grid transforms them into PDFspace.
func (bg BaseGrid)MoveTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.MoveTo(u,v)
	return oob
}

func (bg BaseGrid)LineTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.LineTo(u,v)
	return oob
}

// Only draw the line if both points are inside bounds
func (bg BaseGrid)Line(x1,y1,x2,y2 float64) {
	u1,v1,oob1 := bg.UV(x1,y1)
	u2,v2,oob2 := bg.UV(x2,y2)

	if !bg.Clip || (!oob1 && !oob2) {
		bg.Fpdf.MoveTo(u1,v1)
		bg.Fpdf.LineTo(u2,v2)
	}

	bg.DrawPath("D")
}

func (bg BaseGrid)Polyline(pts []castviz.Pixel) {
	if len(pts) < 2 { return }
	bg.MoveTo(pts[0].X, pts[0].Y)
	for _,p := range pts[1:] {
		bg.LineTo(p.X, p.Y)
	}
	bg.DrawPath("D")
}

func (bg BaseGrid)Circle(x,y,r float64) {
	u,v,oob := bg.UV(x,y)
	if bg.Clip && oob { return }
	bg.Fpdf.Circle(u, v, bg.Scale(r), "F")
}

// }}}

// {{{ bg.DrawAxes

// DrawAxes draws the frame's axes along the bottom and left of its plot area,
// with tick labels at round data values.
func (bg BaseGrid)DrawAxes(f castviz.Frame, nTicks int) {
	bg.SetFont("Arial", "", 6)
	bg.SetLineWidth(0.2)
	bg.MaybeSetDrawColor()
	bg.MaybeSetTextColor()

	plot := f.PlotRect()
	bg.Line(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y)
	bg.Line(plot.Min.X, plot.Min.Y, plot.Min.X, plot.Max.Y)

	for _,val := range f.XTicks(nTicks) {
		x := f.X.Scale(val)
		bg.Line(x, plot.Max.Y, x, plot.Max.Y+4)
		bg.MoveTo(x, plot.Max.Y+4)
		bg.MoveBy(-5, 0)  // Offset in MM
		bg.CellFormat(10, 3, fmt.Sprintf("%g", val), "", 0, "C", false, 0, "")
	}

	for _,val := range f.YTicks(nTicks) {
		y := f.Y.Scale(val)
		bg.Line(plot.Min.X-4, y, plot.Min.X, y)
		bg.MoveTo(plot.Min.X-4, y)
		bg.MoveBy(-13, -1.5)  // Offset in MM
		bg.CellFormat(12, 3, fmt.Sprintf("%g", val), "", 0, "R", false, 0, "")
	}
	bg.DrawPath("D")
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
