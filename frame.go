package castviz

import(
	"fmt"
	"math"

	pgeo "github.com/paulmach/go.geo"
)

// Pixel is a position in a canvas, origin top-left, y growing downwards.
type Pixel struct {
	X, Y float64
}

func (p Pixel)String() string { return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y) }

// {{{ Rect

// Rect is an axis-aligned rectangle in pixel space, as handed back by a brush
// gesture: Min is the top-left corner, Max the bottom-right.
type Rect struct {
	Min, Max Pixel
}

func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{Min:Pixel{x0,y0}, Max:Pixel{x1,y1}}
}

func (r Rect)String() string { return fmt.Sprintf("[%s-%s]", r.Min, r.Max) }

// Inverted rects (min beyond max on either axis, or any non-finite edge) are
// not satisfiable; nothing is inside them.
func (r Rect)Inverted() bool {
	for _,f := range []float64{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y} {
		if math.IsNaN(f) || math.IsInf(f, 0) { return true }
	}
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Contains is inclusive on all four edges.
func (r Rect)Contains(p Pixel) bool {
	if r.Inverted() { return false }
	return r.Bound().Contains(pgeo.NewPoint(p.X, p.Y))
}

func (r Rect)Bound() *pgeo.Bound {
	return pgeo.NewBound(r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
}

// }}}

// FrameSpec describes a plot: a data rectangle [X0,X1]x[Y0,Y1], drawn into a
// W0xH0 pixel area surrounded by Margin pixels on every side. The same shape
// serves the map (lon/lat) and the profile plots (value/depth).
type FrameSpec struct {
	X0     float64 `yaml:"x0" json:"x0"`
	X1     float64 `yaml:"x1" json:"x1"`
	Y0     float64 `yaml:"y0" json:"y0"`
	Y1     float64 `yaml:"y1" json:"y1"`
	W0     float64 `yaml:"w0" json:"w0"`
	H0     float64 `yaml:"h0" json:"h0"`
	Margin float64 `yaml:"margin" json:"margin"`
}

// {{{ MapFrameSpec

// MapFrameSpec builds a lon/lat frame whose height keeps the map roughly
// isotropic at its mid latitude.
func MapFrameSpec(lon0, lon1, lat0, lat1, w0, margin float64) FrameSpec {
	fs := FrameSpec{X0:lon0, X1:lon1, Y0:lat0, Y1:lat1, W0:w0, Margin:margin}
	fs.H0 = fs.AspectHeight()
	return fs
}

func (fs FrameSpec)AspectHeight() float64 {
	dlon, dlat := fs.X1-fs.X0, fs.Y1-fs.Y0
	clat := math.Cos(math.Pi * (fs.Y0+fs.Y1) / (2*180))
	if dlon == 0 || clat == 0 { return 0 }
	return math.Abs(fs.W0 * dlat / (dlon*clat))
}

// }}}

// Frame is a validated FrameSpec: horizontal axis left-to-right, vertical
// axis inverted so that data increasing upwards maps to pixels decreasing.
type Frame struct {
	Spec FrameSpec
	X    Axis
	Y    Axis
}

// {{{ NewFrame

func NewFrame(fs FrameSpec) (Frame, error) {
	if fs.W0 <= 0 || fs.H0 <= 0 {
		return Frame{}, configErrorf("frame", "pixel size %gx%g must be positive", fs.W0, fs.H0)
	}
	if fs.Margin < 0 {
		return Frame{}, configErrorf("frame", "negative margin %g", fs.Margin)
	}
	height := fs.H0 + 2*fs.Margin

	x,err := NewAxis(fs.X0, fs.X1, fs.Margin, fs.Margin+fs.W0)
	if err != nil { return Frame{}, fmt.Errorf("x %w", err) }
	y,err := NewAxis(fs.Y0, fs.Y1, height-fs.Margin, fs.Margin)
	if err != nil { return Frame{}, fmt.Errorf("y %w", err) }

	return Frame{Spec:fs, X:x, Y:y}, nil
}

// }}}
// {{{ f.Project, f.Unproject

func (f Frame)Project(x, y float64) Pixel {
	return Pixel{f.X.Scale(x), f.Y.Scale(y)}
}

func (f Frame)Unproject(p Pixel) (float64, float64) {
	return f.X.Invert(p.X), f.Y.Invert(p.Y)
}

// }}}
// {{{ f.XTicks, f.YTicks

func (f Frame)XTicks(n int) []float64 { return f.X.Ticks(n) }
func (f Frame)YTicks(n int) []float64 { return f.Y.Ticks(n) }

// }}}
// {{{ f.Width, f.Height, f.PlotRect

func (f Frame)Width() float64  { return f.Spec.W0 + 2*f.Spec.Margin }
func (f Frame)Height() float64 { return f.Spec.H0 + 2*f.Spec.Margin }

// PlotRect is the pixel area inside the margins.
func (f Frame)PlotRect() Rect {
	m := f.Spec.Margin
	return NewRect(m, m, m+f.Spec.W0, m+f.Spec.H0)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
