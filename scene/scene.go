// Package scene is a retained-mode drawing surface: a canvas with two linear
// axes, holding point and polyline marks in pixel space. The svg and fpdf
// packages turn a canvas into something you can look at.
package scene

import(
	"fmt"

	pgeo "github.com/paulmach/go.geo"
	"github.com/skypies/castviz"
)

// Kind groups marks so that a view can clear just its own.
type Kind int
const(
	KindCoast Kind = iota
	KindCast
	KindProfile
	KindModObs
	KindUnity
)

func (k Kind)String() string {
	switch k {
	case KindCoast:   return "coast"
	case KindCast:    return "cast"
	case KindProfile: return "profile"
	case KindModObs:  return "modobs"
	case KindUnity:   return "unity"
	default:          return fmt.Sprintf("kind%d", int(k))
	}
}

// State is the binary visual state of a mark.
type State int
const(
	Plain State = iota
	Emphasized
)

func (s State)String() string {
	if s == Emphasized { return "emphasized" }
	return "plain"
}

func StateOf(selected bool) State {
	if selected { return Emphasized }
	return Plain
}

// {{{ Mark

type Shape int
const(
	ShapePoint Shape = iota
	ShapePolyline
)

type Mark struct {
	Kind   Kind
	Shape  Shape
	State  State
	Cast   castviz.CastID   // blank for marks that are not about one cast
	Points []castviz.Pixel  // a single point for ShapePoint
	Radius float64
}

func (m Mark)String() string {
	return fmt.Sprintf("%s/%s[%s] %d pts", m.Kind, m.Cast, m.State, len(m.Points))
}

// }}}

// Surface is what the views draw onto.
type Surface interface {
	AddPoint(k Kind, id castviz.CastID, at castviz.Pixel, radius float64, s State)
	AddPolyline(k Kind, id castviz.CastID, pts []castviz.Pixel, s State)
	RemoveKind(k Kind) int
}

// {{{ Canvas

// Canvas is the stock Surface. Marks are kept in drawing order.
type Canvas struct {
	ID       string
	Title    string
	XLabel   string
	YLabel   string
	Frame    castviz.Frame
	Palette  Palette

	Marks    []Mark
	Revision int // bumped by every change
}

func NewCanvas(id, title string, f castviz.Frame) *Canvas {
	return &Canvas{
		ID:      id,
		Title:   title,
		Frame:   f,
		Palette: DefaultPalette(),
		Marks:   []Mark{},
	}
}

// }}}
// {{{ c.AddPoint, c.AddPolyline, c.RemoveKind

func (c *Canvas)AddPoint(k Kind, id castviz.CastID, at castviz.Pixel, radius float64, s State) {
	c.Marks = append(c.Marks, Mark{Kind:k, Shape:ShapePoint, State:s, Cast:id,
		Points:[]castviz.Pixel{at}, Radius:radius})
	c.Revision++
}

// AddPolyline ignores lines with fewer than two points.
func (c *Canvas)AddPolyline(k Kind, id castviz.CastID, pts []castviz.Pixel, s State) {
	if len(pts) < 2 { return }
	copied := make([]castviz.Pixel, len(pts))
	copy(copied, pts)
	c.Marks = append(c.Marks, Mark{Kind:k, Shape:ShapePolyline, State:s, Cast:id, Points:copied})
	c.Revision++
}

func (c *Canvas)RemoveKind(k Kind) int {
	kept := c.Marks[:0]
	for _,m := range c.Marks {
		if m.Kind != k { kept = append(kept, m) }
	}
	n := len(c.Marks) - len(kept)
	c.Marks = kept
	if n > 0 { c.Revision++ }
	return n
}

// }}}
// {{{ c.Count, c.Clone, c.Bound

// Count returns how many marks of the kind are in the given state.
func (c *Canvas)Count(k Kind, s State) int {
	n := 0
	for _,m := range c.Marks {
		if m.Kind == k && m.State == s { n++ }
	}
	return n
}

// Clone is a deep copy, for rendering outside whatever lock guards the canvas.
func (c *Canvas)Clone() *Canvas {
	clone := *c
	clone.Marks = make([]Mark, len(c.Marks))
	for i,m := range c.Marks {
		m.Points = append([]castviz.Pixel{}, m.Points...)
		clone.Marks[i] = m
	}
	clone.Palette = Palette{}
	for k,v := range c.Palette { clone.Palette[k] = v }
	return &clone
}

// Bound of all the marks of a kind; nil when there are none.
func (c *Canvas)Bound(k Kind) *pgeo.Bound {
	var b *pgeo.Bound
	for _,m := range c.Marks {
		if m.Kind != k { continue }
		for _,p := range m.Points {
			pt := pgeo.NewPoint(p.X, p.Y)
			if b == nil {
				b = pgeo.NewBoundFromPoints(pt, pt)
			} else {
				b.Extend(pt)
			}
		}
	}
	return b
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
