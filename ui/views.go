// Package ui holds the view adapters: each one redraws its own marks on a
// canvas from the full station list and the current selection.
package ui

import(
	"fmt"
	"strings"
	"unicode"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
	"github.com/skypies/castviz/selection"
)

// A View redraws its marks onto a surface. It must remove its previous marks
// first, and must not touch anything but the surface.
type View interface {
	Render(s scene.Surface, all []castviz.Station, sel selection.Result)
}

type Style struct {
	PointRadius float64     `yaml:"point_radius"`
	PairRadius  float64     `yaml:"pair_radius"`
	Scheme      ColorScheme `yaml:"-"`
}

func DefaultStyle() Style { return Style{PointRadius:3, PairRadius:2} }

// {{{ MapView

// MapView draws one point per station.
type MapView struct {
	Radius float64
}

func (v MapView)Render(s scene.Surface, all []castviz.Station, sel selection.Result) {
	s.RemoveKind(scene.KindCast)
	for _,st := range all {
		s.AddPoint(scene.KindCast, st.ID, st.Pixel, v.Radius, scene.StateOf(sel.Has(st.ID)))
	}
}

// DrawCoast draws the coastline; it never changes, so it is drawn once.
func DrawCoast(s scene.Surface, ds *castviz.Dataset) {
	s.RemoveKind(scene.KindCoast)
	for _,line := range ds.Coast {
		s.AddPolyline(scene.KindCoast, "", line, scene.Plain)
	}
}

// }}}
// {{{ ProfileView

// ProfileView draws one line per station with samples for the field; a
// station with a single sample gets a point instead. The selected marks are
// drawn last, so they sit on top.
type ProfileView struct {
	Field   string
	Dataset *castviz.Dataset
	Radius  float64 // for single-sample profiles
}

func (v ProfileView)Render(s scene.Surface, all []castviz.Station, sel selection.Result) {
	s.RemoveKind(scene.KindProfile)
	for _,state := range []scene.State{scene.Plain, scene.Emphasized} {
		for _,st := range all {
			if scene.StateOf(sel.Has(st.ID)) != state { continue }
			p := v.Dataset.Profile(v.Field, st.ID)
			switch len(p.Points) {
			case 0:
			case 1:  s.AddPoint(scene.KindProfile, st.ID, p.Points[0], v.Radius, state)
			default: s.AddPolyline(scene.KindProfile, st.ID, p.Points, state)
			}
		}
	}
}

// }}}
// {{{ ModObsView

// ModObsView plots model values against observed values for a field, one
// point per sample, emphasizing the samples from selected casts.
type ModObsView struct {
	Field   string
	Dataset *castviz.Dataset
	Radius  float64
}

func (v ModObsView)Render(s scene.Surface, all []castviz.Station, sel selection.Result) {
	s.RemoveKind(scene.KindModObs)
	pairs := v.Dataset.Pairs[v.Field]
	for _,state := range []scene.State{scene.Plain, scene.Emphasized} {
		for _,p := range pairs {
			if scene.StateOf(sel.Has(p.Cast)) != state { continue }
			s.AddPoint(scene.KindModObs, p.Cast, p.Pixel, v.Radius, state)
		}
	}
}

// DrawUnity draws the model==obs diagonal across a square frame.
func DrawUnity(s scene.Surface, f castviz.Frame) {
	s.RemoveKind(scene.KindUnity)
	lo,hi := f.Spec.X0, f.Spec.X1
	s.AddPolyline(scene.KindUnity, "", []castviz.Pixel{f.Project(lo, lo), f.Project(hi, hi)}, scene.Plain)
}

// }}}

// {{{ Panel, NewPanels

// Panel is a view and the canvas it draws on.
type Panel struct {
	Canvas *scene.Canvas
	View   View
}

func (p Panel)Subscriber(all []castviz.Station) selection.Subscriber {
	return Bind(p.View, p.Canvas, all)
}

// Bind makes a view redraw its canvas on every published result.
func Bind(v View, c *scene.Canvas, all []castviz.Station) selection.Subscriber {
	return selection.SubscriberFunc(func(r selection.Result) error {
		v.Render(c, all, r)
		return nil
	})
}

// NewPanels lays out the map, a profile plot per field, and (when there is
// model data) a model-vs-obs plot per field.
func NewPanels(ds *castviz.Dataset, st Style, title string) []Panel {
	palette := st.Scheme.Palette()

	mapCanvas := scene.NewCanvas("map", title, ds.MapFrame)
	mapCanvas.XLabel, mapCanvas.YLabel = "Longitude", "Latitude"
	mapCanvas.Palette = palette
	DrawCoast(mapCanvas, ds)
	panels := []Panel{{Canvas:mapCanvas, View:MapView{Radius:st.PointRadius}}}

	for _,field := range ds.Fields {
		c := scene.NewCanvas(CanvasID("profile", field.Name), field.String(), ds.FieldFrames[field.Name])
		c.XLabel, c.YLabel = field.String(), "Z (m)"
		c.Palette = palette
		panels = append(panels, Panel{Canvas:c, View:ProfileView{Field:field.Name, Dataset:ds,
			Radius:st.PointRadius}})
	}

	if ds.HasModel() {
		for _,field := range ds.Fields {
			f := ds.ModObs[field.Name]
			c := scene.NewCanvas(CanvasID("modobs", field.Name), field.String()+": model vs obs", f)
			c.XLabel, c.YLabel = "Obs "+field.String(), "Mod "+field.String()
			c.Palette = palette
			DrawUnity(c, f)
			panels = append(panels, Panel{Canvas:c, View:ModObsView{Field:field.Name, Dataset:ds,
				Radius:st.PairRadius}})
		}
	}
	return panels
}

// }}}
// {{{ CanvasID

// CanvasID makes a URL-safe id, e.g. ("profile", "DO (uM)") -> "profile-do-um".
func CanvasID(prefix, name string) string {
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 { return prefix }
	return fmt.Sprintf("%s-%s", prefix, strings.Join(parts, "-"))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
