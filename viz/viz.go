// Package viz binds user events to the selection engine. Every event runs the
// same sequence under one lock: update a predicate, recompute the selection,
// then have every view redraw its canvas.
package viz

import(
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
	"github.com/skypies/castviz/selection"
	"github.com/skypies/castviz/ui"
)

// ErrNotReady is returned (or implied, by empty results) before the first
// dataset has been loaded.
var ErrNotReady = fmt.Errorf("viz: no dataset loaded yet")

// Logger is how a Viz reports reloads and render failures.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// StdLogger logs through a *log.Logger, or the standard logger if nil.
type StdLogger struct{ *log.Logger }

func (l StdLogger)printf(format string, args ...interface{}) {
	if l.Logger != nil {
		l.Logger.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}
func (l StdLogger)Infof(format string, args ...interface{}) { l.printf(format, args...) }
func (l StdLogger)Errorf(format string, args ...interface{}) { l.printf("ERROR: "+format, args...) }

// Loader fetches the raw records for a year; backend.Loader is one.
type Loader interface {
	Load(ctx context.Context, year int) (castviz.Input, error)
}

type Options struct {
	Title   string
	Layout  castviz.Layout
	Style   ui.Style
	Years   []int // if set, the only years YearChange accepts
	Log     Logger
}

// {{{ Viz

type Viz struct {
	sync.Mutex
	opt       Options
	loader    Loader

	// Predicate state lives here, not in the engine, so it survives a reload
	region    *castviz.Rect
	month     castviz.Month

	gen       int // bumped as each reload starts
	installed int // gen of the dataset in place; an older reload never replaces it
	year      int
	ds        *castviz.Dataset
	engine    *selection.Engine
	disp      selection.Dispatcher
	panels    []ui.Panel
	last      selection.Result
}

func New(l Loader, opt Options) *Viz {
	if opt.Log == nil { opt.Log = StdLogger{} }
	return &Viz{opt:opt, loader:l}
}

func (v *Viz)String() string {
	v.Lock()
	defer v.Unlock()
	if v.ds == nil { return "viz[not loaded]" }
	return fmt.Sprintf("viz[%d, %d stations, %s -> %d selected]", v.year, len(v.ds.Stations),
		v.engine, v.last.Len())
}

// }}}
// {{{ v.SetInitial

// SetInitial sets the predicates the first load will apply. It publishes
// nothing.
func (v *Viz)SetInitial(region *castviz.Rect, m castviz.Month) {
	v.Lock()
	defer v.Unlock()
	v.region = copyRect(region)
	v.month = m
}

func copyRect(r *castviz.Rect) *castviz.Rect {
	if r == nil { return nil }
	cp := *r
	return &cp
}

// }}}

// {{{ v.BrushEnd

// BrushEnd replaces the spatial predicate (nil clears it) and publishes the
// new selection. Before the first load it only records the predicate.
func (v *Viz)BrushEnd(r *castviz.Rect) selection.Result {
	v.Lock()
	defer v.Unlock()
	v.region = copyRect(r)
	if v.engine == nil { return selection.NewResult() }
	v.engine.SetRegion(v.region)
	return v.recomputeAndPublish()
}

// }}}
// {{{ v.MonthChange

func (v *Viz)MonthChange(m castviz.Month) selection.Result {
	v.Lock()
	defer v.Unlock()
	v.month = m
	if v.engine == nil { return selection.NewResult() }
	v.engine.SetMonth(m)
	return v.recomputeAndPublish()
}

// }}}
// {{{ v.recomputeAndPublish

// Caller must hold the lock.
func (v *Viz)recomputeAndPublish() selection.Result {
	v.last = v.engine.Compute()
	if err := v.disp.Publish(v.last); err != nil {
		v.opt.Log.Errorf("viz: publish %s: %v", v.last, err)
	}
	return v.last
}

// }}}
// {{{ v.YearChange, v.Load

// Load is the first YearChange.
func (v *Viz)Load(ctx context.Context, year int) error { return v.YearChange(ctx, year) }

// YearChange fetches and normalizes a new year's data without holding the
// lock, then swaps it in, re-applies the current predicates and publishes.
// If it fails, the previous dataset stays in place. A reload that finishes
// after a later-started one has already been installed is discarded; a later
// reload that failed does not count.
func (v *Viz)YearChange(ctx context.Context, year int) error {
	if !v.allowsYear(year) {
		return fmt.Errorf("viz: year %d not available", year)
	}

	v.Lock()
	v.gen++
	gen := v.gen
	v.Unlock()

	in,err := v.loader.Load(ctx, year)
	if err != nil { return fmt.Errorf("viz: load %d: %w", year, err) }

	ds,err := castviz.Normalize(in, v.opt.Layout)
	if err != nil { return fmt.Errorf("viz: normalize %d: %w", year, err) }

	panels := ui.NewPanels(ds, v.opt.Style, fmt.Sprintf("%s %d", v.opt.Title, year))
	engine := selection.New(ds.Stations)

	v.Lock()
	defer v.Unlock()
	if gen < v.installed {
		v.opt.Log.Infof("viz: year %d superseded by a later reload, discarding", year)
		return nil
	}
	v.installed = gen

	engine.SetRegion(v.region)
	engine.SetMonth(v.month)
	v.disp.Reset()
	for _,p := range panels {
		v.disp.Subscribe(p.Subscriber(ds.Stations))
	}
	v.year, v.ds, v.engine, v.panels = year, ds, engine, panels

	v.opt.Log.Infof("viz: year %d: %d stations, %d panels; set aside: %s", year, len(ds.Stations),
		len(panels), ds.Stats)
	v.recomputeAndPublish()
	return nil
}

func (v *Viz)allowsYear(year int) bool {
	if year <= 0 { return false }
	if len(v.opt.Years) == 0 { return true }
	for _,y := range v.opt.Years {
		if y == year { return true }
	}
	return false
}

// }}}

// {{{ Snapshots

func (v *Viz)Ready() bool {
	v.Lock()
	defer v.Unlock()
	return v.ds != nil
}

// State is a snapshot of the interaction state, for transports to report.
type State struct {
	Ready     bool
	Year      int
	Month     castviz.Month
	Region    *castviz.Rect
	Selection selection.Result
	Stations  int
	Stats     castviz.Stats
}

func (s State)Label() string {
	if s.Month == castviz.AnyMonth { return fmt.Sprintf("%s, %d", s.Month, s.Year) }
	return s.Month.Label(s.Year)
}

func (v *Viz)State() State {
	v.Lock()
	defer v.Unlock()
	st := State{
		Ready:     v.ds != nil,
		Year:      v.year,
		Month:     v.month,
		Region:    copyRect(v.region),
		Selection: v.last,
	}
	if v.ds != nil {
		st.Stations = len(v.ds.Stations)
		st.Stats = v.ds.Stats
	}
	return st
}

// Canvas returns a copy of the named canvas, safe to render while events
// keep arriving.
func (v *Viz)Canvas(id string) (*scene.Canvas, bool) {
	v.Lock()
	defer v.Unlock()
	for _,p := range v.panels {
		if p.Canvas.ID == id { return p.Canvas.Clone(), true }
	}
	return nil, false
}

// Canvases returns copies of every canvas, in panel order.
func (v *Viz)Canvases() []*scene.Canvas {
	v.Lock()
	defer v.Unlock()
	ret := []*scene.Canvas{}
	for _,p := range v.panels {
		ret = append(ret, p.Canvas.Clone())
	}
	return ret
}

// Dataset is the current dataset, which is never modified; nil before the
// first load.
func (v *Viz)Dataset() *castviz.Dataset {
	v.Lock()
	defer v.Unlock()
	return v.ds
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
