package viz

import(
	"context"
	"fmt"
	"log"
	"io"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
	"github.com/skypies/castviz/selection"
	"github.com/skypies/castviz/ui"
)

var testLayout = castviz.Layout{
	Map: castviz.FrameSpec{X0:-126, X1:-124, Y0:44, Y1:46, W0:200, H0:200, Margin:10},
	Fields: []castviz.Field{
		{Name:"CT", Frame:castviz.FrameSpec{X0:0, X1:20, Y0:-100, Y1:0, W0:100, H0:100}},
	},
}

var testYears = map[int]string{
	// Cast 1 at pixel (110,110) in March; cast 2 at (210,10) in June
	2017: `[
		{"cid": 1, "lon": -125, "lat": 45, "time": "2017-03-10"},
		{"cid": 2, "lon": -124, "lat": 46, "time": "2017-06-02"}
	]`,
	// Cast 7 at (110,110) in June
	2018: `[{"cid": 7, "lon": -125, "lat": 45, "time": "2018-06-20"}]`,
}

// {{{ fakeLoader

type fakeLoader struct {
	sync.Mutex
	gates   map[int]chan struct{} // if present, Load blocks until closed
	entered chan int
}

func (l *fakeLoader)Load(ctx context.Context, year int) (castviz.Input, error) {
	l.Lock()
	gate := l.gates[year]
	l.Unlock()
	if gate != nil {
		l.entered <- year
		<-gate
	}

	info,exists := testYears[year]
	if !exists { return castviz.Input{}, fmt.Errorf("no data for %d", year) }
	recs,err := castviz.DecodeRecords([]byte(info))
	if err != nil { return castviz.Input{}, err }

	obs := castviz.Records{}
	for i,r := range recs {
		obs = append(obs, castviz.Record{Key:fmt.Sprintf("%d", i), Fields:map[string]interface{}{
			"cid": r.Fields["cid"], "z": -10.0, "CT": 5.0,
		}})
	}
	return castviz.Input{Info:recs, Obs:obs}, nil
}

// }}}

func newTestViz(years ...int) (*Viz, *fakeLoader) {
	l := &fakeLoader{gates:map[int]chan struct{}{}, entered:make(chan int, 1)}
	v := New(l, Options{
		Title:  "test",
		Layout: testLayout,
		Style:  ui.DefaultStyle(),
		Years:  years,
		Log:    StdLogger{log.New(io.Discard, "", 0)},
	})
	return v, l
}

func ids(strs ...castviz.CastID) []castviz.CastID {
	if strs == nil { return []castviz.CastID{} }
	return strs
}

func rectp(x0, y0, x1, y1 float64) *castviz.Rect {
	r := castviz.NewRect(x0, y0, x1, y1)
	return &r
}

func TestNotReady(t *testing.T) {
	v,_ := newTestViz()
	if v.Ready() {
		t.Errorf("should not be ready before a load")
	}
	if r := v.BrushEnd(rectp(0, 0, 300, 300)); r.Len() != 0 {
		t.Errorf("expected an empty result before a load, got %s", r)
	}
	if _,ok := v.Canvas("map"); ok {
		t.Errorf("expected no canvases before a load")
	}
	// The predicate is kept for when the data arrives
	if st := v.State(); st.Region == nil || st.Ready {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestBindings(t *testing.T) {
	v,_ := newTestViz()
	if err := v.Load(context.Background(), 2017); err != nil { t.Fatal(err) }
	if !v.Ready() { t.Fatalf("not ready after load") }

	tests := []struct{
		name     string
		event    func() selection.Result
		expected []castviz.CastID
	}{
		{"initial",         func() selection.Result { return v.State().Selection },    ids("1","2")},
		{"brush cast 1",    func() selection.Result { return v.BrushEnd(rectp(100, 100, 120, 120)) }, ids("1")},
		{"june",            func() selection.Result { return v.MonthChange(6) },       ids()},
		{"all months",      func() selection.Result { return v.MonthChange(castviz.AnyMonth) }, ids("1")},
		{"clear brush",     func() selection.Result { return v.BrushEnd(nil) },        ids("1","2")},
		{"june again",      func() selection.Result { return v.MonthChange(6) },       ids("2")},
		{"inverted brush",  func() selection.Result { return v.BrushEnd(rectp(300, 0, 0, 300)) }, ids()},
		{"bad month",       func() selection.Result { v.BrushEnd(nil); return v.MonthChange(13) }, ids()},
	}

	for _,test := range tests {
		r := test.event()
		if diff := cmp.Diff(test.expected, r.IDs); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}

		// Every view has redrawn from the same result
		c,ok := v.Canvas("map")
		if !ok { t.Fatalf("%s: no map canvas", test.name) }
		if n := c.Count(scene.KindCast, scene.Emphasized); n != r.Len() {
			t.Errorf("%s: map has %d emphasized, expected %d", test.name, n, r.Len())
		}
		p,_ := v.Canvas("profile-ct")
		if n := p.Count(scene.KindProfile, scene.Emphasized); n != r.Len() {
			t.Errorf("%s: profile has %d emphasized, expected %d", test.name, n, r.Len())
		}
	}
}

func TestSetInitial(t *testing.T) {
	v,_ := newTestViz()
	v.SetInitial(rectp(200, 0, 220, 20), 6)
	if err := v.Load(context.Background(), 2017); err != nil { t.Fatal(err) }

	st := v.State()
	if diff := cmp.Diff(ids("2"), st.Selection.IDs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if st.Label() != "June 2017" {
		t.Errorf("unexpected label %q", st.Label())
	}
}

func TestYearChange(t *testing.T) {
	v,_ := newTestViz(2017, 2018, 2019)
	ctx := context.Background()
	if err := v.Load(ctx, 2017); err != nil { t.Fatal(err) }
	v.BrushEnd(rectp(100, 100, 120, 120))
	v.MonthChange(6)

	// The predicates carry over to the new year's stations
	if err := v.YearChange(ctx, 2018); err != nil { t.Fatal(err) }
	st := v.State()
	if diff := cmp.Diff(ids("7"), st.Selection.IDs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if st.Year != 2018 || st.Stations != 1 {
		t.Errorf("unexpected state %+v", st)
	}
	c,_ := v.Canvas("map")
	if n := len(c.Marks); n != 1 {
		t.Errorf("expected only the new year's marks, got %d", n)
	}

	// A failed load leaves the previous year in place
	if err := v.YearChange(ctx, 2019); err == nil {
		t.Errorf("expected an error for a year with no data")
	}
	if err := v.YearChange(ctx, 1999); err == nil {
		t.Errorf("expected an error for a year not on offer")
	}
	if st := v.State(); st.Year != 2018 || !st.Selection.Has("7") {
		t.Errorf("state changed after failed reloads: %+v", st)
	}
}

func TestStaleReloadDiscarded(t *testing.T) {
	v,l := newTestViz()
	ctx := context.Background()

	gate := make(chan struct{})
	l.Lock()
	l.gates[2017] = gate
	l.Unlock()

	slow := make(chan error)
	go func() { slow <- v.YearChange(ctx, 2017) }()
	<-l.entered

	if err := v.YearChange(ctx, 2018); err != nil { t.Fatal(err) }
	close(gate)
	if err := <-slow; err != nil { t.Fatal(err) }

	if st := v.State(); st.Year != 2018 {
		t.Errorf("stale reload won: year %d", st.Year)
	}
}

func TestFailedLaterReloadKeepsEarlierOne(t *testing.T) {
	v,l := newTestViz()
	ctx := context.Background()

	gate := make(chan struct{})
	l.Lock()
	l.gates[2017] = gate
	l.Unlock()

	first := make(chan error)
	go func() { first <- v.YearChange(ctx, 2017) }()
	<-l.entered

	// Started later, but fails; it must not cost us the 2017 load
	if err := v.YearChange(ctx, 2019); err == nil {
		t.Fatalf("expected an error for a year with no data")
	}
	close(gate)
	if err := <-first; err != nil { t.Fatal(err) }

	st := v.State()
	if !st.Ready || st.Year != 2017 {
		t.Errorf("2017 load was dropped: ready=%v year=%d", st.Ready, st.Year)
	}
}

func TestOlderReloadLandingLastIsDiscarded(t *testing.T) {
	v,l := newTestViz()
	ctx := context.Background()
	if err := v.Load(ctx, 2017); err != nil { t.Fatal(err) }

	gate := make(chan struct{})
	l.Lock()
	l.gates[2018] = gate
	l.Unlock()

	older := make(chan error)
	go func() { older <- v.YearChange(ctx, 2018) }()
	<-l.entered

	l.Lock()
	delete(l.gates, 2018)
	l.Unlock()
	if err := v.YearChange(ctx, 2017); err != nil { t.Fatal(err) }
	close(gate)
	if err := <-older; err != nil { t.Fatal(err) }

	if st := v.State(); st.Year != 2017 {
		t.Errorf("older reload replaced a newer one: year %d", st.Year)
	}
}

func TestConcurrentEvents(t *testing.T) {
	v,_ := newTestViz()
	if err := v.Load(context.Background(), 2017); err != nil { t.Fatal(err) }

	var wg sync.WaitGroup
	for i:=0; i<50; i++ {
		wg.Add(2)
		go func(i int) { defer wg.Done(); v.MonthChange(castviz.Month(i%13)) }(i)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 { v.BrushEnd(nil) } else { v.BrushEnd(rectp(0, 0, 150, 150)) }
		}(i)
	}
	wg.Wait()

	// Whatever order the events landed in, the last published result matches
	// the final predicates, and so does every canvas.
	st := v.State()
	e := selection.New(v.Dataset().Stations)
	e.SetRegion(st.Region)
	e.SetMonth(st.Month)
	if diff := cmp.Diff(e.Compute().IDs, st.Selection.IDs); diff != "" {
		t.Errorf("published result is stale (-want +got):\n%s", diff)
	}
	c,_ := v.Canvas("map")
	if n := c.Count(scene.KindCast, scene.Emphasized); n != st.Selection.Len() {
		t.Errorf("map shows %d, selection has %d", n, st.Selection.Len())
	}
}

func TestCanvasesAreCopies(t *testing.T) {
	v,_ := newTestViz()
	if err := v.Load(context.Background(), 2017); err != nil { t.Fatal(err) }

	cs := v.Canvases()
	if len(cs) != 2 || cs[0].ID != "map" || cs[1].ID != "profile-ct" {
		t.Fatalf("unexpected canvases %v", cs)
	}
	cs[0].RemoveKind(scene.KindCast)
	if c,_ := v.Canvas("map"); len(c.Marks) != 2 {
		t.Errorf("modifying a snapshot changed the live canvas")
	}
}
