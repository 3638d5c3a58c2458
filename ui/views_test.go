package ui

import(
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
	"github.com/skypies/castviz/selection"
)

func testDataset(t *testing.T, withModel bool) *castviz.Dataset {
	t.Helper()
	decode := func(s string) castviz.Records {
		recs,err := castviz.DecodeRecords([]byte(s))
		if err != nil { t.Fatal(err) }
		return recs
	}

	in := castviz.Input{
		Coast: decode(`[{"x":["-126","-124"],"y":["44","46"]}]`),
		Info:  decode(`{"cid":[1,2,3],"lon":[-125,-124,-124.5],"lat":[45,46,44.5],
		                "time":["2017-03-01","2017-06-01","2017-06-15"]}`),
		Obs:   decode(`{"cid":[1,1,2,3],"z":[-10,-50,-5,-5],"DO (uM)":[200,150,null,210]}`),
	}
	if withModel {
		in.Mod = decode(`{"cid":[1,1,2,3],"DO (uM)":[190,160,170,null]}`)
	}
	layout := castviz.Layout{
		Map: castviz.FrameSpec{X0:-126, X1:-124, Y0:44, Y1:46, W0:200, H0:200, Margin:10},
		Fields: []castviz.Field{
			{Name:"DO (uM)", Frame:castviz.FrameSpec{X0:0, X1:400, Y0:-100, Y1:0, W0:100, H0:100, Margin:5}},
		},
	}
	ds,err := castviz.Normalize(in, layout)
	if err != nil { t.Fatal(err) }
	return ds
}

type markSummary struct {
	Kind  scene.Kind
	Cast  castviz.CastID
	State scene.State
}

func summarize(c *scene.Canvas, k scene.Kind) []markSummary {
	out := []markSummary{}
	for _,m := range c.Marks {
		if m.Kind == k { out = append(out, markSummary{m.Kind, m.Cast, m.State}) }
	}
	return out
}

func TestMapView(t *testing.T) {
	ds := testDataset(t, false)
	c := scene.NewCanvas("map", "", ds.MapFrame)
	DrawCoast(c, ds)

	v := MapView{Radius:3}
	v.Render(c, ds.Stations, selection.NewResult("2"))
	v.Render(c, ds.Stations, selection.NewResult("2")) // full redraw, not accumulation

	expected := []markSummary{
		{scene.KindCast, "1", scene.Plain},
		{scene.KindCast, "2", scene.Emphasized},
		{scene.KindCast, "3", scene.Plain},
	}
	if diff := cmp.Diff(expected, summarize(c, scene.KindCast)); diff != "" {
		t.Errorf("cast marks mismatch (-want +got):\n%s", diff)
	}
	if n := len(summarize(c, scene.KindCoast)); n != 1 {
		t.Errorf("the map view should leave the coast alone, found %d coast marks", n)
	}
}

func TestProfileView(t *testing.T) {
	ds := testDataset(t, false)
	c := scene.NewCanvas("p", "", ds.FieldFrames["DO (uM)"])

	v := ProfileView{Field:"DO (uM)", Dataset:ds, Radius:2}
	v.Render(c, ds.Stations, selection.NewResult("1"))

	// Station 2 has no DO, station 3 a single sample (a point); station 1 is
	// selected, so drawn last.
	expected := []markSummary{
		{scene.KindProfile, "3", scene.Plain},
		{scene.KindProfile, "1", scene.Emphasized},
	}
	if diff := cmp.Diff(expected, summarize(c, scene.KindProfile)); diff != "" {
		t.Errorf("profile marks mismatch (-want +got):\n%s", diff)
	}
	shapes := map[castviz.CastID]scene.Shape{}
	for _,m := range c.Marks { shapes[m.Cast] = m.Shape }
	if shapes["3"] != scene.ShapePoint || shapes["1"] != scene.ShapePolyline {
		t.Errorf("unexpected shapes %v", shapes)
	}
	if c.Marks[0].Radius != 2 {
		t.Errorf("single-sample point radius: got %v", c.Marks[0].Radius)
	}

	v.Render(c, ds.Stations, selection.NewResult())
	if c.Count(scene.KindProfile, scene.Emphasized) != 0 || c.Count(scene.KindProfile, scene.Plain) != 2 {
		t.Errorf("after deselecting: %v", c.Marks)
	}
}

func TestModObsView(t *testing.T) {
	ds := testDataset(t, true)
	f := ds.ModObs["DO (uM)"]
	c := scene.NewCanvas("m", "", f)
	DrawUnity(c, f)

	v := ModObsView{Field:"DO (uM)", Dataset:ds, Radius:2}
	v.Render(c, ds.Stations, selection.NewResult("1"))

	// Pairs exist for records 0 and 1 (cast 1) only
	expected := []markSummary{
		{scene.KindModObs, "1", scene.Emphasized},
		{scene.KindModObs, "1", scene.Emphasized},
	}
	if diff := cmp.Diff(expected, summarize(c, scene.KindModObs)); diff != "" {
		t.Errorf("modobs marks mismatch (-want +got):\n%s", diff)
	}

	unity := summarize(c, scene.KindUnity)
	if len(unity) != 1 {
		t.Fatalf("expected one unity line, got %v", unity)
	}
	for _,m := range c.Marks {
		if m.Kind != scene.KindUnity { continue }
		a,b := m.Points[0], m.Points[1]
		if a.X != f.Spec.Margin || b.Y != f.Spec.Margin {
			t.Errorf("unity line should run corner to corner, got %v", m.Points)
		}
	}
}

func TestNewPanelsAndBind(t *testing.T) {
	ds := testDataset(t, true)
	panels := NewPanels(ds, DefaultStyle(), "Casts")

	ids := []string{}
	for _,p := range panels { ids = append(ids, p.Canvas.ID) }
	if diff := cmp.Diff([]string{"map", "profile-do-um", "modobs-do-um"}, ids); diff != "" {
		t.Errorf("panel ids mismatch (-want +got):\n%s", diff)
	}

	d := selection.Dispatcher{}
	for _,p := range panels { d.Subscribe(p.Subscriber(ds.Stations)) }

	e := selection.New(ds.Stations)
	e.SetMonth(6)
	if err := d.Publish(e.Compute()); err != nil { t.Fatal(err) }

	if n := panels[0].Canvas.Count(scene.KindCast, scene.Emphasized); n != 2 {
		t.Errorf("expected 2 June casts emphasized on the map, got %d", n)
	}
	if n := panels[1].Canvas.Count(scene.KindProfile, scene.Plain); n != 1 {
		t.Errorf("expected cast 1's profile plain, got %d", n)
	}
	if n := panels[1].Canvas.Count(scene.KindProfile, scene.Emphasized); n != 1 {
		t.Errorf("expected cast 3's single sample emphasized, got %d", n)
	}
}

func TestCanvasID(t *testing.T) {
	tests := map[string]string{
		"CT":       "profile-ct",
		"DO (uM)":  "profile-do-um",
		"NO3 (uM)": "profile-no3-um",
		"()":       "profile",
	}
	for in,expected := range tests {
		if actual := CanvasID("profile", in); actual != expected {
			t.Errorf("%q: expected %q, got %q", in, expected, actual)
		}
	}
}

func TestColorScheme(t *testing.T) {
	if ParseColorScheme("contrast") != ByContrast || ParseColorScheme("bogus") != ByState {
		t.Errorf("ParseColorScheme")
	}
	ink := ByContrast.Palette().Ink(scene.KindProfile, scene.Emphasized)
	if ink.Color != "#000000" {
		t.Errorf("contrast emphasis should be black, got %+v", ink)
	}
}
