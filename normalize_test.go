package castviz

import(
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testLayout = Layout{
	Map: FrameSpec{X0:-126, X1:-124, Y0:44, Y1:46, W0:200, H0:200, Margin:10},
	Fields: []Field{
		{Name:"CT", Frame:FrameSpec{X0:0,  X1:20, Y0:-100, Y1:0, W0:100, H0:100}},
		{Name:"SA", Frame:FrameSpec{X0:30, X1:40, Y0:-100, Y1:0, W0:100, H0:100}},
	},
}

func mustDecode(t *testing.T, s string) Records {
	t.Helper()
	recs,err := DecodeRecords([]byte(s))
	if err != nil { t.Fatalf("decode %q: %v", s, err) }
	return recs
}

func testInput(t *testing.T) Input {
	return Input{
		Coast: mustDecode(t, `{"0":{"x":["-126","-125","-124"],"y":["44","45","46"]}}`),
		Info: mustDecode(t, `{
			"cid":  {"0": 1,            "1": 2,            "2": 3},
			"lon":  {"0": -125,         "1": -124,         "2": -124.5},
			"lat":  {"0": 45,           "1": 46,           "2": 44.5},
			"time": {"0": "2017-03-10", "1": "2017-06-02", "2": null}
		}`),
		Obs: mustDecode(t, `[
			{"cid": 1,  "z": -10, "CT": 10,   "SA": null},
			{"cid": 1,  "z": -50, "CT": 8,    "SA": 34},
			{"cid": 99, "z": -10, "CT": 11,   "SA": 35},
			{"cid": 2,  "z": -5,  "CT": null, "SA": 33}
		]`),
	}
}

func TestNormalizeStations(t *testing.T) {
	ds,err := Normalize(testInput(t), testLayout)
	if err != nil { t.Fatal(err) }

	if diff := cmp.Diff([]CastID{"1","2","3"}, ds.IDs()); diff != "" {
		t.Errorf("station ids mismatch (-want +got):\n%s", diff)
	}

	tests := []struct{
		id    CastID
		month Month
		pixel Pixel
	}{
		{"1", 3,        Pixel{110, 110}},
		{"2", 6,        Pixel{210, 10}},
		{"3", AnyMonth, Pixel{160, 160}},
	}
	for _,test := range tests {
		s,ok := ds.Station(test.id)
		if !ok {
			t.Errorf("station %s missing", test.id)
			continue
		}
		if s.Month != test.month { t.Errorf("%s: expected month %d, got %d", test.id, test.month, s.Month) }
		if s.Pixel != test.pixel { t.Errorf("%s: expected pixel %s, got %s", test.id, test.pixel, s.Pixel) }
	}

	if _,ok := ds.Station("99"); ok {
		t.Errorf("unexpected station 99")
	}
	if ds.Stats.UnknownMonths != 1 {
		t.Errorf("expected 1 unknown month, got %s", ds.Stats)
	}
	if ds.Bounds.SW.Lat != 44.5 || ds.Bounds.NE.Long != -124 {
		t.Errorf("unexpected bounds %v", ds.Bounds)
	}
	if len(ds.Coast) != 1 || len(ds.Coast[0]) != 3 || ds.Coast[0][1] != (Pixel{110, 110}) {
		t.Errorf("unexpected coast %v", ds.Coast)
	}
}

func TestNormalizeProfiles(t *testing.T) {
	ds,err := Normalize(testInput(t), testLayout)
	if err != nil { t.Fatal(err) }

	tests := []struct{
		field    string
		id       CastID
		expected []Pixel
	}{
		{"CT", "1", []Pixel{{40, 50}, {50, 10}}}, // deepest first
		{"SA", "1", []Pixel{{40, 50}}},           // the null at -10 is dropped, CT unaffected
		{"CT", "2", []Pixel{}},                   // no valid samples: empty, not missing
		{"SA", "2", []Pixel{{30, 5}}},
		{"CT", "3", []Pixel{}},
	}
	for _,test := range tests {
		p := ds.Profile(test.field, test.id)
		if diff := cmp.Diff(test.expected, p.Points); diff != "" {
			t.Errorf("%s/%s mismatch (-want +got):\n%s", test.field, test.id, diff)
		}
	}

	// The orphan (cast 99) contributed to nobody
	for field,profiles := range ds.Profiles {
		if _,exists := profiles["99"]; exists {
			t.Errorf("%s: orphan cast has a profile", field)
		}
	}
	if ds.Stats.Orphans != 1 {
		t.Errorf("expected 1 orphan, got %s", ds.Stats)
	}
	if ds.Stats.Nulls != 2 {
		t.Errorf("expected 2 nulls, got %s", ds.Stats)
	}

	b := ds.Profile("CT", "1").Bound()
	if b.West() != 40 || b.East() != 50 || b.South() != 10 || b.North() != 50 {
		t.Errorf("unexpected profile bound %v", b)
	}
}

func TestNormalizeModel(t *testing.T) {
	in := testInput(t)
	in.Mod = mustDecode(t, `{
		"cid": {"0": 1,    "1": 1,    "3": 3},
		"CT":  {"0": 10.5, "1": 7.5,  "3": 1},
		"SA":  {"0": 34.9, "1": 34.2, "3": 33}
	}`)

	ds,err := Normalize(in, testLayout)
	if err != nil { t.Fatal(err) }

	type pair struct{ Cast CastID; Obs, Mod float64 }
	flatten := func(pairs []ModelPair) []pair {
		out := []pair{}
		for _,p := range pairs { out = append(out, pair{p.Cast, p.Obs, p.Mod}) }
		return out
	}

	if diff := cmp.Diff([]pair{{"1", 10, 10.5}, {"1", 8, 7.5}}, flatten(ds.Pairs["CT"])); diff != "" {
		t.Errorf("CT pairs mismatch (-want +got):\n%s", diff)
	}
	// Record 0 has no observed SA; record 3 names cast 3, but the observation is cast 2
	if diff := cmp.Diff([]pair{{"1", 34, 34.2}}, flatten(ds.Pairs["SA"])); diff != "" {
		t.Errorf("SA pairs mismatch (-want +got):\n%s", diff)
	}
	if ds.Stats.Unpaired != 1 {
		t.Errorf("expected 1 unpaired, got %s", ds.Stats)
	}
	if !ds.HasModel() {
		t.Errorf("expected model data")
	}
}

func TestNormalizeIndexAsCast(t *testing.T) {
	// Without a cid column, the info index names the cast
	in := Input{
		Info: mustDecode(t, `{"lon":{"0":-125,"1":-124},"lat":{"0":45,"1":46}}`),
		Obs:  mustDecode(t, `{"cid":{"0":1,"1":0},"z":{"0":-1,"1":-2},"CT":{"0":5,"1":6}}`),
	}
	ds,err := Normalize(in, testLayout)
	if err != nil { t.Fatal(err) }

	if diff := cmp.Diff([]CastID{"0","1"}, ds.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if ds.Profile("CT", "0").Empty() || ds.Profile("CT", "1").Empty() {
		t.Errorf("expected both profiles populated")
	}
}

func TestNormalizeSetAside(t *testing.T) {
	in := Input{
		Info: mustDecode(t, `[
			{"cid": 1, "lon": -125, "lat": 45},
			{"cid": 1, "lon": -124, "lat": 46},
			{"cid": 2, "lon": null, "lat": 46},
			{"cid": 3, "lon": -124, "lat": 45, "time": "2017"}
		]`),
		Obs: mustDecode(t, `[{"cid": 1, "CT": 5}, {"CT": 6}]`),
	}
	ds,err := Normalize(in, testLayout)
	if err != nil { t.Fatal(err) }

	expected := Stats{Duplicates:1, Unplaced:1, UnknownMonths:2, NoDepth:1, Orphans:1}
	if diff := cmp.Diff(expected, ds.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if s,_ := ds.Station("1"); s.Pos.Long != -125 {
		t.Errorf("first record should win, got %s", s)
	}
	if s,_ := ds.Station("3"); s.Month != AnyMonth {
		t.Errorf("a bare year is not a timestamp, got %s", s)
	}
}

func TestNormalizeLayoutErrors(t *testing.T) {
	layouts := []Layout{
		{Map:FrameSpec{X0:-125, X1:-125, Y0:44, Y1:46, W0:200, Margin:10}},
		{Map:testLayout.Map, Fields:[]Field{{Name:"CT", Frame:FrameSpec{X0:5, X1:5, Y0:-1, Y1:0, W0:10, H0:10}}}},
		{Map:testLayout.Map, Fields:[]Field{testLayout.Fields[0], testLayout.Fields[0]}},
		{Map:testLayout.Map, Fields:[]Field{{Frame:testLayout.Fields[0].Frame}}},
	}
	for i,layout := range layouts {
		_,err := Normalize(Input{}, layout)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("[%d] expected a *ConfigError, got %v", i, err)
		}
	}
}
