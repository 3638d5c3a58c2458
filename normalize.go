package castviz

import(
	"fmt"
	"sort"
	"time"

	pgeo "github.com/paulmach/go.geo"
	"github.com/skypies/geo"
)

// Field is one measured quantity that gets a profile plot. Frame is its
// value/depth plot; the model comparison plot reuses the value range on both axes.
type Field struct {
	Name  string    `yaml:"name"`
	Label string    `yaml:"label"`
	Frame FrameSpec `yaml:"frame"`
}

func (f Field)String() string {
	if f.Label != "" { return f.Label }
	return f.Name
}

// ModObsSpec is the square obs-vs-model frame for the field.
func (f Field)ModObsSpec() FrameSpec {
	return FrameSpec{
		X0:f.Frame.X0, X1:f.Frame.X1,
		Y0:f.Frame.X0, Y1:f.Frame.X1,
		W0:f.Frame.W0, H0:f.Frame.W0,
		Margin:f.Frame.Margin,
	}
}

// Layout is the geometry of every plot. A zero Map.H0 is derived from the extent.
type Layout struct {
	Map    FrameSpec `yaml:"map"`
	Fields []Field   `yaml:"fields"`
}

// Input holds the raw record sets. Mod is optional.
type Input struct {
	Coast Records
	Info  Records
	Obs   Records
	Mod   Records
}

// {{{ Station

type Station struct {
	ID    CastID
	Pos   geo.Latlong
	Time  time.Time
	Month Month
	Pixel Pixel // in the map frame
}

func (s Station)String() string {
	return fmt.Sprintf("%s@%.3f,%.3f[%s]", s.ID, s.Pos.Long, s.Pos.Lat, s.Month)
}

// }}}
// {{{ Observation, Profile, ModelPair

// Observation is one bottle sample.
type Observation struct {
	Key    string // record index; model records align on this
	Cast   CastID
	Z      float64
	Values map[string]NullFloat64
}

// Profile is a station's samples for one field, in pixel space, ordered by
// ascending z (deepest first, with z negative below the surface).
type Profile struct {
	Cast   CastID
	Field  string
	Points []Pixel
}

func (p Profile)Empty() bool { return len(p.Points) == 0 }

func (p Profile)Bound() *pgeo.Bound {
	path := pgeo.NewPath()
	for _,pix := range p.Points {
		path.Push(pgeo.NewPoint(pix.X, pix.Y))
	}
	return path.Bound()
}

// ModelPair is an observed value alongside the model's value for the same sample.
type ModelPair struct {
	Cast  CastID
	Field string
	Key   string
	Obs   float64
	Mod   float64
	Pixel Pixel // in the field's obs-vs-model frame
}

// }}}
// {{{ Stats

// Stats counts the records that were set aside during normalization. None of
// these are errors.
type Stats struct {
	Orphans       int // observations naming an unknown cast
	Nulls         int // (sample,field) pairs with no value
	NoDepth       int // observations with no depth
	UnknownMonths int // stations with an unusable timestamp
	Unplaced      int // info records with no position
	Duplicates    int // info records repeating a cast id
	Unpaired      int // model records that could not be aligned
}

func (s Stats)String() string {
	return fmt.Sprintf("orphans=%d nulls=%d nodepth=%d unknownmonths=%d unplaced=%d dups=%d unpaired=%d",
		s.Orphans, s.Nulls, s.NoDepth, s.UnknownMonths, s.Unplaced, s.Duplicates, s.Unpaired)
}

// }}}
// {{{ Dataset

// Dataset is everything the views and the selection engine read. It is built
// once by Normalize and never modified.
type Dataset struct {
	Stations    []Station // in station index order
	byID        map[CastID]int

	Coast       [][]Pixel
	Profiles    map[string]map[CastID]Profile // field name -> cast -> profile
	Pairs       map[string][]ModelPair        // field name -> pairs, in record order
	Obs         []Observation

	Bounds      geo.LatlongBox // of the stations
	MapFrame    Frame
	Fields      []Field
	FieldFrames map[string]Frame
	ModObs      map[string]Frame
	Stats       Stats
}

func (ds *Dataset)Station(id CastID) (Station, bool) {
	if i,exists := ds.byID[id]; exists {
		return ds.Stations[i], true
	}
	return Station{}, false
}

func (ds *Dataset)IDs() []CastID {
	ids := make([]CastID, len(ds.Stations))
	for i,s := range ds.Stations { ids[i] = s.ID }
	return ids
}

// Profile returns an empty profile (not a missing one) for stations without samples.
func (ds *Dataset)Profile(field string, id CastID) Profile {
	if p,exists := ds.Profiles[field][id]; exists {
		return p
	}
	return Profile{Cast:id, Field:field}
}

func (ds *Dataset)HasModel() bool { return len(ds.Pairs) > 0 }

// }}}

// {{{ Normalize

// Normalize builds a Dataset. It only fails on a bad layout or unreadable
// coastline; gaps and oddities in the data are set aside and counted.
func Normalize(in Input, layout Layout) (*Dataset, error) {
	ds := &Dataset{
		byID:        map[CastID]int{},
		Profiles:    map[string]map[CastID]Profile{},
		Pairs:       map[string][]ModelPair{},
		FieldFrames: map[string]Frame{},
		ModObs:      map[string]Frame{},
		Fields:      layout.Fields,
	}

	if err := ds.buildFrames(layout); err != nil { return nil, err }

	segs,err := DecodeCoast(in.Coast)
	if err != nil { return nil, err }
	for _,seg := range segs {
		line := make([]Pixel, len(seg))
		for i,pos := range seg {
			line[i] = ds.MapFrame.Project(pos.Long, pos.Lat)
		}
		ds.Coast = append(ds.Coast, line)
	}

	ds.addStations(in.Info)
	ds.addObservations(in.Obs)
	ds.buildProfiles()
	if len(in.Mod) > 0 {
		ds.addModel(in.Mod)
	}

	return ds, nil
}

// }}}
// {{{ ds.buildFrames

func (ds *Dataset)buildFrames(layout Layout) error {
	mapSpec := layout.Map
	if mapSpec.H0 == 0 { mapSpec.H0 = mapSpec.AspectHeight() }
	f,err := NewFrame(mapSpec)
	if err != nil { return fmt.Errorf("map: %w", err) }
	ds.MapFrame = f

	for _,field := range layout.Fields {
		if field.Name == "" {
			return configErrorf("field", "unnamed field")
		}
		if _,exists := ds.FieldFrames[field.Name]; exists {
			return configErrorf("field", "%q listed twice", field.Name)
		}
		if ds.FieldFrames[field.Name],err = NewFrame(field.Frame); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
		if ds.ModObs[field.Name],err = NewFrame(field.ModObsSpec()); err != nil {
			return fmt.Errorf("field %q model: %w", field.Name, err)
		}
	}
	return nil
}

// }}}
// {{{ ds.addStations

func (ds *Dataset)addStations(info Records) {
	first := true
	for _,r := range info {
		id,ok := castOf(r)
		if !ok { ds.Stats.Unplaced++; continue }
		if _,exists := ds.byID[id]; exists { ds.Stats.Duplicates++; continue }

		lon,okLon := r.Float(ColumnLon)
		lat,okLat := r.Float(ColumnLat)
		if !okLon || !okLat { ds.Stats.Unplaced++; continue }

		s := Station{ID:id, Pos:geo.Latlong{Lat:lat, Long:lon}}
		if t,ok := r.Time(ColumnTime); ok {
			s.Time = t
			s.Month = MonthOf(t)
		} else {
			ds.Stats.UnknownMonths++
		}
		s.Pixel = ds.MapFrame.Project(lon, lat)

		if first {
			ds.Bounds = s.Pos.BoxTo(s.Pos)
			first = false
		} else {
			ds.Bounds.Enclose(s.Pos)
		}

		ds.byID[id] = len(ds.Stations)
		ds.Stations = append(ds.Stations, s)
	}
}

// castOf falls back to the record's index when there is no cast column.
func castOf(r Record) (CastID, bool) {
	if v,ok := r.Value(ColumnCast); ok {
		return NewCastID(v)
	}
	return NewCastID(r.Key)
}

// }}}
// {{{ ds.addObservations

func (ds *Dataset)addObservations(obs Records) {
	for _,r := range obs {
		v,_ := r.Value(ColumnCast)
		id,ok := NewCastID(v)
		if !ok { ds.Stats.Orphans++; continue }
		if _,exists := ds.byID[id]; !exists { ds.Stats.Orphans++; continue }

		z,ok := r.Float(ColumnDepth)
		if !ok { ds.Stats.NoDepth++; continue }

		o := Observation{Key:r.Key, Cast:id, Z:z, Values:map[string]NullFloat64{}}
		for _,field := range ds.Fields {
			o.Values[field.Name] = r.Null(field.Name)
		}
		ds.Obs = append(ds.Obs, o)
	}
}

// }}}
// {{{ ds.buildProfiles

func (ds *Dataset)buildProfiles() {
	// Stable, so that samples at equal depth keep their record order
	byDepth := make([]Observation, len(ds.Obs))
	copy(byDepth, ds.Obs)
	sort.SliceStable(byDepth, func(i, j int) bool { return byDepth[i].Z < byDepth[j].Z })

	for _,field := range ds.Fields {
		frame := ds.FieldFrames[field.Name]
		profiles := map[CastID]Profile{}
		for _,s := range ds.Stations {
			profiles[s.ID] = Profile{Cast:s.ID, Field:field.Name, Points:[]Pixel{}}
		}

		for _,o := range byDepth {
			v := o.Values[field.Name]
			if !v.HasValue { ds.Stats.Nulls++; continue }
			p := profiles[o.Cast]
			p.Points = append(p.Points, frame.Project(v.Value, o.Z))
			profiles[o.Cast] = p
		}
		ds.Profiles[field.Name] = profiles
	}
}

// }}}
// {{{ ds.addModel

// addModel pairs each kept observation with the model record that has the same
// index. A model record naming a different cast is not a match.
func (ds *Dataset)addModel(mod Records) {
	byKey := map[string]Record{}
	for _,r := range mod { byKey[r.Key] = r }

	for _,o := range ds.Obs {
		m,exists := byKey[o.Key]
		if !exists { ds.Stats.Unpaired++; continue }
		if v,ok := m.Value(ColumnCast); ok {
			if id,_ := NewCastID(v); id != o.Cast { ds.Stats.Unpaired++; continue }
		}

		for _,field := range ds.Fields {
			ov := o.Values[field.Name]
			mv := m.Null(field.Name)
			if !ov.HasValue || !mv.HasValue { continue }
			ds.Pairs[field.Name] = append(ds.Pairs[field.Name], ModelPair{
				Cast:o.Cast, Field:field.Name, Key:o.Key,
				Obs:ov.Value, Mod:mv.Value,
				Pixel:ds.ModObs[field.Name].Project(ov.Value, mv.Value),
			})
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
