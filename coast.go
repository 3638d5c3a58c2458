package castviz

import(
	"fmt"

	"github.com/skypies/geo"
)

// Segment is one unbroken piece of coastline.
type Segment []geo.Latlong

// {{{ DecodeCoast

// DecodeCoast reads coastline records, each holding parallel "x" (longitude)
// and "y" (latitude) arrays. A null point breaks the segment in two; segments
// with fewer than two points are dropped, as there is no line to draw.
func DecodeCoast(recs Records) ([]Segment, error) {
	segs := []Segment{}
	for _,r := range recs {
		xs,okX := r.Floats("x")
		ys,okY := r.Floats("y")
		if !okX || !okY {
			return nil, fmt.Errorf("coast record %q: want x and y arrays", r.Key)
		}
		if len(xs) != len(ys) {
			return nil, fmt.Errorf("coast record %q: %d x values, %d y values", r.Key, len(xs), len(ys))
		}

		curr := Segment{}
		flush := func() {
			if len(curr) > 1 { segs = append(segs, curr) }
			curr = Segment{}
		}
		for i := range xs {
			if !xs[i].HasValue || !ys[i].HasValue {
				flush()
				continue
			}
			curr = append(curr, geo.Latlong{Lat:ys[i].Value, Long:xs[i].Value})
		}
		flush()
	}
	return segs, nil
}

// }}}
// {{{ s.Box

func (s Segment)Box() geo.LatlongBox {
	if len(s) == 0 { return geo.LatlongBox{} }
	box := s[0].BoxTo(s[0])
	for _,pos := range s[1:] {
		box.Enclose(pos)
	}
	return box
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
