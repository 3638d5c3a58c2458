// This package contains the core types for cast visualisation: stations, observations,
// profiles, and the scaling between data space and pixel space. No rendering, no I/O.
package castviz

import(
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names, as written by the pandas json exporters.
const(
	ColumnCast  = "cid"
	ColumnLon   = "lon"
	ColumnLat   = "lat"
	ColumnTime  = "time"
	ColumnDepth = "z"
)

// CastID identifies a station (a single cast). Integer ids are held in canonical
// decimal form, so that 42, "42" and 42.0 all name the same cast.
type CastID string

// {{{ NewCastID

func NewCastID(v interface{}) (CastID, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case CastID:
		return t, t != ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" { return "", false }
		if f,err := strconv.ParseFloat(s, 64); err == nil {
			if id,ok := castIDFromFloat(f); ok { return id, true }
		}
		return CastID(s), true
	case float64:
		return castIDFromFloat(t)
	case float32:
		return castIDFromFloat(float64(t))
	case int:
		return CastID(strconv.Itoa(t)), true
	case int64:
		return CastID(strconv.FormatInt(t, 10)), true
	case fmt.Stringer:
		return NewCastID(t.String())
	}
	return "", false
}

func castIDFromFloat(f float64) (CastID, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) { return "", false }
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return CastID(strconv.FormatInt(int64(f), 10)), true
	}
	return CastID(strconv.FormatFloat(f, 'g', -1, 64)), true
}

// }}}

// Month is a calendar month, 1-12. AnyMonth (zero) means "no month"; as a
// predicate it matches everything, as a station attribute it means the
// timestamp was unusable.
type Month int

const AnyMonth Month = 0

// {{{ MonthOf, m.Valid, m.String, m.Label

func MonthOf(t time.Time) Month {
	if t.IsZero() { return AnyMonth }
	return Month(t.UTC().Month())
}

func (m Month)Valid() bool { return m >= 1 && m <= 12 }

func (m Month)String() string {
	if m == AnyMonth { return "All months" }
	if !m.Valid() { return fmt.Sprintf("Month(%d)", int(m)) }
	return time.Month(m).String()
}

// Label is the text shown next to the month slider, e.g. "June 2017".
func (m Month)Label(year int) string {
	if year == 0 { return m.String() }
	return fmt.Sprintf("%s %d", m, year)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
