// Package selection holds the predicate state shared by all the linked views
// (a brush region on the map, a month), and computes which casts satisfy it.
package selection

import(
	"fmt"
	"strings"

	"github.com/skypies/castviz"
)

// A predicate restricts the set of stations. Unset predicates are not
// predicates at all; they are simply left out of the combination.
type predicate interface {
	Matches(castviz.Station) bool
	String() string
}

type regionPredicate castviz.Rect
func (p regionPredicate)Matches(s castviz.Station) bool { return castviz.Rect(p).Contains(s.Pixel) }
func (p regionPredicate)String() string { return "region" + castviz.Rect(p).String() }

type monthPredicate castviz.Month
func (p monthPredicate)Matches(s castviz.Station) bool {
	// A month outside 1-12 can never be satisfied
	return castviz.Month(p).Valid() && s.Month == castviz.Month(p)
}
func (p monthPredicate)String() string { return "month=" + castviz.Month(p).String() }

// {{{ Engine

// Engine owns the predicate state. It is not safe for concurrent use; callers
// serialize events onto it.
type Engine struct {
	stations []castviz.Station // the station index, in order
	region   *castviz.Rect
	month    castviz.Month
}

func New(stations []castviz.Station) *Engine {
	return &Engine{stations:stations}
}

// SetRegion replaces the spatial predicate. nil means no spatial filter.
func (e *Engine)SetRegion(r *castviz.Rect) {
	if r == nil {
		e.region = nil
		return
	}
	copied := *r
	e.region = &copied
}

// SetMonth replaces the month predicate. castviz.AnyMonth means all months.
func (e *Engine)SetMonth(m castviz.Month) { e.month = m }

func (e *Engine)Region() *castviz.Rect {
	if e.region == nil { return nil }
	copied := *e.region
	return &copied
}

func (e *Engine)Month() castviz.Month { return e.month }

func (e *Engine)NumStations() int { return len(e.stations) }

// }}}
// {{{ e.predicates, e.String

func (e *Engine)predicates() []predicate {
	preds := []predicate{}
	if e.region != nil { preds = append(preds, regionPredicate(*e.region)) }
	if e.month != castviz.AnyMonth { preds = append(preds, monthPredicate(e.month)) }
	return preds
}

func (e *Engine)String() string {
	strs := []string{}
	for _,p := range e.predicates() { strs = append(strs, p.String()) }
	if len(strs) == 0 { return "all stations" }
	return "all of: " + strings.Join(strs, "; ")
}

// }}}
// {{{ e.Compute

// Compute returns the stations matching every active predicate, in station
// index order. It is a pure function of the predicate state.
func (e *Engine)Compute() Result {
	preds := e.predicates()
	res := Result{IDs:[]castviz.CastID{}, set:map[castviz.CastID]bool{}}

	outer:
	for _,s := range e.stations {
		for _,p := range preds {
			if !p.Matches(s) { continue outer }
		}
		res.IDs = append(res.IDs, s.ID)
		res.set[s.ID] = true
	}
	return res
}

// }}}

// {{{ Result

// Result is an ordered set of cast ids.
type Result struct {
	IDs []castviz.CastID
	set map[castviz.CastID]bool
}

func NewResult(ids ...castviz.CastID) Result {
	res := Result{IDs:[]castviz.CastID{}, set:map[castviz.CastID]bool{}}
	for _,id := range ids {
		if res.set[id] { continue }
		res.IDs = append(res.IDs, id)
		res.set[id] = true
	}
	return res
}

func (r Result)Has(id castviz.CastID) bool { return r.set[id] }
func (r Result)Len() int { return len(r.IDs) }

func (r Result)String() string {
	strs := make([]string, len(r.IDs))
	for i,id := range r.IDs { strs[i] = string(id) }
	return fmt.Sprintf("{%s}", strings.Join(strs, ","))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
