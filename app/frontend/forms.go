package frontend

import(
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/skypies/util/widget"

	"github.com/skypies/castviz"
)

// FormValueRect reads a brush rectangle in map pixels, either as
// region=x0,y0,x1,y1 or as four separate args. clear=1 (or the form's Clear
// button) means no brush, and yields nil; clear=0 or clear=false do not.
func FormValueRect(r *http.Request) (*castviz.Rect, error) {
	if FormValueClear(r) {
		return nil, nil
	}

	strs := []string{}
	if r.FormValue("region") != "" {
		strs = widget.FormValueCommaSepStrings(r, "region")
	} else {
		for _,name := range []string{"x0","y0","x1","y1"} {
			strs = append(strs, r.FormValue(name))
		}
	}
	if len(strs) != 4 {
		return nil, fmt.Errorf("region: want x0,y0,x1,y1, got %d values", len(strs))
	}

	vals := [4]float64{}
	for i,str := range strs {
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, fmt.Errorf("brush: missing coordinate %d (want x0,y0,x1,y1, or clear=1)", i)
		}
		f,err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Errorf("brush: coordinate %d: %w", i, err)
		}
		vals[i] = f
	}

	rect := castviz.NewRect(vals[0], vals[1], vals[2], vals[3])
	return &rect, nil
}

// FormValueClear is FormValueCheckbox, except that the usual spellings of
// "no" leave the box unticked.
func FormValueClear(r *http.Request) bool {
	if !widget.FormValueCheckbox(r, "clear") { return false }
	switch strings.ToLower(strings.TrimSpace(r.FormValue("clear"))) {
	case "", "0", "false", "no", "off": return false
	}
	return true
}

// FormValueMonth reads month=1..12, or month=0 for all months. Anything else
// is an error; an out of range month would otherwise select nothing.
func FormValueMonth(r *http.Request) (castviz.Month, error) {
	str := strings.TrimSpace(r.FormValue("month"))
	if str == "" {
		return castviz.AnyMonth, fmt.Errorf("month: missing")
	}
	i,err := strconv.Atoi(str)
	if err != nil {
		return castviz.AnyMonth, fmt.Errorf("month: %w", err)
	}
	m := castviz.Month(i)
	if m != castviz.AnyMonth && !m.Valid() {
		return castviz.AnyMonth, fmt.Errorf("month: %d not in 0..12", i)
	}
	return m, nil
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
