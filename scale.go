package castviz

import(
	"fmt"
	"math"
)

// ConfigError reports a view set up with an unusable axis. It is a programming
// (or configuration) error, never a data error.
type ConfigError struct {
	What   string
	Reason string
}

func (e *ConfigError)Error() string {
	return fmt.Sprintf("castviz config: %s: %s", e.What, e.Reason)
}

func configErrorf(what, format string, args ...interface{}) error {
	return &ConfigError{What:what, Reason:fmt.Sprintf(format, args...)}
}

// {{{ Scale

// Scale maps v from [dmin,dmax] onto [pmin,pmax]. An inverted axis is just
// pmin > pmax. A zero-width domain is a *ConfigError, rather than a silent NaN.
func Scale(v, dmin, dmax, pmin, pmax float64) (float64, error) {
	a,err := NewAxis(dmin, dmax, pmin, pmax)
	if err != nil { return 0, err }
	return a.Scale(v), nil
}

// }}}

// Axis is a validated linear mapping from a data domain to a pixel range.
type Axis struct {
	DMin, DMax float64
	PMin, PMax float64
}

// {{{ NewAxis

func NewAxis(dmin, dmax, pmin, pmax float64) (Axis, error) {
	for _,f := range []float64{dmin, dmax, pmin, pmax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Axis{}, configErrorf("axis", "non-finite bound in [%g,%g]->[%g,%g]",
				dmin, dmax, pmin, pmax)
		}
	}
	if dmin == dmax {
		return Axis{}, configErrorf("axis", "zero-width domain [%g,%g]", dmin, dmax)
	}
	if pmin == pmax {
		return Axis{}, configErrorf("axis", "zero-width pixel range [%g,%g]", pmin, pmax)
	}
	return Axis{DMin:dmin, DMax:dmax, PMin:pmin, PMax:pmax}, nil
}

// }}}
// {{{ a.Scale, a.Invert

func (a Axis)Scale(v float64) float64 {
	return a.PMin + (v-a.DMin) * (a.PMax-a.PMin) / (a.DMax-a.DMin)
}

func (a Axis)Invert(p float64) float64 {
	return a.DMin + (p-a.PMin) * (a.DMax-a.DMin) / (a.PMax-a.PMin)
}

// }}}
// {{{ a.Ticks

func (a Axis)Ticks(count int) []float64 { return Ticks(a.DMin, a.DMax, count) }

// }}}

// {{{ Ticks

var(
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count round values (multiples of 1, 2 or 5 times a power
// of ten) inside [lo,hi], in ascending order.
func Ticks(lo, hi float64, count int) []float64 {
	if count <= 0 || lo == hi || math.IsNaN(lo) || math.IsNaN(hi) { return nil }
	if lo > hi { lo,hi = hi,lo }

	raw := (hi-lo) / float64(count)
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	step := base
	switch r := raw/base; {
	case r >= e10: step = 10*base
	case r >= e5:  step = 5*base
	case r >= e2:  step = 2*base
	}

	ticks := []float64{}
	for i := math.Ceil(lo/step); i <= math.Floor(hi/step); i++ {
		// Multiply by the integer count of steps, then round away the float noise
		v := i*step
		if power < 0 {
			scale := math.Pow(10, -power+1)
			v = math.Round(v*scale) / scale
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
