package ui

import(
	"net/http"

	"github.com/skypies/castviz/scene"
)

type ColorScheme int
const(
	ByState ColorScheme = iota // selected casts red, the rest faint blue
	ByContrast                 // selected casts black, the rest light grey; prints better
)

func (cs ColorScheme)String() string {
	switch cs {
	case ByState:    return "state"
	case ByContrast: return "contrast"
	default: return ""
	}
}

func ParseColorScheme(s string) ColorScheme {
	switch s {
	case "contrast": return ByContrast
	default:         return ByState
	}
}

func FormValueColorScheme(r *http.Request) ColorScheme {
	return ParseColorScheme(r.FormValue("colorby"))
}

// {{{ cs.Palette

func (cs ColorScheme)Palette() scene.Palette {
	p := scene.DefaultPalette()
	if cs == ByContrast {
		grey  := scene.Ink{Color:"#c0c0c0", Opacity:0.5, Width:1}
		black := scene.Ink{Color:"#000000", Opacity:1.0, Width:1.5}
		for _,k := range []scene.Kind{scene.KindCast, scene.KindProfile, scene.KindModObs} {
			p[k] = scene.Inks{Plain:grey, Emphasized:black}
		}
	}
	return p
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
