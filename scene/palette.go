package scene

import(
	"fmt"
	"strconv"
	"strings"
)

// Ink is how one (kind, state) gets drawn.
type Ink struct {
	Color   string  `yaml:"color"`   // "#rrggbb"
	Opacity float64 `yaml:"opacity"` // 0 means opaque
	Width   float64 `yaml:"width"`   // stroke width, in pixels
}

type Inks struct {
	Plain      Ink `yaml:"plain"`
	Emphasized Ink `yaml:"emphasized"`
}

type Palette map[Kind]Inks

// DefaultPalette is blue, faint, for everything; selected casts in red on top.
func DefaultPalette() Palette {
	plain := Ink{Color:"#0000ff", Opacity:0.2, Width:1}
	red   := Ink{Color:"#ff0000", Opacity:1.0, Width:1.5}
	black := Ink{Color:"#000000", Opacity:1.0, Width:1}
	return Palette{
		KindCoast:   {Plain:black, Emphasized:black},
		KindCast:    {Plain:plain, Emphasized:red},
		KindProfile: {Plain:plain, Emphasized:red},
		KindModObs:  {Plain:plain, Emphasized:red},
		KindUnity:   {Plain:Ink{Color:"#808080", Opacity:1, Width:1}, Emphasized:black},
	}
}

// {{{ p.Ink

func (p Palette)Ink(k Kind, s State) Ink {
	inks,exists := p[k]
	if !exists { inks = DefaultPalette()[k] }
	ink := inks.Plain
	if s == Emphasized { ink = inks.Emphasized }
	if ink.Color == "" { ink.Color = "#000000" }
	if ink.Opacity == 0 { ink.Opacity = 1 }
	if ink.Width == 0 { ink.Width = 1 }
	return ink
}

// }}}
// {{{ ink.RGB

// RGB decodes the "#rrggbb" (or "#rgb") color; bad colors come out black.
func (ink Ink)RGB() (int, int, int, error) {
	hex := strings.TrimPrefix(ink.Color, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0],hex[0], hex[1],hex[1], hex[2],hex[2]})
	}
	if len(hex) != 6 {
		return 0,0,0, fmt.Errorf("color %q: want #rrggbb", ink.Color)
	}
	v,err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0,0,0, fmt.Errorf("color %q: %v", ink.Color, err)
	}
	return int(v>>16 & 0xff), int(v>>8 & 0xff), int(v & 0xff), nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
