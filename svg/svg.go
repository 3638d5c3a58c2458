// Package svg writes a scene.Canvas out as a standalone SVG document.
package svg

import(
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/scene"
)

const(
	tickLen   = 5
	numTicks  = 5
	fontSize  = 10
	fontFamily = "sans-serif"
)

// {{{ Write

func Write(w io.Writer, c *scene.Canvas) error {
	_,err := io.WriteString(w, Render(c))
	return err
}

// }}}
// {{{ Render

func Render(c *scene.Canvas) string {
	var svg strings.Builder
	width, height := c.Frame.Width(), c.Frame.Height()

	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" id=%q>
`, num(width), num(height), num(width), num(height), c.ID))

	if c.Title != "" {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d">%s</text>`+"\n",
			num(width/2), num(float64(fontSize)+2), fontFamily, fontSize+2, html.EscapeString(c.Title)))
	}

	drawAxes(&svg, c)

	// Marks are already in drawing order; group them by kind for styling hooks
	var currKind scene.Kind = -1
	for _,m := range c.Marks {
		if m.Kind != currKind {
			if currKind >= 0 { svg.WriteString("</g>\n") }
			svg.WriteString(fmt.Sprintf(`<g class="%s">`+"\n", m.Kind))
			currKind = m.Kind
		}
		drawMark(&svg, c.Palette.Ink(m.Kind, m.State), m)
	}
	if currKind >= 0 { svg.WriteString("</g>\n") }

	svg.WriteString("</svg>\n")
	return svg.String()
}

// }}}
// {{{ drawMark

func drawMark(svg *strings.Builder, ink scene.Ink, m scene.Mark) {
	id := ""
	if m.Cast != "" { id = fmt.Sprintf(` data-cast="%s"`, html.EscapeString(string(m.Cast))) }

	switch m.Shape {
	case scene.ShapePoint:
		p := m.Points[0]
		svg.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="%s" class="%s"%s/>`+"\n",
			num(p.X), num(p.Y), num(m.Radius), ink.Color, num(ink.Opacity), m.State, id))

	case scene.ShapePolyline:
		svg.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s" fill="none" class="%s"%s/>`+"\n",
			pathData(m.Points), ink.Color, num(ink.Opacity), num(ink.Width), m.State, id))
	}
}

func pathData(pts []castviz.Pixel) string {
	strs := make([]string, len(pts))
	for i,p := range pts {
		cmd := "L"
		if i == 0 { cmd = "M" }
		strs[i] = cmd + num(p.X) + "," + num(p.Y)
	}
	return strings.Join(strs, " ")
}

// }}}
// {{{ drawAxes

// drawAxes puts the x axis along the bottom of the plot area, and the y axis
// down its left side, with round-valued ticks.
func drawAxes(svg *strings.Builder, c *scene.Canvas) {
	f := c.Frame
	plot := f.PlotRect()
	left, right, top, bottom := plot.Min.X, plot.Max.X, plot.Min.Y, plot.Max.Y

	svg.WriteString(`<g class="axes" stroke="black" stroke-width="1" fill="none">` + "\n")
	svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(left), num(bottom), num(right), num(bottom)))
	svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(left), num(top), num(left), num(bottom)))

	for _,v := range f.XTicks(numTicks) {
		x := f.X.Scale(v)
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(x), num(bottom), num(x), num(bottom+tickLen)))
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d" stroke="none" fill="black">%s</text>`+"\n",
			num(x), num(bottom+tickLen+fontSize), fontFamily, fontSize, label(v)))
	}
	for _,v := range f.YTicks(numTicks) {
		y := f.Y.Scale(v)
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", num(left-tickLen), num(y), num(left), num(y)))
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="end" font-family="%s" font-size="%d" stroke="none" fill="black">%s</text>`+"\n",
			num(left-tickLen-2), num(y+fontSize/3), fontFamily, fontSize, label(v)))
	}

	if c.XLabel != "" {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d" stroke="none" fill="black">%s</text>`+"\n",
			num((left+right)/2), num(f.Height()-2), fontFamily, fontSize, html.EscapeString(c.XLabel)))
	}
	if c.YLabel != "" {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%d" stroke="none" fill="black" transform="rotate(-90 %s %s)">%s</text>`+"\n",
			num(fontSize), num((top+bottom)/2), fontFamily, fontSize, num(fontSize), num((top+bottom)/2),
			html.EscapeString(c.YLabel)))
	}
	svg.WriteString("</g>\n")
}

// }}}
// {{{ num, label

// num trims coordinates to two decimal places, and drops trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(float64(int64(f*100+sign(f)*0.5))/100, 'f', -1, 64)
}

func sign(f float64) float64 {
	if f < 0 { return -1 }
	return 1
}

func label(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
