// Package frontend serves the linked views over HTTP: form posts drive the
// brush, the month slider and the year dropdown, and every canvas can be
// fetched as SVG or PDF.
package frontend

import(
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/skypies/util/widget"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/fpdf"
	"github.com/skypies/castviz/scene"
	"github.com/skypies/castviz/svg"
	"github.com/skypies/castviz/ui"
	"github.com/skypies/castviz/viz"
)

type Server struct {
	Viz   *viz.Viz
	Years []int // for the year dropdown
	Log   viz.Logger
}

func (s Server)logger() viz.Logger {
	if s.Log == nil { return viz.StdLogger{} }
	return s.Log
}

// {{{ s.Handler

func (s Server)Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.HealthHandler)
	mux.HandleFunc("/year", s.YearHandler)

	mux.HandleFunc("/brush", s.WhenReady(s.BrushHandler))
	mux.HandleFunc("/month", s.WhenReady(s.MonthHandler))
	mux.HandleFunc("/selection", s.WhenReady(s.SelectionHandler))
	mux.HandleFunc("/canvas/{file}", s.WhenReady(s.CanvasHandler))
	mux.HandleFunc("/report.pdf", s.WhenReady(s.ReportHandler))
	mux.HandleFunc("/{$}", s.WhenReady(s.IndexHandler))
	return mux
}

// WhenReady answers 503 until the first dataset has loaded.
func (s Server)WhenReady(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Viz.Ready() {
			http.Error(w, viz.ErrNotReady.Error(), http.StatusServiceUnavailable)
			return
		}
		h(w,r)
	}
}

// }}}

// {{{ s.HealthHandler

func (s Server)HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if !s.Viz.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading\n"))
		return
	}
	w.Write([]byte(fmt.Sprintf("OK\n%s\n", s.Viz)))
}

// }}}
// {{{ s.BrushHandler, s.MonthHandler, s.YearHandler

func (s Server)BrushHandler(w http.ResponseWriter, r *http.Request) {
	rect,err := FormValueRect(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Viz.BrushEnd(rect)
	s.SelectionHandler(w,r)
}

func (s Server)MonthHandler(w http.ResponseWriter, r *http.Request) {
	m,err := FormValueMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Viz.MonthChange(m)
	s.SelectionHandler(w,r)
}

// YearHandler reloads; it is allowed before the first load completes, as it
// may be what fixes a failed one.
func (s Server)YearHandler(w http.ResponseWriter, r *http.Request) {
	year := int(widget.FormValueInt64(r, "year"))
	if year <= 0 {
		http.Error(w, "year: want a positive integer", http.StatusBadRequest)
		return
	}
	if len(s.Years) > 0 && !hasYear(s.Years, year) {
		http.Error(w, fmt.Sprintf("year %d not available", year), http.StatusNotFound)
		return
	}
	if err := s.Viz.YearChange(r.Context(), year); err != nil {
		s.logger().Errorf("frontend: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.SelectionHandler(w,r)
}

func hasYear(years []int, year int) bool {
	for _,y := range years {
		if y == year { return true }
	}
	return false
}

// }}}
// {{{ s.SelectionHandler

// SelectionJSON is what every event endpoint answers with.
type SelectionJSON struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Label    string           `json:"label"`
	Region   []float64        `json:"region,omitempty"`
	Count    int              `json:"count"`
	Stations int              `json:"stations"`
	IDs      []castviz.CastID `json:"ids"`
}

func NewSelectionJSON(st viz.State) SelectionJSON {
	sj := SelectionJSON{
		Year:     st.Year,
		Month:    int(st.Month),
		Label:    st.Label(),
		Count:    st.Selection.Len(),
		Stations: st.Stations,
		IDs:      st.Selection.IDs,
	}
	if st.Region != nil {
		sj.Region = []float64{st.Region.Min.X, st.Region.Min.Y, st.Region.Max.X, st.Region.Max.Y}
	}
	return sj
}

func (s Server)SelectionHandler(w http.ResponseWriter, r *http.Request) {
	jsonBytes,err := json.Marshal(NewSelectionJSON(s.Viz.State()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonBytes)
}

// }}}
// {{{ s.CanvasHandler, s.ReportHandler

// CanvasHandler serves /canvas/{id}.svg and /canvas/{id}.pdf.
func (s Server)CanvasHandler(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	dot := strings.LastIndex(file, ".")
	if dot < 0 {
		http.Error(w, "want /canvas/{id}.svg or .pdf", http.StatusBadRequest)
		return
	}
	id,ext := file[:dot], file[dot+1:]

	c,ok := s.Viz.Canvas(id)
	if !ok {
		http.NotFound(w,r)
		return
	}
	maybeRecolor(r, c)

	var buf bytes.Buffer
	var err error
	switch ext {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		err = svg.Write(&buf, c)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		err = fpdf.Write(&buf, c)
	default:
		http.Error(w, fmt.Sprintf("format %q not supported", ext), http.StatusBadRequest)
		return
	}
	if err != nil {
		w.Header().Del("Content-Type")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(buf.Bytes())
}

// maybeRecolor applies ?colorby=... to a canvas snapshot.
func maybeRecolor(r *http.Request, c *scene.Canvas) {
	if r.FormValue("colorby") != "" {
		c.Palette = ui.FormValueColorScheme(r).Palette()
	}
}

// ReportHandler puts every canvas into one PDF, a page each.
func (s Server)ReportHandler(w http.ResponseWriter, r *http.Request) {
	canvases := s.Viz.Canvases()
	for _,c := range canvases { maybeRecolor(r, c) }

	var buf bytes.Buffer
	if err := fpdf.Write(&buf, canvases...); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(buf.Bytes())
}

// }}}
// {{{ s.IndexHandler

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<form action="/year" method="post">
  <select name="year">{{range .Years}}
    <option value="{{.}}"{{if eq . $.Sel.Year}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <input type="submit" value="Load">
</form>
<form action="/month" method="post">
  <input type="range" name="month" min="0" max="12" value="{{.Sel.Month}}">
  <span>{{.Sel.Label}}</span>
  <input type="submit" value="Set month">
</form>
<form action="/brush" method="post">
  <input type="text" name="region" placeholder="x0,y0,x1,y1">
  <input type="submit" value="Brush">
  <input type="submit" name="clear" value="Clear">
</form>
<p>{{.Sel.Count}} of {{.Sel.Stations}} casts selected</p>
{{range .Canvases}}<div class="canvas">{{.}}</div>
{{end}}
</body></html>
`))

func (s Server)IndexHandler(w http.ResponseWriter, r *http.Request) {
	st := s.Viz.State()
	canvases := []template.HTML{}
	for _,c := range s.Viz.Canvases() {
		canvases = append(canvases, template.HTML(svg.Render(c)))
	}
	params := map[string]interface{}{
		"Title":    fmt.Sprintf("Casts, %s", st.Label()),
		"Years":    s.Years,
		"Sel":      NewSelectionJSON(st),
		"Canvases": canvases,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, params); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
