// castrender loads one year of casts, applies a brush and a month, and writes
// every canvas out as SVG and/or PDF. With -stats it just reports on the data.
package main

import(
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skypies/util/histogram"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/backend"
	"github.com/skypies/castviz/config"
	"github.com/skypies/castviz/fpdf"
	"github.com/skypies/castviz/svg"
	"github.com/skypies/castviz/viz"
)

var(
	ctx = context.Background()
	fConfig string
	fDir    string
	fYear   int
	fMonth  int
	fRegion string
	fOut    string
	fFormat string
	fStats  bool
)

func init() {
	flag.StringVar(&fConfig, "config", "", "yaml config file (defaults used if blank)")
	flag.StringVar(&fDir, "dir", "", "read data files from this directory, overrides config source")
	flag.IntVar(&fYear, "year", 0, "year to render, overrides config")
	flag.IntVar(&fMonth, "month", -1, "month to select (0 for all), overrides config")
	flag.StringVar(&fRegion, "region", "", "brush, as x0,y0,x1,y1 in map pixels")
	flag.StringVar(&fOut, "out", ".", "output directory")
	flag.StringVar(&fFormat, "format", "svg,pdf", "comma-separated output formats")
	flag.BoolVar(&fStats, "stats", false, "print stats instead of rendering")
	flag.Parse()
}

func parseRegion(s string) ([]float64, error) {
	if s == "" { return nil, nil }
	vals := []float64{}
	for _,str := range strings.Split(s, ",") {
		f,err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil { return nil, fmt.Errorf("-region: %w", err) }
		vals = append(vals, f)
	}
	return vals, nil
}

// {{{ stats

func stats(ds *castviz.Dataset) {
	months := histogram.Histogram{NumBuckets:13, ValMax:13}
	h := histogram.NewSet(1000)

	for _,s := range ds.Stations {
		months.Add(histogram.ScalarVal(int(s.Month)))
	}
	for _,field := range ds.Fields {
		for _,p := range ds.Profiles[field.Name] {
			h.RecordValue("samples/"+field.Name, int64(len(p.Points)))
		}
		h.RecordValue("pairs/"+field.Name, int64(len(ds.Pairs[field.Name])))
	}

	fmt.Printf("%d stations, bounds %s\n", len(ds.Stations), ds.Bounds)
	fmt.Printf("Set aside: %s\n", ds.Stats)
	fmt.Printf("Casts per month (bucket 0 is unknown): %s\n", months)
	fmt.Printf("Stats:-\n%s", h)
}

// }}}
// {{{ render

func render(v *viz.Viz) {
	formats := map[string]bool{}
	for _,f := range strings.Split(fFormat, ",") { formats[strings.TrimSpace(f)] = true }

	if err := os.MkdirAll(fOut, 0755); err != nil { log.Fatal(err) }
	canvases := v.Canvases()

	if formats["svg"] {
		for _,c := range canvases {
			path := filepath.Join(fOut, c.ID+".svg")
			f,err := os.Create(path)
			if err != nil { log.Fatal(err) }
			if err := svg.Write(f, c); err != nil { log.Fatalf("%s: %v", path, err) }
			if err := f.Close(); err != nil { log.Fatal(err) }
			fmt.Printf("wrote %s\n", path)
		}
	}

	if formats["pdf"] {
		path := filepath.Join(fOut, "report.pdf")
		f,err := os.Create(path)
		if err != nil { log.Fatal(err) }
		if err := fpdf.Write(f, canvases...); err != nil { log.Fatalf("%s: %v", path, err) }
		if err := f.Close(); err != nil { log.Fatal(err) }
		fmt.Printf("wrote %s (%d pages)\n", path, len(canvases))
	}
}

// }}}

func main() {
	cfg,err := config.Load(fConfig)
	if err != nil { log.Fatal(err) }
	if fDir != "" { cfg.Source = config.Source{Kind:"dir", Root:fDir} }
	if fYear > 0 { cfg.Initial.Year = fYear }
	if fMonth >= 0 { cfg.Initial.Month = fMonth }
	if fRegion != "" {
		if cfg.Initial.Region,err = parseRegion(fRegion); err != nil { log.Fatal(err) }
	}
	if err := cfg.Validate(); err != nil { log.Fatal(err) }

	src,err := cfg.Source.Open(ctx)
	if err != nil { log.Fatal(err) }

	v := viz.New(backend.Loader{Source:src, Names:cfg.Names}, viz.Options{
		Title:  cfg.Title,
		Layout: cfg.Layout,
		Style:  cfg.UIStyle(),
	})
	region,_ := cfg.Initial.Rect()
	v.SetInitial(region, castviz.Month(cfg.Initial.Month))
	if err := v.Load(ctx, cfg.Initial.Year); err != nil { log.Fatal(err) }

	if fStats {
		stats(v.Dataset())
		return
	}

	st := v.State()
	fmt.Printf("%s: %d of %d casts selected\n", st.Label(), st.Selection.Len(), st.Stations)
	render(v)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
