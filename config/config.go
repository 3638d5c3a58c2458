// Package config loads the yaml file describing where the data lives, how
// each plot is laid out, and what the views start off showing.
package config

import(
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skypies/castviz"
	"github.com/skypies/castviz/backend"
	"github.com/skypies/castviz/ui"
)

type Config struct {
	Title   string         `yaml:"title"`
	Source  Source         `yaml:"source"`
	Names   backend.Names  `yaml:"names"`
	Years   []int          `yaml:"years"`   // the choices in the year dropdown
	Initial Initial        `yaml:"initial"`
	Layout  castviz.Layout `yaml:"layout"`
	Style   ui.Style       `yaml:"style"`
	ColorBy string         `yaml:"colorby"` // "state" or "contrast"

	Listen  string         `yaml:"listen"`  // http address
	GRPC    string         `yaml:"grpc"`    // grpc address; blank for none
}

// Source says which backend.Source to build.
type Source struct {
	Kind        string `yaml:"kind"`         // dir, http, gcs, bigquery
	Root        string `yaml:"root"`         // dir
	URL         string `yaml:"url"`          // http
	Bucket      string `yaml:"bucket"`       // gcs
	Prefix      string `yaml:"prefix"`       // gcs
	Project     string `yaml:"project"`      // bigquery
	Dataset     string `yaml:"dataset"`      // bigquery
	IndexColumn string `yaml:"index_column"` // bigquery
}

// Initial is the state the views start in, and return to on a reload.
type Initial struct {
	Year   int        `yaml:"year"`
	Month  int        `yaml:"month"`  // 0 for all months
	Region []float64  `yaml:"region"` // x0,y0,x1,y1 in map pixels; empty for none
}

func (i Initial)Rect() (*castviz.Rect, error) {
	switch len(i.Region) {
	case 0: return nil, nil
	case 4:
		r := castviz.NewRect(i.Region[0], i.Region[1], i.Region[2], i.Region[3])
		return &r, nil
	}
	return nil, fmt.Errorf("initial.region: want 4 values (x0,y0,x1,y1), got %d", len(i.Region))
}

// {{{ s.Open

// Open builds the backend the source describes. Cloud clients pick up the
// ambient credentials.
func (s Source)Open(ctx context.Context) (backend.Source, error) {
	switch s.Kind {
	case "dir":      return backend.DirSource{Root:s.Root}, nil
	case "http":     return backend.HTTPSource{BaseURL:s.URL}, nil
	case "gcs":
		gcs,err := backend.NewGCSSource(ctx, s.Bucket, s.Prefix)
		if err != nil { return nil, err }
		return gcs, nil
	case "bigquery":
		bq,err := backend.NewBigQuerySource(ctx, s.Project, s.Dataset)
		if err != nil { return nil, err }
		bq.IndexColumn = s.IndexColumn
		return bq, nil
	}
	return nil, fmt.Errorf("source: unknown kind %q", s.Kind)
}

// }}}
// {{{ Default

func profileFrame(x0, x1 float64) castviz.FrameSpec {
	return castviz.FrameSpec{X0:x0, X1:x1, Y0:-500, Y1:0, W0:200, H0:250, Margin:40}
}

func Default() Config {
	return Config{
		Title: "Cast Locations",
		Source: Source{Kind:"dir", Root:"."},
		Names: backend.Names{
			Coast: "tracks2/coast_xy.json",
			Info:  "obs/combined_bottle_{year}_cas7_t0_x4b_info.json",
			Obs:   "obs/combined_bottle_{year}_cas7_t0_x4b_obs.json",
			Mod:   "obs/combined_bottle_{year}_cas7_t0_x4b_mod.json",
		},
		Years: []int{2013, 2014, 2015, 2016, 2017, 2018, 2019, 2020, 2021, 2022, 2023},
		Initial: Initial{Year:2013},
		Layout: castviz.Layout{
			Map: castviz.MapFrameSpec(-130, -122, 42, 52, 350, 10),
			Fields: []castviz.Field{
				{Name:"CT",       Label:"CT (deg C)",  Frame:profileFrame(4, 18)},
				{Name:"SA",       Label:"SA (g/kg)",   Frame:profileFrame(30, 35)},
				{Name:"DO (uM)",  Frame:profileFrame(0, 400)},
				{Name:"NO3 (uM)", Frame:profileFrame(0, 45)},
				{Name:"DIC (uM)", Frame:profileFrame(1800, 2400)},
				{Name:"TA (uM)",  Frame:profileFrame(1900, 2400)},
			},
		},
		Style: ui.DefaultStyle(),
		ColorBy: "state",
		Listen: ":8080",
	}
}

// }}}
// {{{ Load

// Load reads a config file over the defaults, so a file need only say what differs.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" { return cfg, cfg.Validate() }

	data,err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg.Validate()
}

// }}}
// {{{ c.Validate

func (c Config)Validate() error {
	switch c.Source.Kind {
	case "dir":
		if c.Source.Root == "" { return fmt.Errorf("source: dir needs a root") }
	case "http":
		if c.Source.URL == "" { return fmt.Errorf("source: http needs a url") }
	case "gcs":
		if c.Source.Bucket == "" { return fmt.Errorf("source: gcs needs a bucket") }
	case "bigquery":
		if c.Source.Project == "" || c.Source.Dataset == "" {
			return fmt.Errorf("source: bigquery needs a project and a dataset")
		}
	default:
		return fmt.Errorf("source: unknown kind %q", c.Source.Kind)
	}

	if c.Names.Coast == "" || c.Names.Info == "" || c.Names.Obs == "" {
		return fmt.Errorf("names: coast, info and obs are all required")
	}
	if _,err := c.Names.ForYear(c.Initial.Year); err != nil {
		return fmt.Errorf("initial.year: %w", err)
	}
	if m := castviz.Month(c.Initial.Month); m != castviz.AnyMonth && !m.Valid() {
		return fmt.Errorf("initial.month: %d is not a month", c.Initial.Month)
	}
	if _,err := c.Initial.Rect(); err != nil {
		return err
	}
	if len(c.Layout.Fields) == 0 {
		return fmt.Errorf("layout: no fields")
	}
	return nil
}

// }}}
// {{{ c.HasYear, c.UIStyle

func (c Config)HasYear(year int) bool {
	if len(c.Years) == 0 { return true }
	for _,y := range c.Years {
		if y == year { return true }
	}
	return false
}

func (c Config)UIStyle() ui.Style {
	st := c.Style
	st.Scheme = ui.ParseColorScheme(c.ColorBy)
	return st
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
