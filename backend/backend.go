// Package backend fetches the raw record sets (coastline, station info,
// observations, model values) by name, from wherever they are kept.
package backend

import(
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skypies/castviz"
)

// ErrNotFound is returned (possibly wrapped) when a named record set does not exist.
var ErrNotFound = errors.New("record set not found")

// Source is anything that can fetch a record set by name.
type Source interface {
	Fetch(ctx context.Context, name string) (castviz.Records, error)
	String() string
}

// Names are the record set names to fetch. They may contain "{year}". Mod is
// optional; leave it blank, or let it be missing, when there is no model run.
type Names struct {
	Coast string `yaml:"coast"`
	Info  string `yaml:"info"`
	Obs   string `yaml:"obs"`
	Mod   string `yaml:"mod"`
}

// {{{ Expand, n.ForYear

// Expand fills in the year. A template that needs a year, but didn't get one, is an error.
func Expand(name string, year int) (string, error) {
	if !strings.Contains(name, "{year}") { return name, nil }
	if year <= 0 { return "", fmt.Errorf("%q needs a year", name) }
	return strings.ReplaceAll(name, "{year}", strconv.Itoa(year)), nil
}

func (n Names)ForYear(year int) (Names, error) {
	var err error
	out := Names{}
	for _,pair := range []struct{ dst *string; src string }{
		{&out.Coast, n.Coast}, {&out.Info, n.Info}, {&out.Obs, n.Obs}, {&out.Mod, n.Mod},
	} {
		if *pair.dst,err = Expand(pair.src, year); err != nil { return Names{}, err }
	}
	return out, nil
}

// }}}
// {{{ decode

// decode reads a whole record set, gunzipping it first if the name says so.
func decode(name string, rdr io.Reader) (castviz.Records, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader,err := gzip.NewReader(rdr)
		if err != nil { return nil, fmt.Errorf("%s: gunzip: %v", name, err) }
		defer gzipReader.Close()
		rdr = gzipReader
	}

	buf := bytes.Buffer{}
	if _,err := buf.ReadFrom(rdr); err != nil {
		return nil, fmt.Errorf("%s: read: %v", name, err)
	}
	recs,err := castviz.DecodeRecords(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return recs, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
