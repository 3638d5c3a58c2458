package backend

import(
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skypies/castviz"
)

// Loader fetches everything a dataset needs, concurrently. Either all the
// required record sets arrive, or Load fails; there is no partial result.
type Loader struct {
	Source Source
	Names  Names
	Log    *log.Logger // if nil, the standard logger
}

func (l Loader)logf(format string, args ...interface{}) {
	if l.Log != nil {
		l.Log.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}

// {{{ l.Load

func (l Loader)Load(ctx context.Context, year int) (castviz.Input, error) {
	names,err := l.Names.ForYear(year)
	if err != nil { return castviz.Input{}, err }
	if names.Coast == "" || names.Info == "" || names.Obs == "" {
		return castviz.Input{}, fmt.Errorf("loader: coast, info and obs names are all required")
	}

	tStart := time.Now()
	in := castviz.Input{}
	g,gctx := errgroup.WithContext(ctx)

	fetch := func(name string, dst *castviz.Records, optional bool) {
		g.Go(func() error {
			recs,err := l.Source.Fetch(gctx, name)
			if err != nil {
				if optional && errors.Is(err, ErrNotFound) {
					l.logf("%s: optional %q not found, carrying on", l.Source, name)
					return nil
				}
				return fmt.Errorf("%s: %w", l.Source, err)
			}
			*dst = recs
			return nil
		})
	}

	fetch(names.Coast, &in.Coast, false)
	fetch(names.Info,  &in.Info,  false)
	fetch(names.Obs,   &in.Obs,   false)
	if names.Mod != "" {
		fetch(names.Mod, &in.Mod, true)
	}

	if err := g.Wait(); err != nil {
		return castviz.Input{}, err
	}

	l.logf("%s: loaded year %d (%d coast, %d info, %d obs, %d mod records) in %s", l.Source, year,
		len(in.Coast), len(in.Info), len(in.Obs), len(in.Mod), time.Since(tStart))
	return in, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
