package backend

import(
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/skypies/castviz"
)

// DirSource reads record sets from json files under a directory.
type DirSource struct {
	Root string
}

func (s DirSource)String() string { return "dir:" + s.Root }

func (s DirSource)Fetch(ctx context.Context, name string) (castviz.Records, error) {
	if !fs.ValidPath(filepath.ToSlash(name)) {
		return nil, fmt.Errorf("%s: bad name %q", s, name)
	}
	f,err := os.Open(filepath.Join(s.Root, filepath.FromSlash(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", s.Root, name, ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(name, f)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
