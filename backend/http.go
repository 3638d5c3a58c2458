package backend

import(
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skypies/castviz"
)

// HTTPSource fetches record sets from under a base URL, as the browser did.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client // if nil, a client with a one minute timeout
}

func (s HTTPSource)String() string { return s.BaseURL }

func (s HTTPSource)Fetch(ctx context.Context, name string) (castviz.Records, error) {
	client := s.Client
	if client == nil { client = &http.Client{Timeout:time.Minute} }

	u,err := url.JoinPath(strings.TrimSuffix(s.BaseURL, "/"), name)
	if err != nil { return nil, fmt.Errorf("%s: %v", name, err) }

	req,err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil { return nil, err }
	resp,err := client.Do(req)
	if err != nil { return nil, fmt.Errorf("GET %s: %v", u, err) }
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", u, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}

	return decode(name, resp.Body)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
