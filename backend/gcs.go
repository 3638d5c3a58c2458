package backend

import(
	"context"
	"errors"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/skypies/castviz"
)

// GCSSource reads record sets from objects in a Cloud Storage bucket.
type GCSSource struct {
	Bucket string
	Prefix string // a folder within the bucket, if any

	client *storage.Client
}

func NewGCSSource(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSSource, error) {
	client,err := storage.NewClient(ctx, opts...)
	if err != nil { return nil, fmt.Errorf("GCS client: %v", err) }
	return &GCSSource{Bucket:bucket, Prefix:prefix, client:client}, nil
}

func (s *GCSSource)String() string { return "gs://" + path.Join(s.Bucket, s.Prefix) }

func (s *GCSSource)Close() error { return s.client.Close() }

func (s *GCSSource)ObjectName(name string) string { return path.Join(s.Prefix, name) }

// {{{ s.Fetch

func (s *GCSSource)Fetch(ctx context.Context, name string) (castviz.Records, error) {
	obj := s.ObjectName(name)
	gcsReader,err := s.client.Bucket(s.Bucket).Object(obj).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("GCS-Open %s|%s: %w", s.Bucket, obj, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("GCS-Open %s|%s: %v", s.Bucket, obj, err)
	}
	defer gcsReader.Close()

	return decode(name, gcsReader)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
