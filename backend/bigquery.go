package backend

import(
	"context"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/skypies/castviz"
)

// BigQuerySource reads each record set from a table of the same name. When the
// tables were loaded from pandas, IndexColumn names the column holding the
// original index; rows are keyed and ordered by it.
type BigQuerySource struct {
	Project     string
	Dataset     string
	IndexColumn string

	client *bigquery.Client
}

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func NewBigQuerySource(ctx context.Context, project, dataset string, opts ...option.ClientOption) (*BigQuerySource, error) {
	client,err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("Creating bigquery client: %v", err)
	}
	return &BigQuerySource{Project:project, Dataset:dataset, client:client}, nil
}

func (s *BigQuerySource)String() string { return fmt.Sprintf("bq:%s.%s", s.Project, s.Dataset) }

func (s *BigQuerySource)Close() error { return s.client.Close() }

// {{{ s.SQL

func (s *BigQuerySource)SQL(table string) (string, error) {
	if !tableNameRegexp.MatchString(table) {
		return "", fmt.Errorf("bad table name %q", table)
	}
	sql := fmt.Sprintf("SELECT * FROM `%s.%s.%s`", s.Project, s.Dataset, table)
	if s.IndexColumn != "" {
		if !tableNameRegexp.MatchString(s.IndexColumn) {
			return "", fmt.Errorf("bad index column %q", s.IndexColumn)
		}
		sql += fmt.Sprintf(" ORDER BY `%s`", s.IndexColumn)
	}
	return sql, nil
}

// }}}
// {{{ s.Fetch

func (s *BigQuerySource)Fetch(ctx context.Context, name string) (castviz.Records, error) {
	sql,err := s.SQL(name)
	if err != nil { return nil, err }

	it,err := s.client.Query(sql).Read(ctx)
	if err != nil {
		if apiErr,ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			return nil, fmt.Errorf("%s: %w", sql, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %v", sql, err)
	}

	recs := castviz.Records{}
	for {
		row := map[string]bigquery.Value{}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %v", sql, len(recs), err)
		}
		recs = append(recs, RowToRecord(row, len(recs), s.IndexColumn))
	}
	return recs, nil
}

// }}}
// {{{ RowToRecord

// RowToRecord turns a bigquery row into a record. Repeated fields become
// arrays; dates and datetimes become strings the record accessors can parse.
func RowToRecord(row map[string]bigquery.Value, rowNum int, indexColumn string) castviz.Record {
	rec := castviz.Record{Key:strconv.Itoa(rowNum), Fields:map[string]interface{}{}}
	for k,v := range row {
		if k == indexColumn && indexColumn != "" {
			if id,ok := castviz.NewCastID(v); ok { rec.Key = string(id) }
			continue
		}
		rec.Fields[k] = fromBigQuery(v)
	}
	return rec
}

func fromBigQuery(v bigquery.Value) interface{} {
	switch t := v.(type) {
	case []bigquery.Value:
		arr := make([]interface{}, len(t))
		for i,elem := range t { arr[i] = fromBigQuery(elem) }
		return arr
	case time.Time:
		return t
	case *big.Rat:
		f,_ := t.Float64()
		return f
	case fmt.Stringer:
		// civil.Date and civil.DateTime print in the layouts Record.Time knows
		return t.String()
	}
	return v
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
