package castviz

import(
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is one row of a record set. Key is the row's index in the source
// encoding (the stringified pandas index, or the array position).
type Record struct {
	Key    string
	Fields map[string]interface{}
}

// Records is a record set, in index order.
type Records []Record

// {{{ DecodeRecords

// DecodeRecords accepts the same logical sequence of records in any of these shapes:
//   [ {"cid":1, "lon":-125.1}, ... ]                      array of records
//   { "0": {"cid":1, "lon":-125.1}, ... }                 records keyed by index
//   { "cid": {"0":1, ...}, "lon": {"0":-125.1, ...} }     columns keyed by index
//   { "cid": [1, ...], "lon": [-125.1, ...] }             columns as arrays
func DecodeRecords(data []byte) (Records, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 { return Records{}, nil }

	switch data[0] {
	case '[':
		rows := []json.RawMessage{}
		if err := unmarshalNumbers(data, &rows); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		recs := Records{}
		for i,raw := range rows {
			fields := map[string]interface{}{}
			if err := unmarshalNumbers(raw, &fields); err != nil {
				return nil, fmt.Errorf("decode record [%d]: %w", i, err)
			}
			recs = append(recs, Record{Key:strconv.Itoa(i), Fields:fields})
		}
		return recs, nil

	case '{':
		top := map[string]json.RawMessage{}
		if err := unmarshalNumbers(data, &top); err != nil {
			return nil, fmt.Errorf("decode record object: %w", err)
		}
		if len(top) == 0 { return Records{}, nil }
		if allIndexKeys(top) {
			return decodeIndexedRecords(top)
		}
		return decodeColumns(top)
	}

	return nil, fmt.Errorf("decode records: want a json array or object, got %q...", firstBytes(data, 16))
}

// }}}
// {{{ decodeIndexedRecords

func decodeIndexedRecords(top map[string]json.RawMessage) (Records, error) {
	recs := Records{}
	for _,k := range sortedKeys(top) {
		fields := map[string]interface{}{}
		if err := unmarshalNumbers(top[k], &fields); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", k, err)
		}
		recs = append(recs, Record{Key:k, Fields:fields})
	}
	return recs, nil
}

// }}}
// {{{ decodeColumns

func decodeColumns(top map[string]json.RawMessage) (Records, error) {
	rows := map[string]map[string]interface{}{}
	row := func(k string) map[string]interface{} {
		if _,exists := rows[k]; !exists { rows[k] = map[string]interface{}{} }
		return rows[k]
	}

	for col,raw := range top {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 { continue }
		switch raw[0] {
		case '{':
			vals := map[string]interface{}{}
			if err := unmarshalNumbers(raw, &vals); err != nil {
				return nil, fmt.Errorf("decode column %q: %w", col, err)
			}
			for k,v := range vals { row(k)[col] = v }
		case '[':
			vals := []interface{}{}
			if err := unmarshalNumbers(raw, &vals); err != nil {
				return nil, fmt.Errorf("decode column %q: %w", col, err)
			}
			for i,v := range vals { row(strconv.Itoa(i))[col] = v }
		default:
			return nil, fmt.Errorf("decode column %q: want object or array, got %q", col,
				firstBytes(raw, 16))
		}
	}

	recs := Records{}
	for _,k := range sortedKeys(rows) {
		recs = append(recs, Record{Key:k, Fields:rows[k]})
	}
	return recs, nil
}

// }}}
// {{{ sortedKeys, allIndexKeys, unmarshalNumbers, firstBytes

// sortedKeys orders integer keys numerically, ahead of any other keys (lexically).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m { keys = append(keys, k) }
	sort.Slice(keys, func(i, j int) bool {
		a,errA := strconv.ParseInt(keys[i], 10, 64)
		b,errB := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case errA == nil && errB == nil: return a < b
		case errA == nil:                return true
		case errB == nil:                return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

func allIndexKeys(m map[string]json.RawMessage) bool {
	for k,raw := range m {
		if _,err := strconv.ParseInt(k, 10, 64); err != nil { return false }
		if raw = bytes.TrimSpace(raw); len(raw) == 0 || raw[0] != '{' { return false }
	}
	return true
}

func unmarshalNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func firstBytes(b []byte, n int) string {
	if len(b) > n { b = b[:n] }
	return string(b)
}

// }}}

// {{{ r.Value, r.Float, r.Null, r.String

func (r Record)Value(name string) (interface{}, bool) {
	v,exists := r.Fields[name]
	return v, exists && v != nil
}

func (r Record)Float(name string) (float64, bool) {
	v,_ := r.Value(name)
	return toFloat(v)
}

func (r Record)Null(name string) NullFloat64 {
	if f,ok := r.Float(name); ok { return Float(f) }
	return NullFloat64{}
}

func (r Record)String(name string) (string, bool) {
	v,ok := r.Value(name)
	if !ok { return "", false }
	switch t := v.(type) {
	case string:      return t, true
	case json.Number: return t.String(), true
	}
	return fmt.Sprintf("%v", v), true
}

// }}}
// {{{ r.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time understands time.Time values (from BigQuery), epoch milliseconds (the
// pandas default), and the usual ISO-ish strings.
func (r Record)Time(name string) (time.Time, bool) {
	v,ok := r.Value(name)
	if !ok { return time.Time{}, false }

	if t,isTime := v.(time.Time); isTime {
		return t.UTC(), !t.IsZero()
	}
	// Strings are dates, never epoch millis; "2017" is not a moment in 1970
	if s,isStr := v.(string); isStr {
		for _,layout := range timeLayouts {
			if t,err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}
	if ms,isNum := toFloat(v); isNum {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

// }}}
// {{{ r.Floats

// Floats reads an array-valued field; unusable elements come back as nulls.
func (r Record)Floats(name string) ([]NullFloat64, bool) {
	v,ok := r.Value(name)
	if !ok { return nil, false }
	arr,isArr := v.([]interface{})
	if !isArr { return nil, false }

	out := make([]NullFloat64, len(arr))
	for i,elem := range arr {
		if f,ok := toFloat(elem); ok { out[i] = Float(f) }
	}
	return out, true
}

// }}}
// {{{ toFloat

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		var err error
		if f,err = t.Float64(); err != nil { return 0, false }
	case float64: f = t
	case float32: f = float64(t)
	case int:     f = float64(t)
	case int64:   f = float64(t)
	case string:
		var err error
		if f,err = strconv.ParseFloat(strings.TrimSpace(t), 64); err != nil { return 0, false }
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) { return 0, false }
	return f, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
