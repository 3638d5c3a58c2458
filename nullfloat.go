package castviz

import(
	"bytes"
	"encoding/json"
	"strconv"
)

// NullFloat64 is a measured value that may be absent.
type NullFloat64 struct {
	Value    float64
	HasValue bool
}

func Float(v float64) NullFloat64 { return NullFloat64{Value:v, HasValue:true} }

func (f NullFloat64)String() string {
	if !f.HasValue { return "null" }
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

func (f *NullFloat64)UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = NullFloat64{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func (f NullFloat64)MarshalJSON() ([]byte, error) {
	if !f.HasValue { return []byte("null"), nil }
	return json.Marshal(f.Value)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
