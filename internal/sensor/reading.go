package sensor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Fields lists the reading features in the order the models were trained on.
var Fields = []string{"duration", "temperature", "voltage", "current", "load", "humidity"}

// Reading is one row of sensor values ordered like Fields. The length is not
// enforced here; the scaler rejects vectors it was not fitted for.
type Reading []float64

var ErrEmptyPayload = errors.New("empty reading payload")

// Sample returns the fixed example reading used by the generate action.
func Sample() Reading {
	return Reading{360, 85, 90, 3.5, 45, 80}
}

func (r Reading) Clone() Reading {
	if r == nil {
		return nil
	}
	out := make(Reading, len(r))
	copy(out, r)
	return out
}

func (r Reading) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Decode accepts a JSON array of numbers or a JSON object keyed by Fields.
// Objects must name every field.
func Decode(payload []byte) (Reading, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}
	switch trimmed[0] {
	case '[':
		var values []float64
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, fmt.Errorf("decode reading array: %w", err)
		}
		return Reading(values), nil
	case '{':
		var named map[string]float64
		if err := json.Unmarshal(trimmed, &named); err != nil {
			return nil, fmt.Errorf("decode reading object: %w", err)
		}
		return FromNamed(named)
	default:
		return nil, fmt.Errorf("decode reading: unexpected payload starting with %q", trimmed[0])
	}
}

func FromNamed(named map[string]float64) (Reading, error) {
	out := make(Reading, len(Fields))
	for i, field := range Fields {
		v, ok := named[field]
		if !ok {
			return nil, fmt.Errorf("reading field %q is missing", field)
		}
		out[i] = v
	}
	if len(named) > len(Fields) {
		return nil, fmt.Errorf("reading has %d fields, expected %d", len(named), len(Fields))
	}
	return out, nil
}

// Parse reads a comma separated list of numbers, as given on the command line.
func Parse(s string) (Reading, error) {
	fields := strings.Split(s, ",")
	out := make(Reading, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parse reading value %q: %w", f, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, ErrEmptyPayload
	}
	return out, nil
}
