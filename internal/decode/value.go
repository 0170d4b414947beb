// internal/decode/value.go
package decode

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// Value is one normalized register value.
// Registers without a scaling rule stay integers; scaled registers become floats.
type Value struct {
	i       int64
	f       float64
	isFloat bool
}

func IntValue(v int64) Value     { return Value{i: v} }
func FloatValue(v float64) Value { return Value{f: v, isFloat: true} }

func (v Value) IsFloat() bool { return v.isFloat }

// Int returns the integer value. Floats are truncated toward zero.
func (v Value) Int() int64 {
	if v.isFloat {
		return int64(v.f)
	}
	return v.i
}

func (v Value) Float() float64 {
	if v.isFloat {
		return v.f
	}
	return float64(v.i)
}

func (v Value) String() string {
	if v.isFloat {
		return string(appendFloat(nil, v.f))
	}
	return strconv.FormatInt(v.i, 10)
}

// MarshalJSON keeps floats recognisable on the wire: a whole float is written as 60.0, not 60.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isFloat {
		b, err := json.Marshal(v.f)
		if err != nil {
			return nil, err
		}
		return wholeFloat(b), nil
	}
	return strconv.AppendInt(nil, v.i, 10), nil
}

func appendFloat(dst []byte, f float64) []byte {
	return wholeFloat(strconv.AppendFloat(dst, f, 'f', -1, 64))
}

func wholeFloat(b []byte) []byte {
	if bytes.ContainsAny(b, ".eEnN") {
		return b
	}
	return append(b, '.', '0')
}

// Normalized is the corrected, scaled view of one poll cycle, indexed by register.
type Normalized [registers.Count]Value

// MarshalJSON emits an object keyed by register name, in wire order.
func (n Normalized) MarshalJSON() ([]byte, error) {
	obj := make(Object, 0, registers.Count)
	for _, r := range registers.All() {
		obj = append(obj, Field{Key: r.Name(), Value: n[r]})
	}
	return obj.MarshalJSON()
}

// ---- ordered JSON object ----

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps insertion order.
// Duplicate keys collapse onto the first position; the last value wins.
type Object []Field

// Dedup returns the object with duplicate keys collapsed.
func (o Object) Dedup() Object {
	idx := make(map[string]int, len(o))
	out := make(Object, 0, len(o))
	for _, f := range o {
		if i, ok := idx[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		idx[f.Key] = len(out)
		out = append(out, f)
	}
	return out
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.Dedup() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
