package prop

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

type boolType struct{}

// Bool returns the boolean property type.
func Bool() Type { return boolType{} }

func (boolType) Kind() Kind     { return KindBool }
func (boolType) Zero() any      { return false }
func (boolType) String() string { return "bool" }
func (boolType) Encode(v any) any {
	return v
}

func (boolType) Coerce(raw any) (any, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, mismatch("bool", raw)
	}
	return b, nil
}

// IntType is an integer property type with an optional inclusive range.
type IntType struct {
	hasMin, hasMax bool
	min, max       int64
}

// Int returns an unbounded integer type.
func Int() IntType { return IntType{} }

// Min returns a copy of t that rejects values below lo.
func (t IntType) Min(lo int64) IntType {
	t.hasMin, t.min = true, lo
	return t
}

// Max returns a copy of t that rejects values above hi.
func (t IntType) Max(hi int64) IntType {
	t.hasMax, t.max = true, hi
	return t
}

func (IntType) Kind() Kind       { return KindInt }
func (IntType) Zero() any        { return int64(0) }
func (IntType) Encode(v any) any { return v }

func (t IntType) String() string {
	return "int" + rangeSuffix(t.hasMin, t.hasMax, strconv.FormatInt(t.min, 10), strconv.FormatInt(t.max, 10))
}

func (t IntType) Coerce(raw any) (any, error) {
	n, err := toInt(raw)
	if err != nil {
		return nil, err
	}
	if (t.hasMin && n < t.min) || (t.hasMax && n > t.max) {
		return nil, fmt.Errorf("%w: %d not in %s", ErrOutOfRange, n, t)
	}
	return n, nil
}

// FloatType is a floating point property type with an optional inclusive
// range.
type FloatType struct {
	hasMin, hasMax bool
	min, max       float64
}

// Float returns an unbounded float type.
func Float() FloatType { return FloatType{} }

// Between returns a copy of t restricted to [lo, hi].
func (t FloatType) Between(lo, hi float64) FloatType {
	t.hasMin, t.min = true, lo
	t.hasMax, t.max = true, hi
	return t
}

// Min returns a copy of t that rejects values below lo.
func (t FloatType) Min(lo float64) FloatType {
	t.hasMin, t.min = true, lo
	return t
}

func (FloatType) Kind() Kind       { return KindFloat }
func (FloatType) Zero() any        { return float64(0) }
func (FloatType) Encode(v any) any { return v }

func (t FloatType) String() string {
	return "float" + rangeSuffix(t.hasMin, t.hasMax, formatFloat(t.min), formatFloat(t.max))
}

func (t FloatType) Coerce(raw any) (any, error) {
	f, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s is not finite", ErrOutOfRange, formatFloat(f))
	}
	if (t.hasMin && f < t.min) || (t.hasMax && f > t.max) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrOutOfRange, formatFloat(f), t)
	}
	return f, nil
}

type stringType struct{}

// String returns the free-form string type.
func String() Type { return stringType{} }

func (stringType) Kind() Kind       { return KindString }
func (stringType) Zero() any        { return "" }
func (stringType) String() string   { return "string" }
func (stringType) Encode(v any) any { return v }

func (stringType) Coerce(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch("string", raw)
	}
	return s, nil
}

func rangeSuffix(hasMin, hasMax bool, lo, hi string) string {
	switch {
	case hasMin && hasMax:
		return "[" + lo + "," + hi + "]"
	case hasMin:
		return "[" + lo + ",)"
	case hasMax:
		return "(," + hi + "]"
	}
	return ""
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// toInt accepts any Go integer, an integral float (JSON numbers decode as
// float64) or a json.Number.
func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, mismatch("int", raw)
		}
		return floatToInt(f, raw)
	case float64:
		return floatToInt(v, raw)
	case float32:
		return floatToInt(float64(v), raw)
	case bool, nil:
		return 0, mismatch("int", raw)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrOutOfRange, u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float(), raw)
	}
	return 0, mismatch("int", raw)
}

func floatToInt(f float64, raw any) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, mismatch("int", raw)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s overflows int64", ErrOutOfRange, formatFloat(f))
	}
	return int64(f), nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, mismatch("float", raw)
		}
		return f, nil
	case bool, nil:
		return 0, mismatch("float", raw)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return 0, mismatch("float", raw)
}
