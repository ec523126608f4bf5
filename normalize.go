package jtoken

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Char is a single character. A bare rune is an int32 and normalizes to
// Integer; wrap it in Char to write a one-character String.
type Char rune

// Number is a numeric literal kept as text, like json.Number. Integral text
// normalizes to Integer, text with a fraction or exponent to an exact Float.
type Number string

// Normalize maps a Go scalar to its canonical token.
//
//	nil, nil pointers             -> Null (a nil *string is an empty String)
//	UndefinedValue                -> Undefined
//	string, Char                  -> String
//	int*, uint*, *big.Int         -> Integer (int64; out of range fails)
//	float32, float64              -> Float
//	decimal.Decimal, *big.Float   -> Float with decimal digits kept
//	json.Number, Number           -> Integer or Float depending on the text
//	bool                          -> Boolean
//	time.Time                     -> Date
//	[]byte                        -> Bytes (copied)
//	*Value                        -> a copy of the value
//
// Named types are normalized by their underlying kind. Anything else fails
// with *UnsupportedTypeError.
func Normalize(v any) (*Value, error) { return normalize("Normalize", v) }

func normalize(op string, v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return x.Clone().(*Value), nil
	case undefined:
		return Undefined(), nil
	case string:
		return String(x), nil
	case *string:
		if x == nil {
			return String(""), nil
		}
		return String(*x), nil
	case Char:
		return String(string(rune(x))), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUint(op, uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return fromUint(op, x)
	case float32:
		return fromFloat32(x), nil
	case float64:
		return Float(x), nil
	case decimal.Decimal:
		return Decimal(x), nil
	case decimal.NullDecimal:
		if !x.Valid {
			return Null(), nil
		}
		return Decimal(x.Decimal), nil
	case *big.Int:
		if x == nil {
			return Null(), nil
		}
		if !x.IsInt64() {
			return nil, &NormalizationError{Op: op, Value: x.String(), Cause: strconv.ErrRange}
		}
		return Integer(x.Int64()), nil
	case *big.Float:
		if x == nil {
			return Null(), nil
		}
		return fromBigFloat(op, x)
	case json.Number:
		return fromNumberText(op, string(x))
	case Number:
		return fromNumberText(op, string(x))
	case time.Time:
		return Date(x), nil
	case []byte:
		if x == nil {
			return Null(), nil
		}
		return Bytes(x), nil
	}
	return normalizeReflect(op, reflect.ValueOf(v))
}

func normalizeReflect(op string, rv reflect.Value) (*Value, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalize(op, rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(op, rv.Uint())
	case reflect.Float32:
		return fromFloat32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.IsNil() {
				return Null(), nil
			}
			return Bytes(rv.Bytes()), nil
		}
	}
	return nil, &UnsupportedTypeError{Op: op, Type: rv.Type().String()}
}

func fromUint(op string, u uint64) (*Value, error) {
	if u > math.MaxInt64 {
		return nil, &NormalizationError{Op: op, Value: strconv.FormatUint(u, 10), Cause: strconv.ErrRange}
	}
	return Integer(int64(u)), nil
}

// fromFloat32 keeps the shortest decimal text of f so 0.1f stays 0.1 instead
// of its float64 widening 0.10000000149011612.
func fromFloat32(f float32) *Value {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return Float(float64(f))
	}
	return Decimal(decimal.NewFromFloat32(f))
}

func fromBigFloat(op string, f *big.Float) (*Value, error) {
	if f.IsInf() {
		return Float(math.Inf(f.Sign())), nil
	}
	d, err := decimal.NewFromString(f.Text('g', -1))
	if err != nil {
		return nil, &NormalizationError{Op: op, Value: f.String(), Cause: err}
	}
	return Decimal(d), nil
}

func fromNumberText(op, s string) (*Value, error) {
	if strings.ContainsAny(s, ".eE") {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, &NormalizationError{Op: op, Value: s, Cause: err}
		}
		return Decimal(d), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &NormalizationError{Op: op, Value: s, Cause: err}
	}
	return Integer(i), nil
}
