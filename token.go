package jtoken

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reoring/jtoken/codec"
)

// Kind enumerates canonical token kinds.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindObject
	KindArray
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDate
	KindBytes
)

var kindNames = [...]string{
	KindNull:      "Null",
	KindUndefined: "Undefined",
	KindObject:    "Object",
	KindArray:     "Array",
	KindString:    "String",
	KindInteger:   "Integer",
	KindFloat:     "Float",
	KindBoolean:   "Boolean",
	KindDate:      "Date",
	KindBytes:     "Bytes",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsContainer reports whether k is Object or Array.
func (k Kind) IsContainer() bool { return k == KindObject || k == KindArray }

// Token is a node of a document tree: *Object, *Array or *Value.
type Token interface {
	Kind() Kind
	// Clone returns a deep copy sharing no storage with the receiver.
	Clone() Token
	// Equal reports structural equality (see Equal).
	Equal(other Token) bool

	token()
}

// Equal reports whether a and b are structurally equal. Arrays compare
// element-wise in order; objects compare by property name regardless of
// insertion order. Null and Undefined are never equal to each other. A nil
// Token, typed or not, equals only another nil Token.
func Equal(a, b Token) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.Equal(b)
}

// Clone deep-copies tok. Clone(nil) is nil.
func Clone(tok Token) Token {
	if isNil(tok) {
		return nil
	}
	return tok.Clone()
}

// isNil reports whether tok is nil or a nil pointer of one of the token types.
func isNil(tok Token) bool {
	switch t := tok.(type) {
	case nil:
		return true
	case *Object:
		return t == nil
	case *Array:
		return t == nil
	case *Value:
		return t == nil
	}
	return false
}

// Value is a leaf token: Null, Undefined or one of the scalar kinds.
//
// The payload is held in its canonical representation: string, int64,
// float64 or decimal.Decimal (Float), bool, time.Time, []byte.
type Value struct {
	kind Kind
	v    any
}

type undefined struct{}

// UndefinedValue is the marker accepted by WriteValue and Normalize for the
// Undefined kind. It is distinct from nil, which normalizes to Null.
var UndefinedValue any = undefined{}

var (
	nullValue      = &Value{kind: KindNull}
	undefinedValue = &Value{kind: KindUndefined, v: undefined{}}
)

// Null returns the Null token.
func Null() *Value { return nullValue }

// Undefined returns the Undefined token.
func Undefined() *Value { return undefinedValue }

// String returns a String token.
func String(s string) *Value { return &Value{kind: KindString, v: s} }

// Integer returns an Integer token.
func Integer(i int64) *Value { return &Value{kind: KindInteger, v: i} }

// Float returns a Float token holding a binary float.
func Float(f float64) *Value { return &Value{kind: KindFloat, v: f} }

// Decimal returns a Float token that keeps the decimal digits of d.
func Decimal(d decimal.Decimal) *Value { return &Value{kind: KindFloat, v: d} }

// Boolean returns a Boolean token.
func Boolean(b bool) *Value { return &Value{kind: KindBoolean, v: b} }

// Date returns a Date token; the location (and so the offset) of t is kept.
func Date(t time.Time) *Value { return &Value{kind: KindDate, v: t} }

// Bytes returns a Bytes token holding a copy of b.
func Bytes(b []byte) *Value { return &Value{kind: KindBytes, v: bytes.Clone(nonNil(b))} }

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func (v *Value) token() {}

// Kind returns the canonical kind.
func (v *Value) Kind() Kind { return v.kind }

// Interface returns the canonical Go value: nil for Null, UndefinedValue for
// Undefined, otherwise string, int64, float64, decimal.Decimal, bool,
// time.Time or a copy of the bytes.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBytes:
		return bytes.Clone(v.v.([]byte))
	default:
		return v.v
	}
}

// AsString returns the payload of a String token.
func (v *Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// AsInt64 returns the payload of an Integer token.
func (v *Value) AsInt64() (int64, bool) {
	i, ok := v.v.(int64)
	return i, ok
}

// AsFloat64 returns Float tokens as float64 (decimals are approximated) and
// widens Integer tokens.
func (v *Value) AsFloat64() (float64, bool) {
	switch x := v.v.(type) {
	case float64:
		return x, true
	case decimal.Decimal:
		return x.InexactFloat64(), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// AsDecimal returns Float and Integer tokens as an exact decimal when
// possible. Non-finite floats have no decimal form.
func (v *Value) AsDecimal() (decimal.Decimal, bool) {
	switch x := v.v.(type) {
	case decimal.Decimal:
		return x, true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(x), true
	}
	return decimal.Decimal{}, false
}

// IsExact reports whether a Float token carries decimal digits rather than a
// binary approximation.
func (v *Value) IsExact() bool {
	_, ok := v.v.(decimal.Decimal)
	return ok
}

// AsBool returns the payload of a Boolean token.
func (v *Value) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// AsTime returns the payload of a Date token.
func (v *Value) AsTime() (time.Time, bool) {
	t, ok := v.v.(time.Time)
	return t, ok
}

// AsBytes returns a copy of the payload of a Bytes token.
func (v *Value) AsBytes() ([]byte, bool) {
	b, ok := v.v.([]byte)
	if !ok {
		return nil, false
	}
	return bytes.Clone(b), true
}

// Text renders the payload as text: strings verbatim, numbers in their
// shortest exact form, dates as RFC 3339 with offset, bytes as base64.
// Null and Undefined render as "null" and "undefined".
func (v *Value) Text() string {
	switch x := v.v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case decimal.Decimal:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return codec.FormatRFC3339(x)
	case []byte:
		return codec.EncodeBytes(x)
	}
	if v.kind == KindUndefined {
		return "undefined"
	}
	return "null"
}

func (v *Value) String() string {
	switch v.kind {
	case KindNull, KindUndefined:
		return v.kind.String()
	case KindString:
		return "String(" + strconv.Quote(v.Text()) + ")"
	default:
		return v.kind.String() + "(" + v.Text() + ")"
	}
}

// Clone returns v itself for the shared Null/Undefined singletons and a copy
// otherwise.
func (v *Value) Clone() Token {
	switch v.kind {
	case KindNull, KindUndefined:
		return v
	case KindBytes:
		return Bytes(v.v.([]byte))
	default:
		return &Value{kind: v.kind, v: v.v}
	}
}

// Equal compares kinds and payloads. Dates must denote the same instant with
// the same UTC offset. A binary Float equals a decimal Float when the shortest
// decimal form of the binary value matches.
func (v *Value) Equal(other Token) bool {
	o, ok := other.(*Value)
	if !ok || o == nil || o.kind != v.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindUndefined:
		return true
	case KindFloat:
		return floatEqual(v.v, o.v)
	case KindDate:
		a, b := v.v.(time.Time), o.v.(time.Time)
		_, ao := a.Zone()
		_, bo := b.Zone()
		return a.Equal(b) && ao == bo
	case KindBytes:
		return bytes.Equal(v.v.([]byte), o.v.([]byte))
	default:
		return v.v == o.v
	}
}

func floatEqual(a, b any) bool {
	da, aDec := a.(decimal.Decimal)
	db, bDec := b.(decimal.Decimal)
	switch {
	case aDec && bDec:
		return da.Equal(db)
	case aDec:
		return decimalEqualsFloat(da, b.(float64))
	case bDec:
		return decimalEqualsFloat(db, a.(float64))
	}
	fa, fb := a.(float64), b.(float64)
	return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
}

func decimalEqualsFloat(d decimal.Decimal, f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return d.Equal(decimal.NewFromFloat(f))
}
