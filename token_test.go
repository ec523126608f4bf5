package jtoken

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Equal(t *testing.T) {
	utc := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*3600))

	assert.True(t, Equal(Null(), Null()))
	assert.False(t, Equal(Null(), Undefined()))
	assert.False(t, Equal(Integer(1), Float(1)))
	assert.False(t, Equal(String("1"), Integer(1)))
	assert.True(t, Equal(Float(0.1), Decimal(decimal.RequireFromString("0.1"))))
	assert.True(t, Equal(Float(math.NaN()), Float(math.NaN())))
	assert.False(t, Equal(Float(math.NaN()), Decimal(decimal.Zero)))
	assert.True(t, Equal(Date(utc), Date(utc)))
	assert.False(t, Equal(Date(utc), Date(tokyo)), "same instant, different offset")
	assert.True(t, Equal(Bytes([]byte{1}), Bytes([]byte{1})))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Null()))
}

func TestValue_Accessors(t *testing.T) {
	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = Integer(1).AsString()
	assert.False(t, ok)

	f, ok := Integer(2).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)

	d, ok := Float(0.25).AsDecimal()
	assert.True(t, ok)
	assert.Equal(t, "0.25", d.String())

	_, ok = Float(math.Inf(1)).AsDecimal()
	assert.False(t, ok)

	assert.False(t, Float(1).IsExact())
	assert.True(t, Decimal(decimal.NewFromInt(1)).IsExact())
}

func TestValue_TextAndString(t *testing.T) {
	when := time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("", 2*3600))
	cases := map[*Value]string{
		Null():                      "null",
		Undefined():                 "undefined",
		String("a b"):               "a b",
		Integer(-7):                 "-7",
		Float(1e21):                 "1e+21",
		Boolean(false):              "false",
		Date(when):                  "2025-03-04T05:06:07+02:00",
		Bytes([]byte("hi")):         "aGk=",
		Decimal(decimal.New(15, -1)): "1.5",
	}
	for v, want := range cases {
		assert.Equal(t, want, v.Text())
	}
	assert.Equal(t, `String("Ada")`, String("Ada").String())
	assert.Equal(t, "Integer(36)", Integer(36).String())
	assert.Equal(t, "Null", Null().String())
}

func TestBytes_Copied(t *testing.T) {
	raw := []byte{1, 2, 3}
	v := Bytes(raw)
	raw[0] = 9
	got, _ := v.AsBytes()
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, _ := v.AsBytes()
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestObject_OrderAndEquality(t *testing.T) {
	a := NewObject()
	a.Set("x", Integer(1))
	a.Set("y", Integer(2))
	b := NewObject()
	b.Set("y", Integer(2))
	b.Set("x", Integer(1))

	assert.Equal(t, []string{"x", "y"}, a.Names())
	assert.True(t, Equal(a, b), "objects compare regardless of order")

	b.Set("x", Integer(3))
	assert.False(t, Equal(a, b))
	assert.Equal(t, []string{"y", "x"}, b.Names(), "overwrite keeps position")
}

func TestObject_Remove(t *testing.T) {
	o := NewObject()
	for i, n := range []string{"a", "b", "c"} {
		o.Set(n, Integer(int64(i)))
	}
	assert.True(t, o.Remove("a"))
	assert.False(t, o.Remove("a"))
	assert.Equal(t, []string{"b", "c"}, o.Names())

	c, ok := o.Get("c")
	require.True(t, ok)
	assert.True(t, Equal(Integer(2), c))

	o.Set("a", Null())
	assert.Equal(t, []string{"b", "c", "a"}, o.Names())
}

func TestObject_SetNilStoresNull(t *testing.T) {
	o := NewObject()
	o.Set("n", nil)
	v, ok := o.Get("n")
	require.True(t, ok)
	assert.Equal(t, KindNull, v.Kind())
}

func TestArray_OrderMatters(t *testing.T) {
	a := NewArray(Integer(1), Integer(2))
	b := NewArray(Integer(2), Integer(1))
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, NewArray(Integer(1), Integer(2))))
	assert.Nil(t, a.At(5))
	assert.Nil(t, a.At(-1))

	a.Append(nil)
	assert.Equal(t, KindNull, a.At(2).Kind())
}

func TestClone_Independent(t *testing.T) {
	inner := NewArray(String("x"), Bytes([]byte{1}))
	root := NewObject()
	root.Set("list", inner)

	c := Clone(root).(*Object)
	require.True(t, Equal(root, c))

	inner.Append(Integer(9))
	root.Set("extra", Boolean(true))

	list, _ := c.Get("list")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, list.(*Array).Len())
	assert.Nil(t, Clone(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Object", KindObject.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.True(t, KindArray.IsContainer())
	assert.False(t, KindString.IsContainer())
}

func TestTypedNilTokens(t *testing.T) {
	assert.True(t, Equal((*Object)(nil), nil))
	assert.True(t, Equal((*Value)(nil), (*Array)(nil)))
	assert.False(t, Equal((*Object)(nil), Null()))
	assert.Nil(t, Clone((*Array)(nil)))

	o := NewObject()
	o.Set("a", (*Object)(nil))
	a, _ := o.Get("a")
	assert.Equal(t, KindNull, a.Kind())
	assert.Equal(t, KindNull, NewArray((*Value)(nil)).At(0).Kind())
}
