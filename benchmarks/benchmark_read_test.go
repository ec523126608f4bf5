package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/jtoken"
)

// ---- Helpers ----

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":36,"score":1.5,"active":true}`)
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		fmt.Fprintf(&buf, "\"id\":\"obj_%d\",", i)
		fmt.Fprintf(&buf, "\"name\":\"n%d\",", i)
		fmt.Fprintf(&buf, "\"age\":%d,", i)
		if i%2 == 0 {
			buf.WriteString("\"active\":true,")
		} else {
			buf.WriteString("\"active\":false,")
		}
		fmt.Fprintf(&buf, "\"meta\":{\"score\":%d}", i)
		for k := 0; k < extraFields; k++ {
			buf.WriteString(",\"k")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\":\"v")
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString("_")
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString("\"")
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_ParseJSON_Object_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jtoken.ParseJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ReadFrom_Object_Small_JSONReader(b *testing.B) {
	ctx := context.Background()
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src := jtoken.JSONReader(bytes.NewReader(data))
		if _, err := jtoken.ReadFrom(ctx, src); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ReadFrom_Object_Small_Enforced(b *testing.B) {
	ctx := context.Background()
	data := smallUserJSON()
	opt := jtoken.ReadOpt{OnDuplicateKey: jtoken.Error, MaxDepth: 32}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jtoken.ReadFrom(ctx, jtoken.JSONBytes(data), opt); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Huge array ----

func Benchmark_ParseJSON_HugeArray(b *testing.B) {
	data := generateHugeJSONArray(10_000, 4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jtoken.ParseJSON(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_StreamArray_HugeArray(b *testing.B) {
	ctx := context.Background()
	data := generateHugeJSONArray(10_000, 4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		err := jtoken.StreamArray(ctx, jtoken.JSONBytes(data), func(int, jtoken.Token) error {
			n++
			return nil
		})
		if err != nil {
			b.Fatal(err)
		}
		if n != 10_000 {
			b.Fatalf("streamed %d elements", n)
		}
	}
}
