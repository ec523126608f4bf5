package jtoken

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Document(t *testing.T) {
	tok, err := ParseJSON([]byte(`{"name":"Ada","age":36,"score":1.50,"tags":["x",null,true],"nested":{}}`))
	require.NoError(t, err)

	obj := tok.(*Object)
	assert.Equal(t, []string{"name", "age", "score", "tags", "nested"}, obj.Names())

	age, _ := obj.Get("age")
	assert.True(t, Equal(Integer(36), age))

	score, _ := obj.Get("score")
	assert.Equal(t, KindFloat, score.Kind())
	assert.True(t, score.(*Value).IsExact())

	tags, _ := obj.Get("tags")
	want := NewArray(String("x"), Null(), Boolean(true))
	assert.True(t, Equal(want, tags))
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ParseJSON([]byte(`{"a":1} {"b":2}`))
	assert.ErrorIs(t, err, ErrRootAlreadySet)

	_, err = ParseJSON([]byte(`[1,2`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"a":1,"a":2}`))
	assert.ErrorIs(t, err, ErrGrammar, "writer rejects duplicates by default")

	_, err = ParseJSON([]byte(`[18446744073709551615]`))
	assert.ErrorIs(t, err, ErrNormalization)
}

func TestParseJSON_DuplicateOverwrite(t *testing.T) {
	tok, err := ParseJSON([]byte(`{"a":1,"b":2,"a":3}`), ReadOpt{Writer: WriterOpt{OnDuplicateName: DuplicateOverwrite}})
	require.NoError(t, err)
	obj := tok.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Names())
	a, _ := obj.Get("a")
	assert.True(t, Equal(Integer(3), a))
}

func TestReadFrom_DuplicateKeySeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)
	opt := ReadOpt{
		OnDuplicateKey: Warn,
		Writer:         WriterOpt{OnDuplicateName: DuplicateOverwrite},
		Logger:         logger,
	}
	_, err := ParseJSON([]byte(`{"x":{"k":1,"k":2}}`), opt)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "path=/x/k")
	assert.Contains(t, buf.String(), "level=warn")

	opt.OnDuplicateKey = Error
	_, err = ParseJSON([]byte(`{"x":{"k":1,"k":2}}`), opt)
	var ie IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, CodeDuplicateKey, ie.Code)
	assert.Equal(t, CodeDuplicateKey, ErrorCode(err))
}

func TestReadFrom_MaxDepth(t *testing.T) {
	_, err := ParseJSON([]byte(`[[[1]]]`), ReadOpt{MaxDepth: 2})
	var ie IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, CodeMaxDepth, ie.Code)
}

func TestReadFrom_ParseDates(t *testing.T) {
	in := []byte(`{"at":"2025-01-02T03:04:05+01:00","s":"2025"}`)

	tok, err := ParseJSON(in)
	require.NoError(t, err)
	at, _ := tok.(*Object).Get("at")
	assert.Equal(t, KindString, at.Kind())

	tok, err = ParseJSON(in, ReadOpt{ParseDates: true})
	require.NoError(t, err)
	at, _ = tok.(*Object).Get("at")
	require.Equal(t, KindDate, at.Kind())
	assert.Equal(t, "2025-01-02T03:04:05+01:00", at.(*Value).Text())
	s, _ := tok.(*Object).Get("s")
	assert.Equal(t, KindString, s.Kind())
}

func TestReadFrom_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadFrom(ctx, JSONBytes([]byte(`[1]`)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFrom_SliceSource(t *testing.T) {
	src := SliceSource(
		LexToken{Kind: LexBeginObject},
		LexToken{Kind: LexKey, String: "n"},
		LexToken{Kind: LexNumber, Number: "-3"},
		LexToken{Kind: LexEndObject},
	)
	tok, err := ReadFrom(context.Background(), src)
	require.NoError(t, err)
	n, _ := tok.(*Object).Get("n")
	assert.True(t, Equal(Integer(-3), n))
}

func TestReadFrom_TextRoundTrip(t *testing.T) {
	in := `{"a":[1,2.5,"s",false,null],"b":{"c":{}}}`
	first, err := ParseJSON([]byte(in))
	require.NoError(t, err)

	// Re-emitting through the writer grammar rebuilds an equal tree.
	again, err := Build(first)
	require.NoError(t, err)
	assert.True(t, Equal(first, again))
}

func TestStreamArray(t *testing.T) {
	in := `[{"id":1},{"id":2},[3],4]`
	var got []Token
	err := StreamArray(context.Background(), JSONReader(strings.NewReader(in)), func(i int, tok Token) error {
		assert.Len(t, got, i)
		got = append(got, tok)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, KindObject, got[0].Kind())
	assert.True(t, Equal(NewArray(Integer(3)), got[2]))
	assert.True(t, Equal(Integer(4), got[3]))

	// Elements are independent trees.
	got[0].(*Object).Set("id", Null())
	id, _ := got[1].(*Object).Get("id")
	assert.True(t, Equal(Integer(2), id))
}

func TestStreamArray_StopAndErrors(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := StreamArray(context.Background(), JSONBytes([]byte(`[1,2,3]`)), func(int, Token) error {
		n++
		return stop
	})
	assert.Same(t, stop, err)
	assert.Equal(t, 1, n)

	noop := func(int, Token) error { return nil }
	assert.ErrorIs(t, StreamArray(context.Background(), JSONBytes([]byte(`{}`)), noop), ErrGrammar)
	assert.ErrorIs(t, StreamArray(context.Background(), JSONBytes(nil), noop), ErrEmptyInput)
	assert.ErrorIs(t, StreamArray(context.Background(), JSONBytes([]byte(`[1,`)), noop), io.ErrUnexpectedEOF)
}

func TestReadEach(t *testing.T) {
	in := "{\"a\":1}\n[2]\n\"three\"\n"
	var kinds []Kind
	err := ReadEach(context.Background(), JSONBytes([]byte(in)), func(_ int, tok Token) error {
		kinds = append(kinds, tok.Kind())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindObject, KindArray, KindString}, kinds)

	calls := 0
	require.NoError(t, ReadEach(context.Background(), JSONBytes(nil), func(int, Token) error {
		calls++
		return nil
	}))
	assert.Zero(t, calls)
}

func TestJSONDriver_Swap(t *testing.T) {
	t.Cleanup(UseDefaultJSONDriver)
	assert.Equal(t, "encoding/json", CurrentJSONDriver().Name())
	SetJSONDriver(nil)
	assert.Equal(t, "encoding/json", CurrentJSONDriver().Name())
}
