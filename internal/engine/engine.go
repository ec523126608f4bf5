package engine

import (
	"errors"
	"io"
)

// Kind represents lexical token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindNames = [...]string{
	KindBeginObject: "begin_object",
	KindEndObject:   "end_object",
	KindBeginArray:  "begin_array",
	KindEndArray:    "end_array",
	KindKey:         "key",
	KindString:      "string",
	KindNumber:      "number",
	KindBool:        "bool",
	KindNull:        "null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // kept as text; the sink decides integer vs float
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Sink receives one call per lexical token. Replay drives it in the same
// order a text emitter would produce the tokens.
type Sink interface {
	BeginObject() error
	BeginArray() error
	Key(name string) error
	End() error
	String(s string) error
	Number(text string) error
	Bool(b bool) error
	Null() error
}

// ErrUnexpectedToken is returned when the source yields a token that cannot
// appear at the current position (e.g. a key inside an array).
var ErrUnexpectedToken = errors.New("unexpected token")

// Replay reads exactly one value (scalar or complete container) from src and
// forwards it to sink. A source that ends mid-value yields io.ErrUnexpectedEOF.
func Replay(src TokenSource, sink Sink) error {
	tok, err := src.NextToken()
	if err != nil {
		return err
	}
	return replayValue(src, sink, tok)
}

// ReplayFrom is like Replay but starts with an already consumed first token.
func ReplayFrom(src TokenSource, sink Sink, first Token) error {
	return replayValue(src, sink, first)
}

func replayValue(src TokenSource, sink Sink, tok Token) error {
	switch tok.Kind {
	case KindBeginObject:
		if err := sink.BeginObject(); err != nil {
			return err
		}
		return replayObject(src, sink)
	case KindBeginArray:
		if err := sink.BeginArray(); err != nil {
			return err
		}
		return replayArray(src, sink)
	case KindString:
		return sink.String(tok.String)
	case KindNumber:
		return sink.Number(tok.Number)
	case KindBool:
		return sink.Bool(tok.Bool)
	case KindNull:
		return sink.Null()
	default:
		return ErrUnexpectedToken
	}
}

func replayObject(src TokenSource, sink Sink) error {
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndObject {
			return sink.End()
		}
		if tok.Kind != KindKey {
			return ErrUnexpectedToken
		}
		if err := sink.Key(tok.String); err != nil {
			return err
		}
		vt, err := next(src)
		if err != nil {
			return err
		}
		if err := replayValue(src, sink, vt); err != nil {
			return err
		}
	}
}

func replayArray(src TokenSource, sink Sink) error {
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndArray {
			return sink.End()
		}
		if err := replayValue(src, sink, tok); err != nil {
			return err
		}
	}
}

// next reads the following token inside a container, where EOF is never a
// clean end of input.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}
