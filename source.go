package jtoken

import (
	"io"
	"sync"

	eng "github.com/reoring/jtoken/internal/engine"
	jsonsrc "github.com/reoring/jtoken/source/json"
)

// LexKind enumerates lexical token kinds produced by a Source.
type LexKind int

const (
	LexBeginObject LexKind = iota
	LexEndObject
	LexBeginArray
	LexEndArray
	LexKey
	LexString
	LexNumber
	LexBool
	LexNull
)

func (k LexKind) String() string { return eng.Kind(k).String() }

// LexToken describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type LexToken struct {
	Kind   LexKind
	String string // key and string tokens
	Number string // number literal as text
	Bool   bool
	Offset int64
}

// Source abstracts over tokenized input (JSON text, YAML nodes, ...).
// NextToken returns io.EOF after the last token.
type Source interface {
	NextToken() (LexToken, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source. The default implementation is
// based on encoding/json; importing github.com/reoring/jtoken/source switches
// to go-json.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by JSONReader and JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(jsonsrc.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(jsonsrc.NewBytes(b)) }
func (defaultJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a Source. Tokenizer
// packages in this module use it to expose their sources.
func SourceFromEngine(inner eng.TokenSource) Source {
	if back, ok := inner.(*sourceEngineAdapter); ok {
		return back.inner
	}
	return &engineSourceAdapter{inner: inner}
}

// engineTokenSource is the inverse of SourceFromEngine.
func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &sourceEngineAdapter{inner: s}
}

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (LexToken, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return LexToken{}, err
	}
	return LexToken{Kind: LexKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

type sourceEngineAdapter struct {
	inner Source
}

func (s *sourceEngineAdapter) NextToken() (eng.Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *sourceEngineAdapter) Location() int64 { return s.inner.Location() }

// SliceSource replays a fixed list of tokens; handy for tests and for
// callers that already hold a token list.
func SliceSource(toks ...LexToken) Source { return &sliceSource{toks: toks} }

type sliceSource struct {
	toks []LexToken
	i    int
}

func (s *sliceSource) NextToken() (LexToken, error) {
	if s.i >= len(s.toks) {
		return LexToken{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}
func (s *sliceSource) Location() int64 { return -1 }
