package stream

import (
	"io"
	"testing"

	eng "github.com/reoring/jtoken/internal/engine"
)

type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func k(kind eng.Kind) eng.Token { return eng.Token{Kind: kind} }

func count(t *testing.T, s *SubtreeSource) int {
	t.Helper()
	n := 0
	for {
		_, err := s.NextToken()
		if err == io.EOF {
			return n
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		n++
	}
}

func TestSubtree_StopsAfterContainer(t *testing.T) {
	inner := &sliceSource{toks: []eng.Token{
		k(eng.KindBeginObject), {Kind: eng.KindKey, String: "a"}, k(eng.KindBeginArray), k(eng.KindEndArray), k(eng.KindEndObject),
		k(eng.KindNull),
	}}
	sub := NewSubtreeSource(inner)
	if n := count(t, sub); n != 5 {
		t.Fatalf("want 5 tokens, got %d", n)
	}
	if !sub.Done() {
		t.Fatalf("subtree should be done")
	}
	if next, _ := inner.NextToken(); next.Kind != eng.KindNull {
		t.Fatalf("inner source over-read: %v", next.Kind)
	}
}

func TestSubtree_Scalar(t *testing.T) {
	inner := &sliceSource{toks: []eng.Token{k(eng.KindBool), k(eng.KindNull)}}
	if n := count(t, NewSubtreeSource(inner)); n != 1 {
		t.Fatalf("want 1 token, got %d", n)
	}
}

func TestPreloaded_SkipRest(t *testing.T) {
	inner := &sliceSource{toks: []eng.Token{
		k(eng.KindNumber), k(eng.KindEndArray), k(eng.KindNull),
	}}
	sub := NewPreloadedSource(inner, k(eng.KindBeginArray))
	if _, err := sub.NextToken(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := sub.Skip(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if next, _ := inner.NextToken(); next.Kind != eng.KindNull {
		t.Fatalf("skip did not stop at the subtree end: %v", next.Kind)
	}
}

func TestSkip_Truncated(t *testing.T) {
	inner := &sliceSource{toks: []eng.Token{k(eng.KindBeginArray), k(eng.KindNumber)}}
	if err := NewSubtreeSource(inner).Skip(); err != io.ErrUnexpectedEOF {
		t.Fatalf("want io.ErrUnexpectedEOF, got %v", err)
	}
}
