package stream

import (
	"io"

	eng "github.com/reoring/jtoken/internal/engine"
)

// SubtreeSource exposes exactly one value (a scalar or a complete
// object/array) of an underlying engine.TokenSource and returns io.EOF after
// the matching end token. It lets one tree be built per element of a larger
// stream without the builder reading into the next element.
type SubtreeSource struct {
	inner     eng.TokenSource
	preloaded *eng.Token
	depth     int
	done      bool
}

// NewSubtreeSource constructs a subtree view over the next value in inner.
func NewSubtreeSource(inner eng.TokenSource) *SubtreeSource { return &SubtreeSource{inner: inner} }

// NewPreloadedSource constructs a subtree view whose first token was already
// read from inner (typically while peeking for the end of an array).
func NewPreloadedSource(inner eng.TokenSource, first eng.Token) *SubtreeSource {
	return &SubtreeSource{inner: inner, preloaded: &first}
}

func (s *SubtreeSource) NextToken() (eng.Token, error) {
	if s.done {
		return eng.Token{}, io.EOF
	}
	var tok eng.Token
	if s.preloaded != nil {
		tok = *s.preloaded
		s.preloaded = nil
	} else {
		t, err := s.inner.NextToken()
		if err != nil {
			return eng.Token{}, err
		}
		tok = t
	}

	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		s.depth++
	case eng.KindEndObject, eng.KindEndArray:
		if s.depth > 0 {
			s.depth--
		}
	}
	// Scalars at depth 0 and the closing token of the outermost container both
	// end the subtree.
	if s.depth == 0 && tok.Kind != eng.KindKey {
		s.done = true
	}
	return tok, nil
}

// Skip consumes the rest of the subtree so the underlying source is
// positioned after it.
func (s *SubtreeSource) Skip() error {
	for !s.done {
		if _, err := s.NextToken(); err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// Done reports whether the whole subtree has been consumed.
func (s *SubtreeSource) Done() bool { return s.done }

func (s *SubtreeSource) Location() int64 { return s.inner.Location() }
