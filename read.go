package jtoken

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/reoring/jtoken/codec"
	eng "github.com/reoring/jtoken/internal/engine"
	"github.com/reoring/jtoken/internal/stream"
)

// ErrEmptyInput is returned by ReadFrom when the source holds no value.
var ErrEmptyInput = errors.New("jtoken: empty input")

// ReadFrom builds one document from src by replaying its tokens through a
// Writer. A second top-level value in src fails with *RootAlreadySetError.
// Errors from the writer keep their type (errors.As) behind the position
// context added here.
func ReadFrom(ctx context.Context, src Source, opts ...ReadOpt) (Token, error) {
	opt := normalizeReadOpt(opts)
	es := enforce(ctx, src, opt)
	w := NewWriter(opt.Writer)
	sink := &writerSink{w: w, parseDates: opt.ParseDates}

	if err := eng.Replay(es, sink); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, readFailed(opt.Logger, es, err)
	}
	// Anything after the root is replayed too so the writer reports it.
	tok, err := es.NextToken()
	switch {
	case err == io.EOF:
		return w.Token(), nil
	case err != nil:
		return nil, readFailed(opt.Logger, es, err)
	}
	if err := eng.ReplayFrom(es, sink, tok); err != nil {
		return nil, readFailed(opt.Logger, es, err)
	}
	return nil, readFailed(opt.Logger, es, &RootAlreadySetError{Op: "ReadFrom"})
}

// ParseJSON builds a document from JSON text using the current JSON driver.
func ParseJSON(data []byte, opts ...ReadOpt) (Token, error) {
	return ReadFrom(context.Background(), JSONBytes(data), opts...)
}

// StreamArray reads a top-level JSON-like array from src and calls fn with
// each element as an independent document, without materializing the whole
// array. Returning an error from fn stops the stream and is returned as is.
func StreamArray(ctx context.Context, src Source, fn func(i int, tok Token) error, opts ...ReadOpt) error {
	opt := normalizeReadOpt(opts)
	es := enforce(ctx, src, opt)

	first, err := es.NextToken()
	if err != nil {
		if err == io.EOF {
			return ErrEmptyInput
		}
		return readFailed(opt.Logger, es, err)
	}
	if first.Kind != eng.KindBeginArray {
		return readFailed(opt.Logger, es, grammarf("StreamArray", "top-level %s is not an array", first.Kind))
	}

	w := NewWriter(opt.Writer)
	sink := &writerSink{w: w, parseDates: opt.ParseDates}
	for i := 0; ; i++ {
		tok, err := es.NextToken()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return readFailed(opt.Logger, es, err)
		}
		if tok.Kind == eng.KindEndArray {
			break
		}
		sub := stream.NewPreloadedSource(es, tok)
		w.Reset()
		if err := eng.Replay(sub, sink); err != nil {
			return readFailed(opt.Logger, es, errors.Wrapf(err, "element %d", i))
		}
		if err := sub.Skip(); err != nil {
			return readFailed(opt.Logger, es, err)
		}
		if err := fn(i, w.Token()); err != nil {
			return err
		}
	}
	if tok, err := es.NextToken(); err != io.EOF {
		if err == nil {
			err = grammarf("StreamArray", "unexpected %s after the array", tok.Kind)
		}
		return readFailed(opt.Logger, es, err)
	}
	return nil
}

// ReadEach reads a sequence of top-level values from src (JSON lines,
// concatenated JSON, a multi-document YAML stream) and calls fn with each one.
// An empty source calls fn zero times. Returning an error from fn stops the
// stream and is returned as is.
func ReadEach(ctx context.Context, src Source, fn func(i int, tok Token) error, opts ...ReadOpt) error {
	opt := normalizeReadOpt(opts)
	es := enforce(ctx, src, opt)
	w := NewWriter(opt.Writer)
	sink := &writerSink{w: w, parseDates: opt.ParseDates}
	for i := 0; ; i++ {
		tok, err := es.NextToken()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return readFailed(opt.Logger, es, err)
		}
		w.Reset()
		if err := eng.ReplayFrom(es, sink, tok); err != nil {
			return readFailed(opt.Logger, es, errors.Wrapf(err, "value %d", i))
		}
		if err := fn(i, w.Token()); err != nil {
			return err
		}
	}
}

// enforce layers context cancellation and the enforcement options over src.
func enforce(ctx context.Context, src Source, opt ReadOpt) eng.TokenSource {
	var ts eng.TokenSource = &ctxTokenSource{ctx: ctx, inner: engineTokenSource(src)}
	if opt.OnDuplicateKey == Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return ts
	}
	logger := opt.Logger
	return eng.WrapWithEnforcement(ts, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			level.Warn(logger).Log("msg", si.Message, "code", si.Code, "path", si.Path)
		},
	})
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func readFailed(logger log.Logger, es eng.TokenSource, err error) error {
	off := es.Location()
	level.Debug(logger).Log("msg", "read failed", "offset", off, "err", err)
	if off >= 0 {
		return errors.Wrapf(err, "read failed at offset %d", off)
	}
	return errors.Wrap(err, "read failed")
}

type ctxTokenSource struct {
	ctx   context.Context
	inner eng.TokenSource
}

func (c *ctxTokenSource) NextToken() (eng.Token, error) {
	if err := c.ctx.Err(); err != nil {
		return eng.Token{}, err
	}
	return c.inner.NextToken()
}
func (c *ctxTokenSource) Location() int64 { return c.inner.Location() }

// writerSink adapts a Writer to the engine's replay callbacks.
type writerSink struct {
	w          *Writer
	parseDates bool
}

func (s *writerSink) BeginObject() error       { return s.w.WriteStartObject() }
func (s *writerSink) BeginArray() error        { return s.w.WriteStartArray() }
func (s *writerSink) Key(name string) error    { return s.w.WritePropertyName(name) }
func (s *writerSink) End() error               { return s.w.WriteEnd() }
func (s *writerSink) Number(text string) error { return s.w.WriteValue(Number(text)) }
func (s *writerSink) Bool(b bool) error        { return s.w.WriteValue(b) }
func (s *writerSink) Null() error              { return s.w.WriteNull() }
func (s *writerSink) String(v string) error {
	if s.parseDates {
		if t, ok := codec.DetectRFC3339(v); ok {
			return s.w.WriteValue(t)
		}
	}
	return s.w.WriteValue(v)
}
