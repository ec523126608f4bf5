// Package jsontext renders the jtoken write-call grammar as JSON text on a
// jsoniter stream. Writer accepts the same calls as jtoken.Writer, so a
// document can be built as a tree or streamed straight to an io.Writer.
package jsontext

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/reoring/jtoken"
)

var errNonFinite = errors.New("not representable in JSON")

type frame struct {
	object bool
	n      int  // values written so far
	named  bool // a property name awaits its value
}

// Writer emits JSON text for a sequence of write calls. Grammar violations
// are reported with the same error types as jtoken.Writer and are sticky. The
// text is flushed to the underlying io.Writer when the root value completes
// and on Flush. A Writer is not safe for concurrent use.
type Writer struct {
	s        *jsoniter.Stream
	stack    []frame
	rootDone bool
	err      error
}

var _ jtoken.TokenWriter = (*Writer)(nil)

// NewWriter returns a compact writer over out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{s: jsoniter.NewStream(jsoniter.ConfigFastest, out, 512)}
}

// NewIndentWriter returns a writer that indents nested containers by step
// spaces.
func NewIndentWriter(out io.Writer, step int) *Writer {
	api := jsoniter.Config{IndentionStep: step}.Froze()
	return &Writer{s: jsoniter.NewStream(api, out, 512)}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Complete reports whether a whole root value has been written.
func (w *Writer) Complete() bool { return w.rootDone && len(w.stack) == 0 && w.err == nil }

// Flush writes buffered text to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.s.Flush(); err != nil {
		return w.fail(err)
	}
	return w.err
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return err
}

func (w *Writer) WritePropertyName(name string) error {
	const op = "WritePropertyName"
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 || !w.stack[len(w.stack)-1].object {
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "no open object"})
	}
	top := &w.stack[len(w.stack)-1]
	switch {
	case top.named:
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "property name already pending"})
	case name == "":
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "empty property name"})
	}
	if top.n > 0 {
		w.s.WriteMore()
	}
	w.s.WriteObjectField(validUTF8(name))
	top.named = true
	return nil
}

func (w *Writer) WriteStartObject() error {
	if err := w.check("WriteStartObject", "object"); err != nil {
		return err
	}
	w.separate()
	w.s.WriteObjectStart()
	w.stack = append(w.stack, frame{object: true})
	return nil
}

func (w *Writer) WriteStartArray() error {
	if err := w.check("WriteStartArray", "array"); err != nil {
		return err
	}
	w.separate()
	w.s.WriteArrayStart()
	w.stack = append(w.stack, frame{})
	return nil
}

func (w *Writer) WriteEnd() error {
	const op = "WriteEnd"
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "no open container"})
	}
	top := w.stack[len(w.stack)-1]
	if top.named {
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "property name has no value"})
	}
	w.stack = w.stack[:len(w.stack)-1]
	if top.object {
		w.s.WriteObjectEnd()
	} else {
		w.s.WriteArrayEnd()
	}
	return w.valueDone()
}

func (w *Writer) WriteNull() error { return w.WriteValue(nil) }

// WriteUndefined writes null; JSON has no undefined literal.
func (w *Writer) WriteUndefined() error { return w.WriteValue(jtoken.UndefinedValue) }

// WriteValue normalizes v like jtoken.Writer does and writes its JSON form.
// Invalid UTF-8 in strings becomes U+FFFD. Dates are RFC 3339 strings,
// bytes are base64 strings and decimal floats keep their digits. Non-finite
// floats fail with *jtoken.NormalizationError.
func (w *Writer) WriteValue(v any) error {
	const op = "WriteValue"
	if w.err != nil {
		return w.err
	}
	val, err := jtoken.Normalize(v)
	if err != nil {
		return w.fail(err)
	}
	if f, ok := val.Interface().(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return w.fail(&jtoken.NormalizationError{Op: op, Value: strconv.FormatFloat(f, 'g', -1, 64), Cause: errNonFinite})
	}
	if err := w.check(op, "value"); err != nil {
		return err
	}
	w.separate()
	w.scalar(val)
	return w.valueDone()
}

// WriteToken writes tok and its descendants.
func (w *Writer) WriteToken(tok jtoken.Token) error {
	if w.err != nil {
		return w.err
	}
	return jtoken.Emit(tok, w)
}

func (w *Writer) scalar(val *jtoken.Value) {
	switch x := val.Interface().(type) {
	case nil:
		w.s.WriteNil()
	case string:
		w.s.WriteString(validUTF8(x))
	case int64:
		w.s.WriteInt64(x)
	case float64:
		w.s.WriteRaw(strconv.FormatFloat(x, 'g', -1, 64))
	case decimal.Decimal:
		w.s.WriteRaw(x.String())
	case bool:
		w.s.WriteBool(x)
	default:
		switch val.Kind() {
		case jtoken.KindDate, jtoken.KindBytes:
			w.s.WriteString(val.Text())
		default:
			w.s.WriteNil()
		}
	}
}

// validUTF8 replaces each run of invalid UTF-8 bytes with U+FFFD; the
// stream copies string bytes verbatim.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}

// check validates that a value may be written now; it writes nothing.
func (w *Writer) check(op, what string) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		if w.rootDone {
			return w.fail(&jtoken.RootAlreadySetError{Op: op})
		}
		return nil
	}
	if top := w.stack[len(w.stack)-1]; top.object && !top.named {
		return w.fail(&jtoken.GrammarError{Op: op, Msg: "unexpected " + what + " token without a property name"})
	}
	return nil
}

func (w *Writer) separate() {
	if len(w.stack) == 0 {
		return
	}
	if top := w.stack[len(w.stack)-1]; !top.object && top.n > 0 {
		w.s.WriteMore()
	}
}

func (w *Writer) valueDone() error {
	if len(w.stack) == 0 {
		w.rootDone = true
		return w.Flush()
	}
	top := &w.stack[len(w.stack)-1]
	top.n++
	top.named = false
	return nil
}

// Marshal renders tok as compact JSON text.
func Marshal(tok jtoken.Token) ([]byte, error) {
	s := jsoniter.ConfigFastest.BorrowStream(nil)
	defer jsoniter.ConfigFastest.ReturnStream(s)
	w := &Writer{s: s}
	if err := jtoken.Emit(tok, w); err != nil {
		return nil, err
	}
	if s.Error != nil {
		return nil, s.Error
	}
	return append([]byte(nil), s.Buffer()...), nil
}

// Encode writes tok as compact JSON text to out.
func Encode(out io.Writer, tok jtoken.Token) error {
	s := jsoniter.ConfigFastest.BorrowStream(out)
	defer jsoniter.ConfigFastest.ReturnStream(s)
	w := &Writer{s: s}
	if err := jtoken.Emit(tok, w); err != nil {
		return err
	}
	return s.Flush()
}
