package jtoken

import "fmt"

// TokenWriter is the write-call grammar shared by the tree builder (*Writer)
// and text sinks such as jsontext.Writer.
type TokenWriter interface {
	WritePropertyName(name string) error
	WriteStartObject() error
	WriteStartArray() error
	WriteEnd() error
	WriteValue(v any) error
	WriteNull() error
	WriteUndefined() error
}

// Emit replays tok depth-first through w, producing the call sequence that
// builds an equal tree. Object properties are emitted in insertion order.
// Scalars are passed to WriteValue as their canonical Go value
// (Value.Interface). A nil token of any type is emitted as WriteNull. The
// first error returned by w stops the walk.
func Emit(tok Token, w TokenWriter) error {
	if isNil(tok) {
		return w.WriteNull()
	}
	switch t := tok.(type) {
	case *Object:
		if err := w.WriteStartObject(); err != nil {
			return err
		}
		for name, child := range t.All() {
			if err := w.WritePropertyName(name); err != nil {
				return err
			}
			if err := Emit(child, w); err != nil {
				return err
			}
		}
		return w.WriteEnd()
	case *Array:
		if err := w.WriteStartArray(); err != nil {
			return err
		}
		for _, child := range t.All() {
			if err := Emit(child, w); err != nil {
				return err
			}
		}
		return w.WriteEnd()
	case *Value:
		switch t.Kind() {
		case KindNull:
			return w.WriteNull()
		case KindUndefined:
			return w.WriteUndefined()
		default:
			return w.WriteValue(t.Interface())
		}
	default:
		return &UnsupportedTypeError{Op: "Emit", Type: typeName(tok)}
	}
}

// Build replays tok into a fresh Writer and returns the rebuilt tree. It is
// the structural round trip of Emit.
func Build(tok Token, opts ...WriterOpt) (Token, error) {
	w := NewWriter(opts...)
	if err := Emit(tok, w); err != nil {
		return nil, err
	}
	return w.Token(), nil
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
