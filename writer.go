package jtoken

// frame is one open, not yet closed container.
type frame struct {
	kind Kind // KindObject or KindArray
	obj  *Object
	arr  *Array
	// name is the property the container links under when its parent is an
	// object; claimed from the pending-name register at start.
	name string
}

func (f *frame) container() Token {
	if f.kind == KindObject {
		return f.obj
	}
	return f.arr
}

// Writer assembles one document tree from a sequence of write calls that
// follows the grammar of a JSON text emitter.
//
// Every call validates itself against the current state before mutating
// anything. The first failing call is remembered and returned by every later
// call until Reset; a writer that failed must not be used to finish the
// document. A Writer is not safe for concurrent use.
type Writer struct {
	opt     WriterOpt
	stack   []frame
	pending string // property name awaiting its value; "" when empty
	root    Token
	rootSet bool
	err     error
}

var _ TokenWriter = (*Writer)(nil)

// NewWriter returns an empty writer. When several options are given the last
// one wins.
func NewWriter(opts ...WriterOpt) *Writer {
	return &Writer{opt: lastWriterOpt(opts)}
}

// Token returns the document root, or nil until the root is set.
func (w *Writer) Token() Token {
	if !w.rootSet {
		return nil
	}
	return w.root
}

// Complete reports whether the root is set and no container is open.
func (w *Writer) Complete() bool { return w.rootSet && len(w.stack) == 0 && w.err == nil }

// Depth returns the number of open containers.
func (w *Writer) Depth() int { return len(w.stack) }

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Reset discards all state so the writer can build a new document.
func (w *Writer) Reset() {
	clear(w.stack)
	w.stack = w.stack[:0]
	w.pending = ""
	w.root = nil
	w.rootSet = false
	w.err = nil
}

// Flush is a no-op; the tree is built in memory.
func (w *Writer) Flush() error { return w.err }

func (w *Writer) top() *frame {
	if n := len(w.stack); n > 0 {
		return &w.stack[n-1]
	}
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

// WritePropertyName sets the name under which the next value, object or
// array is stored in the current object.
func (w *Writer) WritePropertyName(name string) error {
	const op = "WritePropertyName"
	if w.err != nil {
		return w.err
	}
	top := w.top()
	switch {
	case top == nil || top.kind != KindObject:
		return w.fail(grammarf(op, "property name %q outside of an object", name))
	case w.pending != "":
		return w.fail(grammarf(op, "was not expecting a property name here (pending %q)", w.pending))
	case name == "":
		return w.fail(grammarf(op, "empty property name"))
	case w.opt.OnDuplicateName == DuplicateReject && top.obj.Contains(name):
		return w.fail(grammarf(op, "duplicate property name %q", name))
	}
	w.pending = name
	return nil
}

// WriteStartObject opens a new object.
func (w *Writer) WriteStartObject() error {
	return w.start("WriteStartObject", frame{kind: KindObject, obj: NewObject()})
}

// WriteStartArray opens a new array.
func (w *Writer) WriteStartArray() error {
	return w.start("WriteStartArray", frame{kind: KindArray, arr: NewArray()})
}

func (w *Writer) start(op string, f frame) error {
	if w.err != nil {
		return w.err
	}
	if err := w.checkLink(op, f.kind); err != nil {
		return w.fail(err)
	}
	if w.opt.MaxDepth > 0 && len(w.stack) >= w.opt.MaxDepth {
		return w.fail(grammarf(op, "max depth %d exceeded", w.opt.MaxDepth))
	}
	f.name = w.pending
	w.pending = ""
	w.stack = append(w.stack, f)
	return nil
}

// WriteEnd closes the innermost open container and links it into its parent,
// or makes it the document root when no parent is open.
func (w *Writer) WriteEnd() error { return w.end("WriteEnd", KindUndefined) }

// WriteEndObject is WriteEnd that additionally requires an open object.
func (w *Writer) WriteEndObject() error { return w.end("WriteEndObject", KindObject) }

// WriteEndArray is WriteEnd that additionally requires an open array.
func (w *Writer) WriteEndArray() error { return w.end("WriteEndArray", KindArray) }

// end pops the top frame; want is KindObject/KindArray to require a match,
// anything else to accept both.
func (w *Writer) end(op string, want Kind) error {
	if w.err != nil {
		return w.err
	}
	top := w.top()
	switch {
	case top == nil:
		return w.fail(grammarf(op, "no container is open"))
	case want.IsContainer() && top.kind != want:
		return w.fail(grammarf(op, "open container is %s, not %s", top.kind, want))
	case w.pending != "":
		return w.fail(grammarf(op, "missing value for property %q", w.pending))
	}
	f := *top
	w.stack = w.stack[:len(w.stack)-1]
	w.attach(f.container(), f.name)
	return nil
}

// WriteValue normalizes v (see Normalize) and links it.
func (w *Writer) WriteValue(v any) error {
	const op = "WriteValue"
	if w.err != nil {
		return w.err
	}
	if err := w.checkLink(op, KindString); err != nil {
		return w.fail(err)
	}
	tok, err := normalize(op, v)
	if err != nil {
		return w.fail(err)
	}
	w.link(tok)
	return nil
}

// WriteNull links a Null token.
func (w *Writer) WriteNull() error { return w.writeLeaf("WriteNull", Null()) }

// WriteUndefined links an Undefined token.
func (w *Writer) WriteUndefined() error { return w.writeLeaf("WriteUndefined", Undefined()) }

// WriteToken links a deep copy of an existing tree at the current position.
// A nil token, including a nil *Object, *Array or *Value, is written as Null.
func (w *Writer) WriteToken(tok Token) error {
	if isNil(tok) {
		return w.writeLeaf("WriteToken", Null())
	}
	return w.writeLeaf("WriteToken", tok.Clone())
}

func (w *Writer) writeLeaf(op string, tok Token) error {
	if w.err != nil {
		return w.err
	}
	if err := w.checkLink(op, tok.Kind()); err != nil {
		return w.fail(err)
	}
	w.link(tok)
	return nil
}

// checkLink validates that a token of kind k may be linked at the current
// position, without mutating the writer.
func (w *Writer) checkLink(op string, k Kind) error {
	top := w.top()
	if top == nil {
		if w.rootSet {
			return &RootAlreadySetError{Op: op}
		}
		return nil
	}
	if top.kind == KindObject && w.pending == "" {
		return grammarf(op, "unexpected %s token", tokenWord(k))
	}
	return nil
}

func tokenWord(k Kind) string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "value"
	}
}

// link attaches a leaf under the pending name, to the open array, or as root.
func (w *Writer) link(tok Token) {
	name := w.pending
	w.pending = ""
	w.attach(tok, name)
}

func (w *Writer) attach(tok Token, name string) {
	top := w.top()
	switch {
	case top == nil:
		w.root, w.rootSet = tok, true
	case top.kind == KindObject:
		top.obj.Set(name, tok)
	default:
		top.arr.Append(tok)
	}
}
