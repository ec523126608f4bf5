// Package yaml tokenizes YAML documents with gopkg.in/yaml.v3 so they can be
// read into jtoken trees. Mappings with duplicate keys are rejected with a
// *DuplicateKeyError carrying both positions.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jtoken"
	eng "github.com/reoring/jtoken/internal/engine"
)

// DuplicateKeyError reports a key written twice in one YAML mapping.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// ScalarError reports a scalar that has no JSON-like token form, such as
// .inf or a mapping key that is not a scalar.
type ScalarError struct {
	Value string
	Line  int
	Col   int
	Msg   string
}

func (e *ScalarError) Error() string {
	return fmt.Sprintf("yaml %q at %d:%d: %s", e.Value, e.Line, e.Col, e.Msg)
}

// NewReader returns a Source over every document of a YAML stream, one root
// value per document. An empty document yields a null.
func NewReader(r io.Reader) jtoken.Source {
	return jtoken.SourceFromEngine(&yamlSource{dec: yaml.NewDecoder(r)})
}

// NewBytes is NewReader over a byte slice.
func NewBytes(b []byte) jtoken.Source { return NewReader(bytes.NewReader(b)) }

type yamlSource struct {
	dec  *yaml.Decoder
	toks []eng.Token
	err  error
}

func (s *yamlSource) NextToken() (eng.Token, error) {
	for len(s.toks) == 0 {
		if s.err != nil {
			return eng.Token{}, s.err
		}
		var doc yaml.Node
		if err := s.dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				s.err = io.EOF
			} else {
				s.err = err
			}
			return eng.Token{}, s.err
		}
		var f flattener
		if err := f.node(&doc); err != nil {
			s.err = err
			return eng.Token{}, err
		}
		s.toks = f.out
	}
	t := s.toks[0]
	s.toks = s.toks[1:]
	return t, nil
}

func (s *yamlSource) Location() int64 { return -1 }

// maxAliasTokens caps the tokens one document may produce through alias
// expansion, so nested aliases cannot multiply a small input into an
// unbounded token stream.
var maxAliasTokens = 1 << 20

// flattener turns a node tree into the token sequence a JSON tokenizer
// would produce for the same value.
type flattener struct {
	out []eng.Token
	// open holds the anchored nodes being flattened; an alias to one of them
	// would expand forever.
	open        map[*yaml.Node]bool
	aliasDepth  int
	aliasTokens int
}

func (f *flattener) emit(t eng.Token) error {
	if f.aliasDepth > 0 {
		if f.aliasTokens++; f.aliasTokens > maxAliasTokens {
			return ErrAliasExpansion
		}
	}
	t.Offset = -1
	f.out = append(f.out, t)
	return nil
}

// ErrAliasExpansion is returned when alias expansion in one document exceeds
// the token budget.
var ErrAliasExpansion = errors.New("yaml: document expands too many aliases")

func (f *flattener) alias(n *yaml.Node) error {
	target := n.Alias
	if target == nil {
		return &ScalarError{Value: "*" + n.Value, Line: n.Line, Col: n.Column, Msg: "unknown alias"}
	}
	if f.open[target] {
		return &ScalarError{Value: "*" + n.Value, Line: n.Line, Col: n.Column, Msg: "alias refers to itself"}
	}
	f.aliasDepth++
	defer func() { f.aliasDepth-- }()
	return f.node(target)
}

// enter marks an anchored container as open until the returned func runs.
func (f *flattener) enter(n *yaml.Node) func() {
	if n.Anchor == "" {
		return func() {}
	}
	if f.open == nil {
		f.open = map[*yaml.Node]bool{}
	}
	f.open[n] = true
	return func() { delete(f.open, n) }
}

func (f *flattener) node(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return f.emit(eng.Token{Kind: eng.KindNull})
		}
		return f.node(n.Content[0])
	case yaml.AliasNode:
		return f.alias(n)
	case yaml.MappingNode:
		defer f.enter(n)()
		if err := f.emit(eng.Token{Kind: eng.KindBeginObject}); err != nil {
			return err
		}
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return &ScalarError{Value: k.Value, Line: k.Line, Col: k.Column, Msg: "mapping key is not a scalar"}
			}
			if pos, dup := first[k.Value]; dup {
				return &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			if err := f.emit(eng.Token{Kind: eng.KindKey, String: k.Value}); err != nil {
				return err
			}
			if err := f.node(v); err != nil {
				return err
			}
		}
		return f.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		defer f.enter(n)()
		if err := f.emit(eng.Token{Kind: eng.KindBeginArray}); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := f.node(c); err != nil {
				return err
			}
		}
		return f.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return f.scalar(n)
	}
	return &ScalarError{Value: n.Value, Line: n.Line, Col: n.Column, Msg: "unsupported node"}
}

func (f *flattener) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		return f.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		return f.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		text := n.Value
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			text = strconv.FormatInt(i, 10)
		}
		return f.emit(eng.Token{Kind: eng.KindNumber, Number: text})
	case "!!float":
		var x float64
		if err := n.Decode(&x); err != nil {
			return err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &ScalarError{Value: n.Value, Line: n.Line, Col: n.Column, Msg: "non-finite float"}
		}
		text := n.Value
		if _, err := strconv.ParseFloat(text, 64); err != nil || !strings.ContainsAny(text, ".eE") {
			text = strconv.FormatFloat(x, 'e', -1, 64)
		}
		return f.emit(eng.Token{Kind: eng.KindNumber, Number: text})
	default:
		return f.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
}
