package jtoken

import (
	"errors"
	"fmt"

	eng "github.com/reoring/jtoken/internal/engine"
)

// Error codes (stable strings for logs and API mapping).
const (
	CodeGrammar         = "grammar"
	CodeRootAlreadySet  = "root_already_set"
	CodeUnsupportedType = "unsupported_type"
	CodeNormalization   = "normalization"
)

// Sentinels for errors.Is. The concrete error types below match them.
var (
	ErrGrammar         = errors.New("jtoken: grammar violation")
	ErrRootAlreadySet  = errors.New("jtoken: root already set")
	ErrUnsupportedType = errors.New("jtoken: unsupported type")
	ErrNormalization   = errors.New("jtoken: normalization failed")
)

// GrammarError reports a write call that is not legal in the writer's
// current state, e.g. a value inside an object without a preceding property
// name, or WriteEnd with no open container.
type GrammarError struct {
	Op  string // writer method, e.g. "WriteValue"
	Msg string
}

func (e *GrammarError) Error() string        { return "jtoken: " + e.Op + ": " + e.Msg }
func (e *GrammarError) Is(target error) bool { return target == ErrGrammar }

// Code returns CodeGrammar.
func (e *GrammarError) Code() string { return CodeGrammar }

func grammarf(op, format string, args ...any) *GrammarError {
	return &GrammarError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// RootAlreadySetError reports a second top-level value in one writer session.
type RootAlreadySetError struct {
	Op string
}

func (e *RootAlreadySetError) Error() string {
	return "jtoken: " + e.Op + ": document root is already set"
}
func (e *RootAlreadySetError) Is(target error) bool { return target == ErrRootAlreadySet }

// Code returns CodeRootAlreadySet.
func (e *RootAlreadySetError) Code() string { return CodeRootAlreadySet }

// UnsupportedTypeError reports a scalar with no normalization rule.
type UnsupportedTypeError struct {
	Op   string
	Type string // Go type of the rejected value
}

func (e *UnsupportedTypeError) Error() string {
	return "jtoken: " + e.Op + ": unsupported type " + e.Type
}
func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// Code returns CodeUnsupportedType.
func (e *UnsupportedTypeError) Code() string { return CodeUnsupportedType }

// NormalizationError reports a value of a supported type that the canonical
// kind cannot represent, e.g. an unsigned integer above math.MaxInt64.
type NormalizationError struct {
	Op    string
	Value string // textual form of the rejected value
	Cause error  // optional
}

func (e *NormalizationError) Error() string {
	msg := "jtoken: " + e.Op + ": cannot normalize " + e.Value
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}
func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }
func (e *NormalizationError) Unwrap() error        { return e.Cause }

// Code returns CodeNormalization.
func (e *NormalizationError) Code() string { return CodeNormalization }

// IssueError is returned by the readers when a ReadOpt limit or
// OnDuplicateKey: Error stops a read. Path is a JSON Pointer.
type IssueError = eng.IssueError

// Issue codes carried by IssueError.
const (
	CodeDuplicateKey = eng.CodeDuplicateKey
	CodeMaxDepth     = eng.CodeMaxDepth
	CodeTruncated    = eng.CodeTruncated
)

// ErrorCode returns the code of the first jtoken error in err's chain, or ""
// when there is none.
func ErrorCode(err error) string {
	var c interface{ Code() string }
	if errors.As(err, &c) {
		return c.Code()
	}
	var ie IssueError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}
