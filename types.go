package jtoken

import "github.com/go-kit/log"

// DuplicatePolicy controls what a Writer does when a property name is
// written twice in the same object.
type DuplicatePolicy int

const (
	DuplicateReject    DuplicatePolicy = iota // Fail with *GrammarError (default).
	DuplicateOverwrite                        // Last write wins; the first position is kept.
)

// WriterOpt configures a Writer.
type WriterOpt struct {
	OnDuplicateName DuplicatePolicy
	MaxDepth        int // Maximum container nesting; 0 means unlimited.
}

// Severity expresses how a reader treats non-fatal findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ReadOpt bundles options for ReadFrom and StreamArray.
type ReadOpt struct {
	Writer WriterOpt
	// OnDuplicateKey reports duplicate object keys as they stream by. Warn
	// logs them; Error aborts the read. Whether the duplicate is then accepted
	// is decided by Writer.OnDuplicateName.
	OnDuplicateKey Severity
	MaxDepth       int   // 0 means unlimited.
	MaxBytes       int64 // 0 means unlimited; enforced on sources reporting offsets.
	// ParseDates turns strings holding an RFC 3339 timestamp into Date tokens.
	ParseDates bool
	// Logger receives enforcement issues and read failures. Defaults to a
	// no-op logger.
	Logger log.Logger
}

func lastWriterOpt(opts []WriterOpt) WriterOpt {
	if len(opts) == 0 {
		return WriterOpt{}
	}
	return opts[len(opts)-1]
}

func normalizeReadOpt(opts []ReadOpt) ReadOpt {
	var opt ReadOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Logger == nil {
		opt.Logger = log.NewNopLogger()
	}
	return opt
}
