package engine

import (
	"errors"
	"testing"
)

func drain(ts TokenSource) error {
	for {
		if _, err := ts.NextToken(); err != nil {
			return err
		}
	}
}

func TestEnforce_DuplicateKeyError(t *testing.T) {
	s := src(
		tok(KindBeginObject),
		key("a"), tok(KindBeginObject), key("b"), num("1"), key("b"), num("2"), tok(KindEndObject),
		tok(KindEndObject),
	)
	var issues []SimpleIssue
	ts := WrapWithEnforcement(s, EnforceOptions{OnDuplicate: DupError, IssueSink: func(si SimpleIssue) { issues = append(issues, si) }})
	err := drain(ts)
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("want IssueError, got %v", err)
	}
	if ie.Code != CodeDuplicateKey || ie.Path != "/a/b" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
	if len(issues) != 1 {
		t.Fatalf("issue sink should see the fatal issue, got %d", len(issues))
	}
}

func TestEnforce_DuplicateKeyWarnContinues(t *testing.T) {
	s := src(tok(KindBeginObject), key("a"), num("1"), key("a"), num("2"), tok(KindEndObject))
	var issues []SimpleIssue
	ts := WrapWithEnforcement(s, EnforceOptions{OnDuplicate: DupWarn, IssueSink: func(si SimpleIssue) { issues = append(issues, si) }})
	var r recorder
	if err := Replay(ts, &r); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(issues) != 1 || issues[0].Path != "/a" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestEnforce_SameKeyInSiblingObjects(t *testing.T) {
	s := src(
		tok(KindBeginArray),
		tok(KindBeginObject), key("a"), num("1"), tok(KindEndObject),
		tok(KindBeginObject), key("a"), num("2"), tok(KindEndObject),
		tok(KindEndArray),
	)
	ts := WrapWithEnforcement(s, EnforceOptions{OnDuplicate: DupError})
	var r recorder
	if err := Replay(ts, &r); err != nil {
		t.Fatalf("sibling objects must not share keys: %v", err)
	}
}

func TestEnforce_MaxDepthPath(t *testing.T) {
	s := src(
		tok(KindBeginObject),
		key("x/y"), tok(KindBeginArray), num("0"), tok(KindBeginArray), tok(KindEndArray), tok(KindEndArray),
		tok(KindEndObject),
	)
	ts := WrapWithEnforcement(s, EnforceOptions{MaxDepth: 2})
	var ie IssueError
	if err := drain(ts); !errors.As(err, &ie) {
		t.Fatalf("want IssueError, got %v", err)
	}
	if ie.Code != CodeMaxDepth || ie.Path != "/x~1y/1" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	s := src(tok(KindBeginArray), num("1"), num("2"), num("3"), tok(KindEndArray))
	ts := WrapWithEnforcement(s, EnforceOptions{MaxBytes: 2})
	var ie IssueError
	if err := drain(ts); !errors.As(err, &ie) || ie.Code != CodeTruncated {
		t.Fatalf("want truncated issue, got %v", err)
	}
}
