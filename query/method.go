// Package query holds the method vocabulary of the document query language.
package query

import (
	"fmt"
	"strings"
)

// MethodType names a method callable in a query's where clause.
type MethodType int

const (
	Search MethodType = iota
	Boost
	StartsWith
	EndsWith
	Lucene
	Exists
	Exact
	Count
	Sum
	Intersect

	Circle
	Wkt
	Within
	Contains
	Disjoint
	Intersects
)

var methodNames = [...]string{
	Search:     "search",
	Boost:      "boost",
	StartsWith: "startsWith",
	EndsWith:   "endsWith",
	Lucene:     "lucene",
	Exists:     "exists",
	Exact:      "exact",
	Count:      "count",
	Sum:        "sum",
	Intersect:  "intersect",
	Circle:     "circle",
	Wkt:        "wkt",
	Within:     "within",
	Contains:   "contains",
	Disjoint:   "disjoint",
	Intersects: "intersects",
}

var methodsByName = func() map[string]MethodType {
	m := make(map[string]MethodType, len(methodNames))
	for i, n := range methodNames {
		m[strings.ToLower(n)] = MethodType(i)
	}
	return m
}()

func (m MethodType) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("MethodType(%d)", int(m))
}

// IsSpatial reports whether m is a shape constructor or a spatial relation.
func (m MethodType) IsSpatial() bool { return m >= Circle && m <= Intersects }

// ParseMethodType resolves a method name case-insensitively.
func ParseMethodType(name string) (MethodType, error) {
	if m, ok := methodsByName[strings.ToLower(name)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown query method %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m MethodType) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(methodNames) {
		return nil, fmt.Errorf("invalid query method %d", int(m))
	}
	return []byte(methodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MethodType) UnmarshalText(b []byte) error {
	v, err := ParseMethodType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
