// Package codec holds the text forms of the Date and Bytes token kinds.
package codec

import (
	"encoding/base64"
	"time"
)

// ParseRFC3339 parses an RFC 3339 timestamp (fractional seconds optional).
// The offset written in s is kept as the location of the result.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// LooksLikeRFC3339 is a cheap shape check ("YYYY-MM-DDThh:mm:ss...") used to
// skip parsing for ordinary strings.
func LooksLikeRFC3339(s string) bool {
	if len(s) < len("2006-01-02T15:04:05Z") {
		return false
	}
	if s[4] != '-' || s[7] != '-' || (s[10] != 'T' && s[10] != 't') || s[13] != ':' || s[16] != ':' {
		return false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9, 11, 12, 14, 15, 17, 18} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DetectRFC3339 returns the parsed time when s is an RFC 3339 timestamp.
func DetectRFC3339(s string) (time.Time, bool) {
	if !LooksLikeRFC3339(s) {
		return time.Time{}, false
	}
	t, err := ParseRFC3339(s)
	return t, err == nil
}

// FormatRFC3339 renders t with RFC3339Nano (trailing zeros trimmed) in its
// own offset; UTC renders as "Z".
func FormatRFC3339(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// EncodeBytes renders raw bytes as standard padded base64.
func EncodeBytes(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeBytes is the inverse of EncodeBytes.
func DecodeBytes(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
