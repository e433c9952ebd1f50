package jsonapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stantanasi/jsonapi/i18n"
)

// Issue codes
const (
	CodeConflict      = "conflict"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidType   = "invalid_type"
	CodeParseError    = "parse_error"
)

// Issue represents a single schema or mapping problem.
type Issue struct {
	Path    string // JSON Pointer (for example: /attributes/title).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, accepted values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"key":"title"}) for i18n
	// and logging.
	Params map[string]any
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. conflict at /attributes/title
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// NewIssue builds an Issue whose message is looked up through i18n.
func NewIssue(path, code string, data map[string]string) Issue {
	params := make(map[string]any, len(data))
	for k, v := range data {
		params[k] = v
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Params: params}
}

// JoinPointer builds a JSON Pointer from unescaped reference tokens. No
// tokens yields the root pointer "/".
func JoinPointer(tokens ...string) string {
	if len(tokens) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, t := range tokens {
		b.WriteByte('/')
		if strings.ContainsAny(t, "~/") {
			t = strings.ReplaceAll(t, "~", "~0")
			t = strings.ReplaceAll(t, "/", "~1")
		}
		b.WriteString(t)
	}
	return b.String()
}
