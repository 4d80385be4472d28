package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/lexgen/i18n"
)

// Issue codes.
const (
	CodeParseError         = "parse_error"
	CodeDuplicateKey       = "duplicate_key"
	CodeTruncated          = "truncated"
	CodeUnsupportedVersion = "unsupported_version"
	CodeInvalidNSID        = "invalid_nsid"
	CodeInvalidDefName     = "invalid_def_name"
	CodeInvalidType        = "invalid_type"
	CodeEmptyDefs          = "empty_defs"
	CodeMisplacedPrimary   = "misplaced_primary"
	CodeUnresolvedRef      = "unresolved_ref"
)

// Issue represents a single problem found in a lexicon document.
type Issue struct {
	Document string // NSID or file of the document, when known.
	Path     string // JSON Pointer inside the document (for example: /defs/main/record).
	Code     string // One of the codes listed above.
	Message  string
	Hint     string // Optional: remediation hints.
	Cause    error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"ref":"#missing"}) for
	// i18n and tooling.
	Params map[string]any
}

// Text returns Message, or the translated message for Code when Message is
// empty.
func (i Issue) Text() string {
	if i.Message != "" {
		return i.Message
	}
	return i18n.T(i.Code, nil)
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Document != "" {
		b.WriteString(i.Document)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s at %s", i.Code, i.Path)
	if t := i.Text(); t != "" && t != i.Code {
		b.WriteString(": ")
		b.WriteString(t)
	}
	return b.String()
}

func (i Issue) Unwrap() error { return i.Cause }

// Issues is a collection of document issues that implements error.
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
		if it.Document != "" {
			fmt.Fprintf(b, "%s: ", it.Document)
		}
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

// orNil returns nil for an empty Issues so callers can return it as error.
func (iss Issues) orNil() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// withDocument stamps doc onto every issue that has no document yet.
func (iss Issues) withDocument(doc string) Issues {
	for i := range iss {
		if iss[i].Document == "" {
			iss[i].Document = doc
		}
	}
	return iss
}
