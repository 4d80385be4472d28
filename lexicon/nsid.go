package lexicon

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/lexgen/internal/naming"
)

const maxNSIDLength = 317

// NSID is a namespaced identifier such as app.bsky.feed.post. The zero value
// is invalid.
type NSID struct {
	value string
}

// ParseNSID validates s and returns it as an NSID.
func ParseNSID(s string) (NSID, error) {
	if len(s) > maxNSIDLength {
		return NSID{}, fmt.Errorf("nsid %q: longer than %d characters", s, maxNSIDLength)
	}
	segments := strings.Split(s, ".")
	if len(segments) < 3 {
		return NSID{}, fmt.Errorf("nsid %q: needs at least 3 segments", s)
	}
	for i, seg := range segments {
		if seg == "" {
			return NSID{}, fmt.Errorf("nsid %q: empty segment", s)
		}
		for _, r := range seg {
			if !isAlnum(r) && r != '-' {
				return NSID{}, fmt.Errorf("nsid %q: invalid character %q", s, r)
			}
		}
		if i == len(segments)-1 {
			if !isLetter(rune(seg[0])) {
				return NSID{}, fmt.Errorf("nsid %q: name must start with a letter", s)
			}
			if strings.Contains(seg, "-") {
				return NSID{}, fmt.Errorf("nsid %q: name must not contain hyphens", s)
			}
		}
	}
	return NSID{value: s}, nil
}

// MustParseNSID is ParseNSID for literals; it panics on error.
func MustParseNSID(s string) NSID {
	n, err := ParseNSID(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n NSID) String() string { return n.value }

// IsZero reports whether n was never set.
func (n NSID) IsZero() bool { return n.value == "" }

// Segments returns the dotted segments in order.
func (n NSID) Segments() []string { return naming.SplitPath(n.value) }

// Name is the last segment.
func (n NSID) Name() string {
	if i := strings.LastIndexByte(n.value, '.'); i >= 0 {
		return n.value[i+1:]
	}
	return n.value
}

// Authority is every segment but the name, in the written order.
func (n NSID) Authority() string {
	if i := strings.LastIndexByte(n.value, '.'); i >= 0 {
		return n.value[:i]
	}
	return ""
}

func (n NSID) MarshalJSON() ([]byte, error) { return json.Marshal(n.value) }

func (n *NSID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseNSID(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isAlnum(r rune) bool  { return isLetter(r) || (r >= '0' && r <= '9') }
