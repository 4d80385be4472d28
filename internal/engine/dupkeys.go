// Package engine holds token-level helpers used while decoding lexicon
// documents. It is internal and not part of the public API.
package engine

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	pendingKey   string
	nextIndex    int
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys in a JSON byte
// slice. With DupIgnore no issues are produced. maxIssues < 0 means
// unlimited, 0 disables collection, > 0 caps the count and appends a
// truncated marker. With DupError scanning stops at the first duplicate.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) []SimpleIssue {
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader is DetectJSONDuplicateKeysBytes over an
// io.Reader. The reader is consumed fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) []SimpleIssue {
	if onDup == DupIgnore {
		return nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	s := &dupScanner{onDup: onDup, maxIssues: maxIssues}
	s.run(dec)
	return s.issues
}

type dupScanner struct {
	onDup     DuplicateStrictness
	maxIssues int
	issues    []SimpleIssue
	stack     []dupFrame
	full      bool
}

func (s *dupScanner) add(i SimpleIssue) {
	if s.maxIssues == 0 || s.full {
		return
	}
	s.issues = append(s.issues, i)
	if s.maxIssues > 0 && len(s.issues) >= s.maxIssues {
		s.issues = append(s.issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
		s.full = true
	}
}

func (s *dupScanner) run(dec *json.Decoder) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			s.add(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			return
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				path := s.valuePath()
				s.stack = append(s.stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
			case '[':
				path := s.valuePath()
				s.stack = append(s.stack, dupFrame{kind: kindArray, path: path})
			case '}', ']':
				if n := len(s.stack); n > 0 {
					s.stack = s.stack[:n-1]
				}
			}
		case string:
			if n := len(s.stack); n > 0 {
				top := &s.stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						s.add(SimpleIssue{
							Code:    "duplicate_key",
							Path:    joinJSONPointer(top.path, v),
							Message: "key '" + v + "' duplicated",
						})
						if s.onDup == DupError {
							return
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.pendingKey = v
					continue
				}
			}
			s.valuePath()
		default:
			s.valuePath()
		}
	}
}

// valuePath returns the pointer of the value starting at the current token
// and marks that slot of the enclosing container as consumed.
func (s *dupScanner) valuePath() string {
	n := len(s.stack)
	if n == 0 {
		return ""
	}
	top := &s.stack[n-1]
	if top.kind == kindArray {
		p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	p := joinJSONPointer(top.path, top.pendingKey)
	top.expectingKey = true
	top.pendingKey = ""
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
