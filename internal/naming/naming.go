// Package naming derives declaration names from dotted lexicon identifiers.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeadUpper uppercases the first rune of s and leaves the rest untouched.
func HeadUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// DefinitionNames splits an identifier into the parent path and local name
// used for its nested declaration.
//
// For a primary definition every segment is head-uppercased, the last one
// becomes the name and the rest form the parent. For an auxiliary definition
// the segments are joined verbatim and only the local name is head-uppercased.
//
// It panics when segments is empty.
func DefinitionNames(segments []string, name string, main bool) (parent, local string) {
	if len(segments) == 0 {
		panic("naming: identifier has no segments")
	}
	if !main {
		return strings.Join(segments, "."), HeadUpper(name)
	}

	upper := make([]string, len(segments))
	for i, s := range segments {
		upper[i] = HeadUpper(s)
	}
	last := len(upper) - 1
	return strings.Join(upper[:last], "."), upper[last]
}

// SplitPath splits a dotted path into segments. The empty path has none.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// SeparateFullName removes the last dotted component of full and returns it
// as name, with the remaining components joined as parent. ok is false only
// when full decomposes into no components.
func SeparateFullName(full string) (parent, name string, ok bool) {
	components := SplitPath(full)
	if len(components) == 0 {
		return "", "", false
	}
	last := len(components) - 1
	return strings.Join(components[:last], "."), components[last], true
}

// JoinNonEmpty joins parts with dots, skipping empty ones.
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
