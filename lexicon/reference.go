package lexicon

import (
	"strconv"
	"strings"
)

// ResolveReference turns a reference found in document base into the ID it
// points at. Local references ("#name") resolve inside base; "nsid" and
// "nsid#main" both name the main definition of nsid.
func ResolveReference(base NSID, ref string) (DefinitionID, error) {
	if strings.HasPrefix(ref, "#") {
		return ParseDefinitionID(base.String() + ref)
	}
	return ParseDefinitionID(ref)
}

// absoluteRef rewrites ref in its canonical absolute form. References that
// do not parse are returned unchanged so Check can report them.
func absoluteRef(base NSID, ref string) string {
	id, err := ResolveReference(base, ref)
	if err != nil {
		return ref
	}
	return id.String()
}

// absolutize rewrites every reference under s, which must be owned by the
// caller.
func (s *Schema) absolutize(base NSID) {
	s.Walk(func(_ string, n *Schema) {
		if n.Ref != "" {
			n.Ref = absoluteRef(base, n.Ref)
		}
		for i, r := range n.Refs {
			n.Refs[i] = absoluteRef(base, r)
		}
	})
}

// references lists every (pointer, reference) pair under s.
func (s *Schema) references() [][2]string {
	var out [][2]string
	s.Walk(func(path string, n *Schema) {
		if n.Ref != "" {
			out = append(out, [2]string{path + "/ref", n.Ref})
		}
		for i, r := range n.Refs {
			out = append(out, [2]string{path + "/refs/" + strconv.Itoa(i), r})
		}
	})
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string { return pointerEscaper.Replace(s) }
