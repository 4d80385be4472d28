package lexicon

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
)

// Collection is the set of documents that make up one generation run.
// Several documents may share an NSID; their definitions are merged. It is
// not safe for concurrent mutation.
type Collection struct {
	docs []*Document
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add stores doc. Adding nil or a document already present is a no-op.
func (c *Collection) Add(doc *Document) {
	if doc == nil || slices.Contains(c.docs, doc) {
		return
	}
	c.docs = append(c.docs, doc)
}

// Len returns the number of documents.
func (c *Collection) Len() int { return len(c.docs) }

// Documents returns the documents in precedence order: by NSID, then
// Revision, then Source, then content. The order does not depend on the
// order of Add calls.
func (c *Collection) Documents() []*Document {
	type keyed struct {
		doc     *Document
		content []byte
	}
	ks := make([]keyed, 0, len(c.docs))
	for _, d := range c.docs {
		// Defs marshal with sorted keys, so equal content gives equal bytes.
		b, _ := json.Marshal(d.Defs)
		ks = append(ks, keyed{doc: d, content: b})
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return cmp.Or(
			cmp.Compare(a.doc.ID.String(), b.doc.ID.String()),
			cmp.Compare(a.doc.Revision, b.doc.Revision),
			cmp.Compare(a.doc.Source, b.doc.Source),
			bytes.Compare(a.content, b.content),
		)
	})
	out := make([]*Document, len(ks))
	for i, k := range ks {
		out[i] = k.doc
	}
	return out
}

// Clone returns a collection sharing the same documents.
func (c *Collection) Clone() *Collection {
	return &Collection{docs: slices.Clone(c.docs)}
}

// GenerateDefinitions merges every document into one map from definition ID
// to schema. Returned schemas are copies whose references are absolute
// ("#x" becomes "nsid#x", "nsid#main" becomes "nsid").
//
// Documents sharing an NSID contribute all their definitions. When two
// define the same name, the one later in Documents order wins. Definitions
// with an empty name are skipped.
func (c *Collection) GenerateDefinitions() map[DefinitionID]*Schema {
	out := make(map[DefinitionID]*Schema)
	for _, doc := range c.Documents() {
		for name, def := range doc.Defs {
			if def == nil || name == "" {
				continue
			}
			s := def.Clone()
			s.absolutize(doc.ID)
			out[NewDefinitionID(doc.ID, name)] = s
		}
	}
	return out
}

// Check reports references that do not resolve to a definition in the
// collection.
func (c *Collection) Check() Issues {
	docs := c.Documents()
	defined := make(map[DefinitionID]struct{})
	for _, doc := range docs {
		for name, def := range doc.Defs {
			if def != nil && name != "" {
				defined[NewDefinitionID(doc.ID, name)] = struct{}{}
			}
		}
	}

	var iss Issues
	for _, doc := range docs {
		for _, name := range doc.DefNames() {
			def := doc.Defs[name]
			if def == nil || name == "" {
				continue
			}
			base := "/defs/" + escapePointer(name)
			for _, pr := range def.references() {
				path, ref := base+pr[0], pr[1]
				id, err := ResolveReference(doc.ID, ref)
				if err == nil {
					if _, ok := defined[id]; ok {
						continue
					}
				}
				msg := fmt.Sprintf("reference %q does not resolve", ref)
				if err != nil {
					msg = fmt.Sprintf("reference %q: %v", ref, err)
				}
				iss = AppendIssues(iss, Issue{
					Document: doc.ID.String(),
					Path:     path,
					Code:     CodeUnresolvedRef,
					Message:  msg,
					Cause:    err,
					Params:   map[string]any{"ref": ref},
				})
			}
		}
	}
	return iss
}
