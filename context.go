package lexgen

import (
	"slices"
	"strings"
	"sync"

	"github.com/reoring/lexgen/internal/naming"
	"github.com/reoring/lexgen/internal/nstree"
	"github.com/reoring/lexgen/lexicon"
)

// GenerateContext collects lexicon documents and derives the declarations a
// code generator has to emit for them.
//
// Append may be called from several goroutines. The Generate methods take a
// snapshot of the documents appended so far and build fresh state on every
// call.
type GenerateContext struct {
	mu   sync.Mutex
	docs *lexicon.Collection
}

// NewGenerateContext returns an empty context.
func NewGenerateContext() *GenerateContext {
	return &GenerateContext{docs: lexicon.NewCollection()}
}

// Append adds doc to the context.
func (c *GenerateContext) Append(doc *lexicon.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs.Add(doc)
}

// Collection returns a snapshot of the appended documents.
func (c *GenerateContext) Collection() *lexicon.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docs.Clone()
}

// GenerateDefinitions returns one Definition per merged definition ID,
// ordered by the ID's string form.
func (c *GenerateContext) GenerateDefinitions() []Definition[*lexicon.Schema] {
	merged := c.Collection().GenerateDefinitions()

	ids := make([]lexicon.DefinitionID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b lexicon.DefinitionID) int {
		return strings.Compare(a.String(), b.String())
	})

	defs := make([]Definition[*lexicon.Schema], 0, len(ids))
	for _, id := range ids {
		parent, name := id.DefinitionNames()
		defs = append(defs, Definition[*lexicon.Schema]{
			ID:     id,
			Parent: parent,
			Name:   name,
			Object: merged[id],
		})
	}
	return defs
}

// GenerateNamespaceDefinitions returns the namespaces that need a
// placeholder declaration, sorted by full name.
func (c *GenerateContext) GenerateNamespaceDefinitions() []NamespaceDefinition {
	return Resolve(c.GenerateDefinitions())
}

// Resolve builds the namespace tree from the parents of defs and returns
// every namespace whose full name is not also a definition's full name,
// sorted by full name.
func Resolve[T any](defs []Definition[T]) []NamespaceDefinition {
	root := nstree.NewRoot()
	for _, d := range defs {
		root.Insert(naming.SplitPath(d.Parent))
	}

	namespaces := namespaceNames(root)
	for name := range definitionNames(defs) {
		delete(namespaces, name)
	}

	names := make([]string, 0, len(namespaces))
	for name := range namespaces {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]NamespaceDefinition, 0, len(names))
	for _, full := range names {
		parent, name, ok := naming.SeparateFullName(full)
		if !ok {
			continue
		}
		out = append(out, NamespaceDefinition{Parent: parent, Name: name})
	}
	return out
}

// namespaceNames is the set of full names of every non-root node.
func namespaceNames(root *nstree.Node) map[string]struct{} {
	set := make(map[string]struct{})
	for _, n := range root.AllNodes() {
		if full := n.FullName(); full != "" {
			set[full] = struct{}{}
		}
	}
	return set
}

// definitionNames is the set of full names of defs.
func definitionNames[T any](defs []Definition[T]) map[string]struct{} {
	set := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		set[d.FullName()] = struct{}{}
	}
	return set
}
