package lexgen

import (
	"github.com/reoring/lexgen/internal/naming"
	"github.com/reoring/lexgen/lexicon"
)

// Definition is a concrete schema definition placed at (Parent, Name) in the
// generated declaration tree.
type Definition[T any] struct {
	ID     lexicon.DefinitionID
	Parent string
	Name   string
	Object T
}

// FullName is Parent and Name joined with a dot, empty parts dropped.
func (d Definition[T]) FullName() string { return naming.JoinNonEmpty(d.Parent, d.Name) }

// NamespaceDefinition is an intermediate namespace that needs a declaration
// but has no definition of its own.
type NamespaceDefinition struct {
	Parent string `json:"parent" yaml:"parent"`
	Name   string `json:"name" yaml:"name"`
}

// FullName is Parent and Name joined with a dot, empty parts dropped.
func (n NamespaceDefinition) FullName() string { return naming.JoinNonEmpty(n.Parent, n.Name) }
