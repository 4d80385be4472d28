package lexgen

// Package lexgen plans the declarations a code generator emits for a set of
// lexicon documents:
//
// - Definitions: one (parent, name) pair per lexicon definition, ordered by
//   definition ID.
// - Namespace definitions: one (parent, name) pair per intermediate
//   namespace that has no definition of its own, ordered by full name.
//
// Design policy:
// - Keep only the planning API in the root package; the namespace tree and
//   name derivation live under internal/.
// - Lexicon parsing, the schema model and reference resolution live in
//   lexicon/, and the CLI under cmd/lexgen.
// - Rendering source code from the plan is left to the caller.
//
// Typical usage:
//
//  ctx := lexgen.NewGenerateContext()
//  for _, doc := range docs {
//      ctx.Append(doc)
//  }
//  namespaces := ctx.GenerateNamespaceDefinitions()
//  defs := ctx.GenerateDefinitions()
//
