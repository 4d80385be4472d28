// Package lexicon is the schema side of lexgen: NSIDs and definition IDs,
// the lexicon schema object model, document decoding (JSON and YAML), and
// the Collection that merges documents into one map of definitions with
// absolute references.
//
// Typical usage:
//
//	docs, err := lexicon.LoadFiles(ctx, lexicon.ParseOptions{OnDuplicateKey: lexicon.Warn}, "./lexicons")
//	c := lexicon.NewCollection()
//	for _, d := range docs {
//		c.Add(d)
//	}
//	defs := c.GenerateDefinitions()
package lexicon
