package lexicon

import (
	"maps"
	"slices"
)

// Schema types.
const (
	TypeRecord        = "record"
	TypeQuery         = "query"
	TypeProcedure     = "procedure"
	TypeSubscription  = "subscription"
	TypePermissionSet = "permission-set"
	TypeObject        = "object"
	TypeParams        = "params"
	TypeArray         = "array"
	TypeToken         = "token"
	TypeRef           = "ref"
	TypeUnion         = "union"
	TypeString        = "string"
	TypeInteger       = "integer"
	TypeBoolean       = "boolean"
	TypeNull          = "null"
	TypeBytes         = "bytes"
	TypeCIDLink       = "cid-link"
	TypeBlob          = "blob"
	TypeUnknown       = "unknown"
)

var primaryTypes = map[string]struct{}{
	TypeRecord: {}, TypeQuery: {}, TypeProcedure: {}, TypeSubscription: {}, TypePermissionSet: {},
}

var knownTypes = map[string]struct{}{
	TypeRecord: {}, TypeQuery: {}, TypeProcedure: {}, TypeSubscription: {}, TypePermissionSet: {},
	TypeObject: {}, TypeParams: {}, TypeArray: {}, TypeToken: {}, TypeRef: {}, TypeUnion: {},
	TypeString: {}, TypeInteger: {}, TypeBoolean: {}, TypeNull: {}, TypeBytes: {},
	TypeCIDLink: {}, TypeBlob: {}, TypeUnknown: {},
}

// IsPrimaryType reports whether t may only appear as a document's main
// definition.
func IsPrimaryType(t string) bool { _, ok := primaryTypes[t]; return ok }

// IsKnownType reports whether t is a lexicon schema type.
func IsKnownType(t string) bool { _, ok := knownTypes[t]; return ok }

// Schema is one lexicon schema object. Only the fields relevant to its Type
// are set.
type Schema struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`

	// record
	Key    string  `json:"key,omitempty"`
	Record *Schema `json:"record,omitempty"`

	// query, procedure, subscription
	Parameters *Schema    `json:"parameters,omitempty"`
	Input      *Body      `json:"input,omitempty"`
	Output     *Body      `json:"output,omitempty"`
	Message    *Body      `json:"message,omitempty"`
	Errors     []ErrorDef `json:"errors,omitempty"`

	// object, params
	Required   []string           `json:"required,omitempty"`
	Nullable   []string           `json:"nullable,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`

	// array
	Items     *Schema `json:"items,omitempty"`
	MinLength *int    `json:"minLength,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`

	// ref, union
	Ref    string   `json:"ref,omitempty"`
	Refs   []string `json:"refs,omitempty"`
	Closed *bool    `json:"closed,omitempty"`

	// primitives
	Format       string   `json:"format,omitempty"`
	MinGraphemes *int     `json:"minGraphemes,omitempty"`
	MaxGraphemes *int     `json:"maxGraphemes,omitempty"`
	KnownValues  []string `json:"knownValues,omitempty"`
	Enum         []any    `json:"enum,omitempty"`
	Default      any      `json:"default,omitempty"`
	Const        any      `json:"const,omitempty"`
	Minimum      *int64   `json:"minimum,omitempty"`
	Maximum      *int64   `json:"maximum,omitempty"`

	// bytes, blob
	Accept  []string `json:"accept,omitempty"`
	MaxSize *int64   `json:"maxSize,omitempty"`
}

// Body is the input, output or message body of an XRPC definition.
type Body struct {
	Encoding    string  `json:"encoding,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// ErrorDef is a named XRPC error.
type ErrorDef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Clone returns a deep copy of s. Scalar Default/Const/Enum values are
// shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Record = s.Record.Clone()
	c.Parameters = s.Parameters.Clone()
	c.Input = s.Input.clone()
	c.Output = s.Output.clone()
	c.Message = s.Message.clone()
	c.Items = s.Items.Clone()
	c.Errors = slices.Clone(s.Errors)
	c.Required = slices.Clone(s.Required)
	c.Nullable = slices.Clone(s.Nullable)
	c.Refs = slices.Clone(s.Refs)
	c.KnownValues = slices.Clone(s.KnownValues)
	c.Enum = slices.Clone(s.Enum)
	c.Accept = slices.Clone(s.Accept)
	if s.Properties != nil {
		c.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			c.Properties[k] = v.Clone()
		}
	}
	return &c
}

func (b *Body) clone() *Body {
	if b == nil {
		return nil
	}
	c := *b
	c.Schema = b.Schema.Clone()
	return &c
}

// Walk calls fn for s and every nested schema in a fixed order. path is the
// JSON Pointer of each schema relative to s ("" for s itself).
func (s *Schema) Walk(fn func(path string, s *Schema)) {
	s.walk("", fn)
}

func (s *Schema) walk(path string, fn func(string, *Schema)) {
	if s == nil {
		return
	}
	fn(path, s)
	s.Record.walk(path+"/record", fn)
	s.Parameters.walk(path+"/parameters", fn)
	if s.Input != nil {
		s.Input.Schema.walk(path+"/input/schema", fn)
	}
	if s.Output != nil {
		s.Output.Schema.walk(path+"/output/schema", fn)
	}
	if s.Message != nil {
		s.Message.Schema.walk(path+"/message/schema", fn)
	}
	for _, k := range slices.Sorted(maps.Keys(s.Properties)) {
		s.Properties[k].walk(path+"/properties/"+escapePointer(k), fn)
	}
	s.Items.walk(path+"/items", fn)
}
