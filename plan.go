package lexgen

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Plan is the declaration manifest for one generation run: namespace
// placeholders first, then definitions, each in sorted order.
type Plan struct {
	Namespaces  []NamespaceDefinition `json:"namespaces" yaml:"namespaces"`
	Definitions []PlanDefinition      `json:"definitions" yaml:"definitions"`
}

// PlanDefinition is the serializable view of a Definition.
type PlanDefinition struct {
	ID     string `json:"id" yaml:"id"`
	Parent string `json:"parent" yaml:"parent"`
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
}

// Plan runs both generation passes over the appended documents.
func (c *GenerateContext) Plan() *Plan {
	defs := c.GenerateDefinitions()
	p := &Plan{
		Namespaces:  Resolve(defs),
		Definitions: make([]PlanDefinition, 0, len(defs)),
	}
	for _, d := range defs {
		pd := PlanDefinition{ID: d.ID.String(), Parent: d.Parent, Name: d.Name}
		if d.Object != nil {
			pd.Type = d.Object.Type
		}
		p.Definitions = append(p.Definitions, pd)
	}
	if p.Namespaces == nil {
		p.Namespaces = []NamespaceDefinition{}
	}
	return p
}

// EncodeJSON writes p as JSON, indented when indent is set.
func (p *Plan) EncodeJSON(w io.Writer, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan json: %w", err)
	}
	return nil
}

// EncodeYAML writes p as YAML.
func (p *Plan) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode plan yaml: %w", err)
	}
	return nil
}
