package routerports

import (
	"encoding/json"
	"slices"
)

// Schema is the JSON-Schema subset used to describe function parameters.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ObjectSchema builds an object schema from its properties.
func ObjectSchema(properties map[string]*Schema, required ...string) Schema {
	return Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// JSON encodes the schema. An empty schema encodes as an object with no properties.
func (s Schema) JSON() ([]byte, error) {
	if s.Type == "" && len(s.Properties) == 0 {
		return []byte(`{"type":"object","properties":{}}`), nil
	}
	return json.Marshal(s)
}

// Map returns the schema as a generic JSON value, the form most SDKs accept.
func (s Schema) Map() (map[string]any, error) {
	raw, err := s.JSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FunctionDeclaration describes a callable function advertised to the model.
type FunctionDeclaration struct {
	Name        string `json:"name"`        // unique logical name
	Description string `json:"description"` // concise doc for model selection
	Parameters  Schema `json:"parameters"`
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	out := s
	out.Enum = slices.Clone(s.Enum)
	out.Required = slices.Clone(s.Required)
	if s.Items != nil {
		items := s.Items.Clone()
		out.Items = &items
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			if prop == nil {
				out.Properties[name] = nil
				continue
			}
			cloned := prop.Clone()
			out.Properties[name] = &cloned
		}
	}
	return out
}

// CloneDeclarations returns a deep copy of decls, parameter schemas included.
func CloneDeclarations(decls []FunctionDeclaration) []FunctionDeclaration {
	if decls == nil {
		return nil
	}
	out := make([]FunctionDeclaration, len(decls))
	for i, decl := range decls {
		out[i] = decl
		out[i].Parameters = decl.Parameters.Clone()
	}
	return out
}
