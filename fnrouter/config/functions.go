package config

import (
	"encoding/json"
	"fmt"
	"strings"

	ports "github.com/ZanzyTHEbar/fnrouter/fnrouter/router/ports"
	"github.com/xeipuuv/gojsonschema"
)

// Declarations converts the configured functions into declarations, in order,
// and validates them.
func (c RouterConfig) Declarations() ([]ports.FunctionDeclaration, error) {
	decls := make([]ports.FunctionDeclaration, 0, len(c.Functions))
	for i, fn := range c.Functions {
		var params ports.Schema
		if len(fn.Parameters) > 0 {
			raw, err := json.Marshal(fn.Parameters)
			if err != nil {
				return nil, fmt.Errorf("function %d (%q): failed to encode parameters: %w", i, fn.Name, err)
			}
			if err := json.Unmarshal(raw, &params); err != nil {
				return nil, fmt.Errorf("function %d (%q): failed to decode parameters: %w", i, fn.Name, err)
			}
		}
		decls = append(decls, ports.FunctionDeclaration{
			Name:        strings.TrimSpace(fn.Name),
			Description: fn.Description,
			Parameters:  params,
		})
	}

	if err := ValidateDeclarations(decls); err != nil {
		return nil, err
	}
	return decls, nil
}

// ValidateDeclarations checks that names are non-empty and unique and that
// every parameter schema is an object schema that compiles as JSON Schema.
func ValidateDeclarations(decls []ports.FunctionDeclaration) error {
	seen := make(map[string]bool, len(decls))
	for i, decl := range decls {
		if decl.Name == "" {
			return fmt.Errorf("function %d: name cannot be empty", i)
		}
		if seen[decl.Name] {
			return fmt.Errorf("function %q declared more than once", decl.Name)
		}
		seen[decl.Name] = true

		if decl.Parameters.Type != "" && decl.Parameters.Type != "object" {
			return fmt.Errorf("function %q: parameters must be an object schema, got %q", decl.Name, decl.Parameters.Type)
		}

		raw, err := decl.Parameters.JSON()
		if err != nil {
			return fmt.Errorf("function %q: failed to encode parameters: %w", decl.Name, err)
		}
		if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw)); err != nil {
			return fmt.Errorf("function %q: invalid parameter schema: %w", decl.Name, err)
		}
	}
	return nil
}
