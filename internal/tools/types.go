// Package tools provides the modeling tool catalog and its registry.
//
// Each tool is a descriptor: a name, a JSON schema for its arguments, and a
// run function that renders the arguments into Blender Python statements and
// hands them to the injected Runner. Tools never touch the subprocess layer
// directly, so tests swap the Runner for a mock.
package tools

import (
	"context"
)

// Category classifies tools for listing and filtering.
type Category string

const (
	CategoryInfo      Category = "info"
	CategoryPrimitive Category = "primitive"
	CategoryMesh      Category = "mesh"
	CategoryBoolean   Category = "boolean"
	CategorySurface   Category = "surface"
	CategoryMaterial  Category = "material"
	CategoryModifier  Category = "modifier"
	CategoryScene     Category = "scene"
)

// Property describes a single parameter for the JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array element schema (required for type="array")
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema for array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// Schema defines the JSON schema for tool arguments. Serialized as-is into
// the MCP inputSchema.
type Schema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// Response is a tool's structured result, serialized to JSON for the caller.
type Response map[string]any

// RunFunc executes a tool against the injected dependencies.
type RunFunc func(ctx context.Context, deps *Deps, args *Args) (Response, error)

// Tool is one catalog entry.
type Tool struct {
	// Name is the unique identifier, as published to MCP clients.
	Name string

	// Description explains what the tool does, for tools/list.
	Description string

	// Category classifies the tool.
	Category Category

	// Schema defines the expected arguments.
	Schema Schema

	// Run executes the tool.
	Run RunFunc
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Run == nil {
		return ErrToolRunNil
	}
	return nil
}
