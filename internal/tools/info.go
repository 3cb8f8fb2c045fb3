package tools

import (
	"context"
)

// Server identity reported by get_server_info.
const (
	ServerName        = "Blender MCP Server"
	ServerDescription = "MCP server for 3D model generation using Blender"
)

func registerInfoTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "get_server_info",
		Description: "Get information about the Blender MCP server capabilities.",
		Category:    CategoryInfo,
		Schema:      Schema{Properties: map[string]Property{}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			return Response{
				"name":        ServerName,
				"version":     deps.Version,
				"description": ServerDescription,
				"capabilities": []string{
					"create_primitive_objects",
					"modify_meshes",
					"apply_materials",
					"scene_management",
					"file_operations",
				},
			}, nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "list_available_tools",
		Description: "List all available 3D modeling tools.",
		Category:    CategoryInfo,
		Schema:      Schema{Properties: map[string]Property{}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			// Derived from the registry so the published list can never
			// drift from the dispatchable set.
			return Response{"tools": r.Names()}, nil
		},
	})
}
