package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blendmcp/internal/script"
)

// exportFormats is the allow-list of supported export formats, checked before
// any subprocess is launched.
var exportFormats = []string{"obj", "fbx", "stl", "ply"}

func registerSceneTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "clear_scene",
		Description: "Clear all objects from the Blender scene.",
		Category:    CategoryScene,
		Schema:      Schema{Properties: map[string]Property{}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			res, err := deps.run(ctx, []script.Statement{
				script.Stmt(`bpy.ops.object.select_all(action="SELECT")`),
				script.Stmt("bpy.ops.object.delete(use_global=False, confirm=False)"),
				script.Stmt(`results.append({"action": "clear_scene", "status": "completed"})`),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{"action": "clear_scene"}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "save_blend_file",
		Description: "Save the current Blender scene to a .blend file.",
		Category:    CategoryScene,
		Schema: Schema{
			Required: []string{"filepath"},
			Properties: map[string]Property{
				"filepath": strProp("Path where to save the .blend file"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			path := args.Str("filepath", "")
			if err := args.Err(); err != nil {
				return nil, err
			}
			if !strings.HasSuffix(path, ".blend") {
				path += ".blend"
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.wm.save_as_mainfile(filepath=%s)", script.Str(path)),
				script.Stmtf(`results.append({"action": "save_blend_file", "filepath": %s, "status": "completed"})`,
					script.Str(path)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":   "save_blend_file",
				"filepath": path,
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "export_model",
		Description: "Export 3D model to various formats.",
		Category:    CategoryScene,
		Schema: Schema{
			Required: []string{"filepath"},
			Properties: map[string]Property{
				"filepath":      strProp("Output file path"),
				"format":        enumProp("Export format", "obj", exportFormats...),
				"selected_only": boolProp("Export only selected objects", false),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			path := args.Str("filepath", "")
			format := strings.ToLower(args.Str("format", "obj"))
			selectedOnly := args.Bool("selected_only", false)
			if err := args.Err(); err != nil {
				return nil, err
			}
			if !contains(exportFormats, format) {
				return Response{
					"success": false,
					"error":   fmt.Sprintf("Unsupported format: %s. Supported: %v", format, exportFormats),
				}, nil
			}

			if !strings.HasSuffix(path, "."+format) {
				path += "." + format
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			var exportOp script.Statement
			switch format {
			case "obj":
				exportOp = script.Stmtf("bpy.ops.export_scene.obj(filepath=%s, use_selection=%s)",
					script.Str(path), script.Bool(selectedOnly))
			case "fbx":
				exportOp = script.Stmtf("bpy.ops.export_scene.fbx(filepath=%s, use_selection=%s)",
					script.Str(path), script.Bool(selectedOnly))
			case "stl":
				exportOp = script.Stmtf("bpy.ops.export_mesh.stl(filepath=%s, use_selection=%s)",
					script.Str(path), script.Bool(selectedOnly))
			case "ply":
				exportOp = script.Stmtf("bpy.ops.export_mesh.ply(filepath=%s, use_selection=%s)",
					script.Str(path), script.Bool(selectedOnly))
			}

			res, err := deps.run(ctx, []script.Statement{
				exportOp,
				script.Stmtf(`results.append({"action": "export_model", "filepath": %s, "format": %s, "status": "completed"})`,
					script.Str(path), script.Str(format)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":   "export_model",
				"filepath": path,
				"format":   format,
			}), nil
		},
	})
}
