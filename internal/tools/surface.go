package tools

import (
	"context"
	"fmt"

	"blendmcp/internal/script"
)

// Allow-lists checked before any subprocess is launched.
var (
	remeshModes   = []string{"BLOCKS", "SMOOTH", "SHARP", "VOXEL"}
	decimateTypes = []string{"COLLAPSE", "UNSUBDIV", "DISSOLVE"}
)

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func registerSurfaceTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "subdivide_surface",
		Description: "Apply subdivision surface modifier to an object.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":   strProp("Name of the object to subdivide"),
				"levels":        intProp("Subdivision levels for viewport", 1),
				"render_levels": intProp("Subdivision levels for rendering (defaults to levels)", 0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			levels := args.Int("levels", 1)
			renderLevels := args.Int("render_levels", levels)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="SubdivisionSurface", type="SUBSURF")`),
				script.Stmtf("modifier.levels = %s", script.Int(levels)),
				script.Stmtf("modifier.render_levels = %s", script.Int(renderLevels)),
				script.Stmtf(`results.append({"action": "subdivide_surface", "object": %s, "levels": %s, "render_levels": %s})`,
					script.Str(objectName), script.Int(levels), script.Int(renderLevels)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "subdivide_surface",
				"object_name": objectName,
				"parameters":  Response{"levels": levels, "render_levels": renderLevels},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "smooth_object",
		Description: "Apply smooth shading and smoothing to an object.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to smooth"),
				"iterations":  intProp("Number of smoothing iterations", 1),
				"factor":      numProp("Smoothing factor (0.0 to 1.0)", 0.5),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			iterations := args.Int("iterations", 1)
			factor := args.Float("factor", 0.5)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt(`bpy.ops.mesh.select_all(action="SELECT")`),
				script.Stmtf("for i in range(%s):\n    bpy.ops.mesh.vertices_smooth(factor=%s)",
					script.Int(iterations), script.Float(factor)),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmt("bpy.ops.object.shade_smooth()"),
				script.Stmtf(`results.append({"action": "smooth_object", "object": %s, "iterations": %s, "factor": %s})`,
					script.Str(objectName), script.Int(iterations), script.Float(factor)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "smooth_object",
				"object_name": objectName,
				"parameters":  Response{"iterations": iterations, "factor": factor},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "remesh_object",
		Description: "Apply remesh modifier to create uniform topology.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":  strProp("Name of the object to remesh"),
				"octree_depth": intProp("Level of detail (4-10 typical range)", 4),
				"scale":        numProp("Scale factor for remesh", 0.99),
				"mode":         enumProp("Remesh mode", "BLOCKS", remeshModes...),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			octreeDepth := args.Int("octree_depth", 4)
			scale := args.Float("scale", 0.99)
			mode := args.Str("mode", "BLOCKS")
			if err := args.Err(); err != nil {
				return nil, err
			}
			if !contains(remeshModes, mode) {
				return Response{
					"success": false,
					"error":   fmt.Sprintf("Invalid remesh mode: %s. Valid modes: %v", mode, remeshModes),
				}, nil
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Remesh", type="REMESH")`),
				script.Stmtf("modifier.mode = %s", script.Str(mode)),
				script.Stmtf("modifier.octree_depth = %s", script.Int(octreeDepth)),
				script.Stmtf("modifier.scale = %s", script.Float(scale)),
				script.Stmt(`bpy.ops.object.modifier_apply(modifier="Remesh")`),
				script.Stmtf(`results.append({"action": "remesh_object", "object": %s, "mode": %s, "octree_depth": %s, "scale": %s})`,
					script.Str(objectName), script.Str(mode), script.Int(octreeDepth), script.Float(scale)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "remesh_object",
				"object_name": objectName,
				"parameters":  Response{"mode": mode, "octree_depth": octreeDepth, "scale": scale},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "decimate_object",
		Description: "Reduce mesh complexity using decimation.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":   strProp("Name of the object to decimate"),
				"ratio":         numProp("Reduction ratio (0.0 to 1.0)", 0.5),
				"decimate_type": enumProp("Type of decimation", "COLLAPSE", decimateTypes...),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			ratio := args.Float("ratio", 0.5)
			decimateType := args.Str("decimate_type", "COLLAPSE")
			if err := args.Err(); err != nil {
				return nil, err
			}
			if !contains(decimateTypes, decimateType) {
				return Response{
					"success": false,
					"error":   fmt.Sprintf("Invalid decimate type: %s. Valid types: %v", decimateType, decimateTypes),
				}, nil
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Decimate", type="DECIMATE")`),
				script.Stmtf("modifier.decimate_type = %s", script.Str(decimateType)),
				script.Stmtf("modifier.ratio = %s", script.Float(ratio)),
				script.Stmt(`bpy.ops.object.modifier_apply(modifier="Decimate")`),
				script.Stmtf(`results.append({"action": "decimate_object", "object": %s, "type": %s, "ratio": %s})`,
					script.Str(objectName), script.Str(decimateType), script.Float(ratio)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "decimate_object",
				"object_name": objectName,
				"parameters":  Response{"type": decimateType, "ratio": ratio},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_edge_split",
		Description: "Add edge split modifier for sharp edges.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
				"split_angle": numProp("Angle threshold in radians (default ~30 degrees)", 0.523599),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			splitAngle := args.Float("split_angle", 0.523599)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="EdgeSplit", type="EDGE_SPLIT")`),
				script.Stmtf("modifier.split_angle = %s", script.Float(splitAngle)),
				script.Stmt("modifier.use_edge_angle = True"),
				script.Stmtf(`results.append({"action": "add_edge_split", "object": %s, "split_angle": %s})`,
					script.Str(objectName), script.Float(splitAngle)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_edge_split",
				"object_name": objectName,
				"parameters":  Response{"split_angle": splitAngle},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "triangulate_mesh",
		Description: "Triangulate mesh faces.",
		Category:    CategorySurface,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to triangulate"),
				"quad_method": enumProp("Method for triangulating quads", "BEAUTY",
					"BEAUTY", "FIXED", "FIXED_ALTERNATE", "SHORTEST_DIAGONAL"),
				"ngon_method": enumProp("Method for triangulating ngons", "BEAUTY", "BEAUTY", "CLIP"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			quadMethod := args.Str("quad_method", "BEAUTY")
			ngonMethod := args.Str("ngon_method", "BEAUTY")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt(`bpy.ops.mesh.select_all(action="SELECT")`),
				script.Stmtf("bpy.ops.mesh.quads_convert_to_tris(quad_method=%s, ngon_method=%s)",
					script.Str(quadMethod), script.Str(ngonMethod)),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "triangulate_mesh", "object": %s, "quad_method": %s, "ngon_method": %s})`,
					script.Str(objectName), script.Str(quadMethod), script.Str(ngonMethod)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "triangulate_mesh",
				"object_name": objectName,
				"parameters":  Response{"quad_method": quadMethod, "ngon_method": ngonMethod},
			}), nil
		},
	})
}
