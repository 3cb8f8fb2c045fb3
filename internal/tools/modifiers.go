package tools

import (
	"context"
	"strings"

	"blendmcp/internal/script"
)

func registerModifierTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "add_array_modifier",
		Description: "Add array modifier to duplicate objects.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":         strProp("Name of the object"),
				"count":               intProp("Number of duplicates", 3),
				"offset":              vecProp("Offset between duplicates", []float64{2, 0, 0}),
				"use_relative_offset": boolProp("Use relative offset (vs absolute)", true),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			count := args.Int("count", 3)
			offset := args.Vec3("offset", [3]float64{2, 0, 0})
			useRelative := args.Bool("use_relative_offset", true)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Array", type="ARRAY")`),
				script.Stmtf("modifier.count = %s", script.Int(count)),
				script.Stmtf("modifier.use_relative_offset = %s", script.Bool(useRelative)),
				script.Stmtf("modifier.relative_offset_displace = %s", script.Vec3(offset)),
				script.Stmtf(`results.append({"action": "add_array_modifier", "object": %s, "count": %s, "offset": %s})`,
					script.Str(objectName), script.Int(count), script.Vec3(offset)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_array_modifier",
				"object_name": objectName,
				"parameters": Response{
					"count": count, "offset": vec3Slice(offset),
					"use_relative_offset": useRelative,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_mirror_modifier",
		Description: "Add mirror modifier to create symmetrical objects.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":     strProp("Name of the object"),
				"axis":            strPropDefault("Mirror axis ('X', 'Y', 'Z', or combinations like 'XY')", "X"),
				"use_bisect":      boolProp("Cut the mesh at the mirror plane", false),
				"merge_threshold": numProp("Distance for merging vertices", 0.001),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			axis := args.Str("axis", "X")
			useBisect := args.Bool("use_bisect", false)
			mergeThreshold := args.Float("merge_threshold", 0.001)
			if err := args.Err(); err != nil {
				return nil, err
			}

			upper := strings.ToUpper(axis)
			onX := strings.Contains(upper, "X")
			onY := strings.Contains(upper, "Y")
			onZ := strings.Contains(upper, "Z")

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Mirror", type="MIRROR")`),
				script.Stmtf("modifier.use_axis[0] = %s", script.Bool(onX)),
				script.Stmtf("modifier.use_axis[1] = %s", script.Bool(onY)),
				script.Stmtf("modifier.use_axis[2] = %s", script.Bool(onZ)),
				script.Stmtf("modifier.use_bisect_axis[0] = %s", script.Bool(useBisect && onX)),
				script.Stmtf("modifier.use_bisect_axis[1] = %s", script.Bool(useBisect && onY)),
				script.Stmtf("modifier.use_bisect_axis[2] = %s", script.Bool(useBisect && onZ)),
				script.Stmtf("modifier.merge_threshold = %s", script.Float(mergeThreshold)),
				script.Stmtf(`results.append({"action": "add_mirror_modifier", "object": %s, "axis": %s, "use_bisect": %s})`,
					script.Str(objectName), script.Str(axis), script.Bool(useBisect)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_mirror_modifier",
				"object_name": objectName,
				"parameters": Response{
					"axis": axis, "use_bisect": useBisect,
					"merge_threshold": mergeThreshold,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_solidify_modifier",
		Description: "Add solidify modifier to give thickness to surfaces.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
				"thickness":   numProp("Thickness of the solidify", 0.1),
				"offset":      numProp("Offset factor (-1 to 1)", -1.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			thickness := args.Float("thickness", 0.1)
			offset := args.Float("offset", -1.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Solidify", type="SOLIDIFY")`),
				script.Stmtf("modifier.thickness = %s", script.Float(thickness)),
				script.Stmtf("modifier.offset = %s", script.Float(offset)),
				script.Stmtf(`results.append({"action": "add_solidify_modifier", "object": %s, "thickness": %s, "offset": %s})`,
					script.Str(objectName), script.Float(thickness), script.Float(offset)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_solidify_modifier",
				"object_name": objectName,
				"parameters":  Response{"thickness": thickness, "offset": offset},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_bevel_modifier",
		Description: "Add bevel modifier for rounded edges.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":  strProp("Name of the object"),
				"width":        numProp("Bevel width", 0.1),
				"segments":     intProp("Number of segments", 1),
				"limit_method": enumProp("Limit method", "NONE", "NONE", "ANGLE", "WEIGHT", "VGROUP"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			width := args.Float("width", 0.1)
			segments := args.Int("segments", 1)
			limitMethod := args.Str("limit_method", "NONE")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Bevel", type="BEVEL")`),
				script.Stmtf("modifier.width = %s", script.Float(width)),
				script.Stmtf("modifier.segments = %s", script.Int(segments)),
				script.Stmtf("modifier.limit_method = %s", script.Str(limitMethod)),
				script.Stmtf(`results.append({"action": "add_bevel_modifier", "object": %s, "width": %s, "segments": %s})`,
					script.Str(objectName), script.Float(width), script.Int(segments)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_bevel_modifier",
				"object_name": objectName,
				"parameters":  Response{"width": width, "segments": segments, "limit_method": limitMethod},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_screw_modifier",
		Description: "Add screw modifier for spiral/helical shapes.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
				"angle":       numProp("Rotation angle in radians (2π = full rotation)", 6.28318),
				"screw":       numProp("Screw offset along axis", 0.0),
				"iterations":  intProp("Number of iterations", 1),
				"axis":        enumProp("Rotation axis", "Z", "X", "Y", "Z"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			angle := args.Float("angle", 6.28318)
			screw := args.Float("screw", 0.0)
			iterations := args.Int("iterations", 1)
			axis := args.Str("axis", "Z")
			if err := args.Err(); err != nil {
				return nil, err
			}

			axisName := strings.ToUpper(axis)
			if axisName != "X" && axisName != "Y" && axisName != "Z" {
				axisName = "Z"
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Screw", type="SCREW")`),
				script.Stmtf("modifier.angle = %s", script.Float(angle)),
				script.Stmtf("modifier.screw_offset = %s", script.Float(screw)),
				script.Stmtf("modifier.iterations = %s", script.Int(iterations)),
				script.Stmtf("modifier.axis = %s", script.Str(axisName)),
				script.Stmtf(`results.append({"action": "add_screw_modifier", "object": %s, "angle": %s, "screw": %s, "iterations": %s})`,
					script.Str(objectName), script.Float(angle), script.Float(screw), script.Int(iterations)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_screw_modifier",
				"object_name": objectName,
				"parameters": Response{
					"angle": angle, "screw": screw,
					"iterations": iterations, "axis": axis,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_wave_modifier",
		Description: "Add wave modifier for wave distortion.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name":           strProp("Name of the object"),
				"height":                numProp("Wave amplitude", 0.5),
				"width":                 numProp("Wave width", 1.5),
				"speed":                 numProp("Wave speed", 1.0),
				"start_position_object": numProp("Starting position along object", 0.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			height := args.Float("height", 0.5)
			width := args.Float("width", 1.5)
			speed := args.Float("speed", 1.0)
			startPosition := args.Float("start_position_object", 0.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`modifier = obj.modifiers.new(name="Wave", type="WAVE")`),
				script.Stmtf("modifier.height = %s", script.Float(height)),
				script.Stmtf("modifier.width = %s", script.Float(width)),
				script.Stmtf("modifier.speed = %s", script.Float(speed)),
				script.Stmtf("modifier.start_position_object = %s", script.Float(startPosition)),
				script.Stmtf(`results.append({"action": "add_wave_modifier", "object": %s, "height": %s, "width": %s, "speed": %s})`,
					script.Str(objectName), script.Float(height), script.Float(width), script.Float(speed)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_wave_modifier",
				"object_name": objectName,
				"parameters": Response{
					"height": height, "width": width, "speed": speed,
					"start_position_object": startPosition,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_displacement_modifier",
		Description: "Add displacement modifier with noise texture.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
				"strength":    numProp("Displacement strength", 1.0),
				"mid_level":   numProp("Middle level (0-1)", 0.5),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			strength := args.Float("strength", 1.0)
			midLevel := args.Float("mid_level", 0.5)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`tex = bpy.data.textures.new(name="DisplacementNoise", type="NOISE")`),
				script.Stmt("tex.noise_scale = 0.25"),
				script.Stmt(`modifier = obj.modifiers.new(name="Displace", type="DISPLACE")`),
				script.Stmt("modifier.texture = tex"),
				script.Stmtf("modifier.strength = %s", script.Float(strength)),
				script.Stmtf("modifier.mid_level = %s", script.Float(midLevel)),
				script.Stmtf(`results.append({"action": "add_displacement_modifier", "object": %s, "strength": %s, "mid_level": %s})`,
					script.Str(objectName), script.Float(strength), script.Float(midLevel)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_displacement_modifier",
				"object_name": objectName,
				"parameters":  Response{"strength": strength, "mid_level": midLevel},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "apply_modifier",
		Description: "Apply a modifier to make it permanent.",
		Category:    CategoryModifier,
		Schema: Schema{
			Required: []string{"object_name", "modifier_name"},
			Properties: map[string]Property{
				"object_name":   strProp("Name of the object"),
				"modifier_name": strProp("Name of the modifier to apply"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			modifierName := args.Str("modifier_name", "")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmtf("bpy.ops.object.modifier_apply(modifier=%s)", script.Str(modifierName)),
				script.Stmtf(`results.append({"action": "apply_modifier", "object": %s, "modifier": %s})`,
					script.Str(objectName), script.Str(modifierName)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "apply_modifier",
				"object_name":   objectName,
				"modifier_name": modifierName,
			}), nil
		},
	})
}
