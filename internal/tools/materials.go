package tools

import (
	"context"

	"blendmcp/internal/script"
)

var white = [4]float64{1, 1, 1, 1}

func registerMaterialTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "create_material",
		Description: "Create a new material with basic properties.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"name"},
			Properties: map[string]Property{
				"name":              strProp("Name for the material"),
				"base_color":        vecProp("RGBA color values (0.0-1.0)", []float64{0.8, 0.2, 0.2, 1.0}),
				"metallic":          numProp("Metallic factor (0.0-1.0)", 0.0),
				"roughness":         numProp("Roughness factor (0.0-1.0)", 0.5),
				"emission_strength": numProp("Emission strength", 0.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			name := args.Str("name", "")
			baseColor := args.Vec4("base_color", [4]float64{0.8, 0.2, 0.2, 1.0})
			metallic := args.Float("metallic", 0.0)
			roughness := args.Float("roughness", 0.5)
			emissionStrength := args.Float("emission_strength", 0.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("mat = bpy.data.materials.new(name=%s)", script.Str(name)),
				script.Stmt("mat.use_nodes = True"),
				script.Stmt(`bsdf = mat.node_tree.nodes["Principled BSDF"]`),
				script.Stmtf(`bsdf.inputs["Base Color"].default_value = %s`, script.Vec4(baseColor)),
				script.Stmtf(`bsdf.inputs["Metallic"].default_value = %s`, script.Float(metallic)),
				script.Stmtf(`bsdf.inputs["Roughness"].default_value = %s`, script.Float(roughness)),
				script.Stmtf(`bsdf.inputs["Emission Strength"].default_value = %s`, script.Float(emissionStrength)),
				script.Stmtf(`results.append({"action": "create_material", "material": %s, "base_color": %s, "metallic": %s, "roughness": %s})`,
					script.Str(name), script.Vec4(baseColor), script.Float(metallic), script.Float(roughness)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "create_material",
				"material_name": name,
				"properties": Response{
					"base_color":        vec4Slice(baseColor),
					"metallic":          metallic,
					"roughness":         roughness,
					"emission_strength": emissionStrength,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "apply_material_to_object",
		Description: "Apply a material to an object.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"object_name", "material_name"},
			Properties: map[string]Property{
				"object_name":   strProp("Name of the object"),
				"material_name": strProp("Name of the material to apply"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			materialName := args.Str("material_name", "")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmtf("mat = bpy.data.materials[%s]", script.Str(materialName)),
				script.Stmt("if obj.data.materials:\n    obj.data.materials[0] = mat\nelse:\n    obj.data.materials.append(mat)"),
				script.Stmtf(`results.append({"action": "apply_material", "object": %s, "material": %s})`,
					script.Str(objectName), script.Str(materialName)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "apply_material",
				"object_name":   objectName,
				"material_name": materialName,
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_glass_material",
		Description: "Create a glass material.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"name"},
			Properties: map[string]Property{
				"name":         strProp("Name for the material"),
				"color":        vecProp("RGBA color values", []float64{1, 1, 1, 1}),
				"ior":          numProp("Index of refraction", 1.45),
				"transmission": numProp("Transmission factor", 1.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			name := args.Str("name", "")
			color := args.Vec4("color", white)
			ior := args.Float("ior", 1.45)
			transmission := args.Float("transmission", 1.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("mat = bpy.data.materials.new(name=%s)", script.Str(name)),
				script.Stmt("mat.use_nodes = True"),
				script.Stmt(`bsdf = mat.node_tree.nodes["Principled BSDF"]`),
				script.Stmtf(`bsdf.inputs["Base Color"].default_value = %s`, script.Vec4(color)),
				script.Stmt(`bsdf.inputs["Metallic"].default_value = 0.0`),
				script.Stmt(`bsdf.inputs["Roughness"].default_value = 0.0`),
				script.Stmtf(`bsdf.inputs["IOR"].default_value = %s`, script.Float(ior)),
				script.Stmtf(`bsdf.inputs["Transmission"].default_value = %s`, script.Float(transmission)),
				script.Stmt(`bsdf.inputs["Alpha"].default_value = 0.1`),
				script.Stmt(`mat.blend_method = "BLEND"`),
				script.Stmtf(`results.append({"action": "create_glass_material", "material": %s, "ior": %s, "transmission": %s})`,
					script.Str(name), script.Float(ior), script.Float(transmission)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "create_glass_material",
				"material_name": name,
				"properties":    Response{"color": vec4Slice(color), "ior": ior, "transmission": transmission},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_metal_material",
		Description: "Create a metallic material.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"name"},
			Properties: map[string]Property{
				"name":      strProp("Name for the material"),
				"color":     vecProp("RGBA color values", []float64{0.7, 0.7, 0.7, 1.0}),
				"roughness": numProp("Surface roughness", 0.2),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			name := args.Str("name", "")
			color := args.Vec4("color", [4]float64{0.7, 0.7, 0.7, 1.0})
			roughness := args.Float("roughness", 0.2)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("mat = bpy.data.materials.new(name=%s)", script.Str(name)),
				script.Stmt("mat.use_nodes = True"),
				script.Stmt(`bsdf = mat.node_tree.nodes["Principled BSDF"]`),
				script.Stmtf(`bsdf.inputs["Base Color"].default_value = %s`, script.Vec4(color)),
				script.Stmt(`bsdf.inputs["Metallic"].default_value = 1.0`),
				script.Stmtf(`bsdf.inputs["Roughness"].default_value = %s`, script.Float(roughness)),
				script.Stmtf(`results.append({"action": "create_metal_material", "material": %s, "color": %s, "roughness": %s})`,
					script.Str(name), script.Vec4(color), script.Float(roughness)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "create_metal_material",
				"material_name": name,
				"properties":    Response{"color": vec4Slice(color), "roughness": roughness},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_emission_material",
		Description: "Create an emissive/glowing material.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"name"},
			Properties: map[string]Property{
				"name":     strProp("Name for the material"),
				"color":    vecProp("RGBA emission color", []float64{1, 1, 1, 1}),
				"strength": numProp("Emission strength", 5.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			name := args.Str("name", "")
			color := args.Vec4("color", white)
			strength := args.Float("strength", 5.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("mat = bpy.data.materials.new(name=%s)", script.Str(name)),
				script.Stmt("mat.use_nodes = True"),
				script.Stmt(`bsdf = mat.node_tree.nodes["Principled BSDF"]`),
				script.Stmtf(`bsdf.inputs["Base Color"].default_value = %s`, script.Vec4(color)),
				script.Stmtf(`bsdf.inputs["Emission"].default_value = %s`, script.Vec4(color)),
				script.Stmtf(`bsdf.inputs["Emission Strength"].default_value = %s`, script.Float(strength)),
				script.Stmtf(`results.append({"action": "create_emission_material", "material": %s, "color": %s, "strength": %s})`,
					script.Str(name), script.Vec4(color), script.Float(strength)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "create_emission_material",
				"material_name": name,
				"properties":    Response{"color": vec4Slice(color), "strength": strength},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_noise_texture",
		Description: "Add procedural noise texture to an object's material.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
				"scale":       numProp("Noise scale", 5.0),
				"detail":      numProp("Level of detail", 2.0),
				"roughness":   numProp("Noise roughness", 0.5),
				"distortion":  numProp("Distortion amount", 0.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			scale := args.Float("scale", 5.0)
			detail := args.Float("detail", 2.0)
			roughness := args.Float("roughness", 0.5)
			distortion := args.Float("distortion", 0.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmtf("if not obj.data.materials:\n    mat = bpy.data.materials.new(name=%s)\n    mat.use_nodes = True\n    obj.data.materials.append(mat)\nelse:\n    mat = obj.data.materials[0]\n    if not mat.use_nodes:\n        mat.use_nodes = True",
					script.Str(objectName+"_Material")),
				script.Stmt("nodes = mat.node_tree.nodes"),
				script.Stmt("links = mat.node_tree.links"),
				script.Stmt(`bsdf = nodes["Principled BSDF"]`),
				script.Stmt(`noise_tex = nodes.new(type="ShaderNodeTexNoise")`),
				script.Stmtf(`noise_tex.inputs["Scale"].default_value = %s`, script.Float(scale)),
				script.Stmtf(`noise_tex.inputs["Detail"].default_value = %s`, script.Float(detail)),
				script.Stmtf(`noise_tex.inputs["Roughness"].default_value = %s`, script.Float(roughness)),
				script.Stmtf(`noise_tex.inputs["Distortion"].default_value = %s`, script.Float(distortion)),
				script.Stmt(`links.new(noise_tex.outputs["Fac"], bsdf.inputs["Base Color"])`),
				script.Stmtf(`results.append({"action": "add_noise_texture", "object": %s, "scale": %s, "detail": %s})`,
					script.Str(objectName), script.Float(scale), script.Float(detail)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_noise_texture",
				"object_name": objectName,
				"parameters": Response{
					"scale": scale, "detail": detail,
					"roughness": roughness, "distortion": distortion,
				},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "add_uv_mapping",
		Description: "Add UV mapping to an object.",
		Category:    CategoryMaterial,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt(`bpy.ops.mesh.select_all(action="SELECT")`),
				script.Stmt(`bpy.ops.uv.unwrap(method="ANGLE_BASED", margin=0.001)`),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "add_uv_mapping", "object": %s})`, script.Str(objectName)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "add_uv_mapping",
				"object_name": objectName,
			}), nil
		},
	})
}
