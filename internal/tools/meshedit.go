package tools

import (
	"context"

	"blendmcp/internal/script"
)

func registerMeshTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "create_mesh_from_vertices",
		Description: "Create a custom mesh from vertices and faces.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"vertices", "faces"},
			Properties: map[string]Property{
				"vertices": {Type: "array", Description: "List of [x, y, z] vertex coordinates", Items: &PropertyItems{Type: "array"}},
				"faces":    {Type: "array", Description: "List of faces, each a list of vertex indices", Items: &PropertyItems{Type: "array"}},
				"name":     strPropDefault("Name for the mesh object", "CustomMesh"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			vertices := args.Vec3List("vertices")
			faces := args.IntLists("faces")
			name := args.Str("name", "CustomMesh")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("mesh = bpy.data.meshes.new(%s)", script.Str(name)),
				script.Stmtf("obj = bpy.data.objects.new(%s, mesh)", script.Str(name)),
				script.Stmt("bpy.context.collection.objects.link(obj)"),
				script.Stmt("bm = bmesh.new()"),
				script.Stmtf("vertices = %s", script.Vec3List(vertices)),
				script.Stmtf("faces = %s", script.IntListList(faces)),
				script.Stmt("for v in vertices:\n    bm.verts.new(v)"),
				script.Stmt("bm.verts.ensure_lookup_table()"),
				script.Stmt("for f in faces:\n    bm.faces.new([bm.verts[i] for i in f])"),
				script.Stmt("bm.to_mesh(mesh)"),
				script.Stmt("bm.free()"),
				script.Stmtf(`results.append({"object": %s, "type": "custom_mesh", "vertices": %s, "faces": %s})`,
					script.Str(name), script.Int(len(vertices)), script.Int(len(faces))),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name":  name,
				"object_type":  "custom_mesh",
				"vertex_count": len(vertices),
				"face_count":   len(faces),
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "extrude_face",
		Description: "Extrude a specific face of an object.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name", "face_index"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to modify"),
				"face_index":  intProp("Index of the face to extrude", 0),
				"distance":    numProp("Distance to extrude", 1.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			faceIndex := args.Int("face_index", 0)
			distance := args.Float("distance", 1.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt("bm = bmesh.from_edit_mesh(obj.data)"),
				script.Stmt("bm.faces.ensure_lookup_table()"),
				script.Stmtf("face = bm.faces[%s]", script.Int(faceIndex)),
				script.Stmt("bmesh.ops.extrude_discrete_faces(bm, faces=[face])"),
				script.Stmtf("bmesh.ops.translate(bm, vec=(0, 0, %s), verts=face.verts)", script.Float(distance)),
				script.Stmt("bmesh.update_edit_mesh(obj.data)"),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "extrude_face", "object": %s, "face_index": %s, "distance": %s})`,
					script.Str(objectName), script.Int(faceIndex), script.Float(distance)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "extrude_face",
				"object_name": objectName,
				"parameters":  Response{"face_index": faceIndex, "distance": distance},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "inset_faces",
		Description: "Inset faces of an object.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to modify"),
				"thickness":   numProp("Inset thickness", 0.1),
				"depth":       numProp("Inset depth", 0.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			thickness := args.Float("thickness", 0.1)
			depth := args.Float("depth", 0.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt(`bpy.ops.mesh.select_all(action="SELECT")`),
				script.Stmtf("bpy.ops.mesh.inset(thickness=%s, depth=%s)", script.Float(thickness), script.Float(depth)),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "inset_faces", "object": %s, "thickness": %s, "depth": %s})`,
					script.Str(objectName), script.Float(thickness), script.Float(depth)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "inset_faces",
				"object_name": objectName,
				"parameters":  Response{"thickness": thickness, "depth": depth},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "bevel_edges",
		Description: "Bevel edges of an object.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to modify"),
				"offset":      numProp("Bevel offset distance", 0.1),
				"segments":    intProp("Number of bevel segments", 1),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			offset := args.Float("offset", 0.1)
			segments := args.Int("segments", 1)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmt(`bpy.ops.mesh.select_all(action="SELECT")`),
				script.Stmtf("bpy.ops.mesh.bevel(offset=%s, segments=%s)", script.Float(offset), script.Int(segments)),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "bevel_edges", "object": %s, "offset": %s, "segments": %s})`,
					script.Str(objectName), script.Float(offset), script.Int(segments)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "bevel_edges",
				"object_name": objectName,
				"parameters":  Response{"offset": offset, "segments": segments},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "loop_cut",
		Description: "Add loop cuts to an object.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to modify"),
				"cuts":        intProp("Number of cuts to add", 1),
				"smoothness":  numProp("Smoothness factor", 0.0),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			cuts := args.Int("cuts", 1)
			smoothness := args.Float("smoothness", 0.0)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("bpy.context.view_layer.objects.active = obj"),
				script.Stmt(`bpy.ops.object.mode_set(mode="EDIT")`),
				script.Stmtf(`bpy.ops.mesh.loopcut_slide(MESH_OT_loopcut={"number_cuts": %s, "smoothness": %s})`,
					script.Int(cuts), script.Float(smoothness)),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmtf(`results.append({"action": "loop_cut", "object": %s, "cuts": %s, "smoothness": %s})`,
					script.Str(objectName), script.Int(cuts), script.Float(smoothness)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "loop_cut",
				"object_name": objectName,
				"parameters":  Response{"cuts": cuts, "smoothness": smoothness},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "scale_object",
		Description: "Scale an object along different axes.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to scale"),
				"scale":       vecProp("Scale factors for [x, y, z] axes", []float64{1, 1, 1}),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			scale := args.Vec3("scale", [3]float64{1, 1, 1})
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmtf("obj.scale = %s", script.Vec3(scale)),
				script.Stmtf(`results.append({"action": "scale_object", "object": %s, "scale": %s})`,
					script.Str(objectName), script.Vec3(scale)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "scale_object",
				"object_name": objectName,
				"parameters":  Response{"scale": vec3Slice(scale)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "rotate_object",
		Description: "Rotate an object.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to rotate"),
				"rotation":    vecProp("Rotation in radians for [x, y, z] axes", []float64{0, 0, 0}),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			rotation := args.Vec3("rotation", origin)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmtf("obj.rotation_euler = %s", script.Vec3(rotation)),
				script.Stmtf(`results.append({"action": "rotate_object", "object": %s, "rotation": %s})`,
					script.Str(objectName), script.Vec3(rotation)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "rotate_object",
				"object_name": objectName,
				"parameters":  Response{"rotation": vec3Slice(rotation)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "move_object",
		Description: "Move an object to a new location.",
		Category:    CategoryMesh,
		Schema: Schema{
			Required: []string{"object_name", "location"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to move"),
				"location":    vecProp("New location as [x, y, z]", nil),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			location := args.Vec3("location", origin)
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmtf("obj.location = %s", script.Vec3(location)),
				script.Stmtf(`results.append({"action": "move_object", "object": %s, "location": %s})`,
					script.Str(objectName), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":      "move_object",
				"object_name": objectName,
				"parameters":  Response{"location": vec3Slice(location)},
			}), nil
		},
	})
}
