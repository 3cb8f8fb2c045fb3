package tools

import (
	"context"

	"blendmcp/internal/script"
)

var origin = [3]float64{0, 0, 0}

func registerPrimitiveTools(r *Registry) {
	r.MustRegister(&Tool{
		Name:        "create_cube",
		Description: "Create a cube in the Blender scene.",
		Category:    CategoryPrimitive,
		Schema: Schema{Properties: map[string]Property{
			"size":     numProp("Size of the cube", 2.0),
			"location": vecProp("Location as [x, y, z]", []float64{0, 0, 0}),
			"name":     strPropDefault("Name for the cube object", "Cube"),
		}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			size := args.Float("size", 2.0)
			location := args.Vec3("location", origin)
			name := args.Str("name", "Cube")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.mesh.primitive_cube_add(size=%s, location=%s)",
					script.Float(size), script.Vec3(location)),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(name)),
				script.Stmtf(`results.append({"object": %s, "type": "cube", "size": %s, "location": %s})`,
					script.Str(name), script.Float(size), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name": name,
				"object_type": "cube",
				"parameters":  Response{"size": size, "location": vec3Slice(location)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_sphere",
		Description: "Create a UV sphere in the Blender scene.",
		Category:    CategoryPrimitive,
		Schema: Schema{Properties: map[string]Property{
			"radius":   numProp("Radius of the sphere", 1.0),
			"location": vecProp("Location as [x, y, z]", []float64{0, 0, 0}),
			"name":     strPropDefault("Name for the sphere object", "Sphere"),
		}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			radius := args.Float("radius", 1.0)
			location := args.Vec3("location", origin)
			name := args.Str("name", "Sphere")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.mesh.primitive_uv_sphere_add(radius=%s, location=%s)",
					script.Float(radius), script.Vec3(location)),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(name)),
				script.Stmtf(`results.append({"object": %s, "type": "sphere", "radius": %s, "location": %s})`,
					script.Str(name), script.Float(radius), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name": name,
				"object_type": "sphere",
				"parameters":  Response{"radius": radius, "location": vec3Slice(location)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_cylinder",
		Description: "Create a cylinder in the Blender scene.",
		Category:    CategoryPrimitive,
		Schema: Schema{Properties: map[string]Property{
			"radius":   numProp("Radius of the cylinder", 1.0),
			"depth":    numProp("Height/depth of the cylinder", 2.0),
			"location": vecProp("Location as [x, y, z]", []float64{0, 0, 0}),
			"name":     strPropDefault("Name for the cylinder object", "Cylinder"),
		}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			radius := args.Float("radius", 1.0)
			depth := args.Float("depth", 2.0)
			location := args.Vec3("location", origin)
			name := args.Str("name", "Cylinder")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.mesh.primitive_cylinder_add(radius=%s, depth=%s, location=%s)",
					script.Float(radius), script.Float(depth), script.Vec3(location)),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(name)),
				script.Stmtf(`results.append({"object": %s, "type": "cylinder", "radius": %s, "depth": %s, "location": %s})`,
					script.Str(name), script.Float(radius), script.Float(depth), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name": name,
				"object_type": "cylinder",
				"parameters":  Response{"radius": radius, "depth": depth, "location": vec3Slice(location)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_plane",
		Description: "Create a plane in the Blender scene.",
		Category:    CategoryPrimitive,
		Schema: Schema{Properties: map[string]Property{
			"size":     numProp("Size of the plane", 2.0),
			"location": vecProp("Location as [x, y, z]", []float64{0, 0, 0}),
			"name":     strPropDefault("Name for the plane object", "Plane"),
		}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			size := args.Float("size", 2.0)
			location := args.Vec3("location", origin)
			name := args.Str("name", "Plane")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.mesh.primitive_plane_add(size=%s, location=%s)",
					script.Float(size), script.Vec3(location)),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(name)),
				script.Stmtf(`results.append({"object": %s, "type": "plane", "size": %s, "location": %s})`,
					script.Str(name), script.Float(size), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name": name,
				"object_type": "plane",
				"parameters":  Response{"size": size, "location": vec3Slice(location)},
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "create_cone",
		Description: "Create a cone in the Blender scene.",
		Category:    CategoryPrimitive,
		Schema: Schema{Properties: map[string]Property{
			"radius1":  numProp("Bottom radius of the cone", 1.0),
			"radius2":  numProp("Top radius of the cone (0.0 for pointed cone)", 0.0),
			"depth":    numProp("Height of the cone", 2.0),
			"location": vecProp("Location as [x, y, z]", []float64{0, 0, 0}),
			"name":     strPropDefault("Name for the cone object", "Cone"),
		}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			radius1 := args.Float("radius1", 1.0)
			radius2 := args.Float("radius2", 0.0)
			depth := args.Float("depth", 2.0)
			location := args.Vec3("location", origin)
			name := args.Str("name", "Cone")
			if err := args.Err(); err != nil {
				return nil, err
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("bpy.ops.mesh.primitive_cone_add(radius1=%s, radius2=%s, depth=%s, location=%s)",
					script.Float(radius1), script.Float(radius2), script.Float(depth), script.Vec3(location)),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(name)),
				script.Stmtf(`results.append({"object": %s, "type": "cone", "radius1": %s, "radius2": %s, "depth": %s, "location": %s})`,
					script.Str(name), script.Float(radius1), script.Float(radius2), script.Float(depth), script.Vec3(location)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"object_name": name,
				"object_type": "cone",
				"parameters": Response{
					"radius1": radius1, "radius2": radius2,
					"depth": depth, "location": vec3Slice(location),
				},
			}), nil
		},
	})
}
