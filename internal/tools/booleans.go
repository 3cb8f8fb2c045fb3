package tools

import (
	"context"
	"fmt"
	"strings"

	"blendmcp/internal/script"
)

// booleanOp describes one of the three boolean tools; the generated script is
// identical except for the modifier name and operation.
type booleanOp struct {
	toolName    string
	description string
	modifier    string
	operation   string
	// resultFields builds the operation-specific response fields.
	resultFields func(obj1, obj2, result string) Response
	// scriptResult is the results.append payload template fragment.
	scriptResult string
}

func registerBooleanTools(r *Registry) {
	ops := []booleanOp{
		{
			toolName:    "boolean_union",
			description: "Perform boolean union operation between two objects.",
			modifier:    "BooleanUnion",
			operation:   "UNION",
			resultFields: func(obj1, obj2, result string) Response {
				return Response{
					"action":        "boolean_union",
					"result_object": result,
					"input_objects": []string{obj1, obj2},
				}
			},
			scriptResult: `results.append({"action": "boolean_union", "result_object": %s, "input_objects": [%s, %s]})`,
		},
		{
			toolName:    "boolean_difference",
			description: "Perform boolean difference operation (subtract object2 from object1).",
			modifier:    "BooleanDifference",
			operation:   "DIFFERENCE",
			resultFields: func(obj1, obj2, result string) Response {
				return Response{
					"action":          "boolean_difference",
					"result_object":   result,
					"base_object":     obj1,
					"subtract_object": obj2,
				}
			},
			scriptResult: `results.append({"action": "boolean_difference", "result_object": %s, "base_object": %s, "subtract_object": %s})`,
		},
		{
			toolName:    "boolean_intersection",
			description: "Perform boolean intersection operation between two objects.",
			modifier:    "BooleanIntersect",
			operation:   "INTERSECT",
			resultFields: func(obj1, obj2, result string) Response {
				return Response{
					"action":        "boolean_intersection",
					"result_object": result,
					"input_objects": []string{obj1, obj2},
				}
			},
			scriptResult: `results.append({"action": "boolean_intersection", "result_object": %s, "input_objects": [%s, %s]})`,
		},
	}

	for _, op := range ops {
		op := op
		r.MustRegister(&Tool{
			Name:        op.toolName,
			Description: op.description,
			Category:    CategoryBoolean,
			Schema: Schema{
				Required: []string{"object1_name", "object2_name"},
				Properties: map[string]Property{
					"object1_name": strProp("Name of the first object"),
					"object2_name": strProp("Name of the second object"),
					"result_name":  strPropDefault("Name for the resulting object", "BooleanResult"),
				},
			},
			Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
				obj1 := args.Str("object1_name", "")
				obj2 := args.Str("object2_name", "")
				resultName := args.Str("result_name", "BooleanResult")
				if err := args.Err(); err != nil {
					return nil, err
				}

				res, err := deps.run(ctx, []script.Statement{
					script.Stmtf("obj1 = bpy.data.objects[%s]", script.Str(obj1)),
					script.Stmtf("obj2 = bpy.data.objects[%s]", script.Str(obj2)),
					script.Stmt("bpy.context.view_layer.objects.active = obj1"),
					script.Stmtf(`modifier = obj1.modifiers.new(name=%s, type="BOOLEAN")`, script.Str(op.modifier)),
					script.Stmtf("modifier.operation = %s", script.Str(op.operation)),
					script.Stmt("modifier.object = obj2"),
					script.Stmtf("bpy.ops.object.modifier_apply(modifier=%s)", script.Str(op.modifier)),
					script.Stmtf("obj1.name = %s", script.Str(resultName)),
					script.Stmt("bpy.data.objects.remove(obj2, do_unlink=True)"),
					script.Stmtf(op.scriptResult, script.Str(resultName), script.Str(obj1), script.Str(obj2)),
				})
				if err != nil {
					return nil, err
				}
				return blenderResponse(res, op.resultFields(obj1, obj2, resultName)), nil
			},
		})
	}

	r.MustRegister(&Tool{
		Name:        "duplicate_object",
		Description: "Duplicate an object.",
		Category:    CategoryBoolean,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to duplicate"),
				"new_name":    strProp("Name for the duplicate (defaults to <object>_Copy)"),
				"offset":      vecProp("Offset position for the duplicate", []float64{0, 0, 0}),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectName := args.Str("object_name", "")
			newName := args.Str("new_name", "")
			offset := args.Vec3("offset", origin)
			if err := args.Err(); err != nil {
				return nil, err
			}
			if newName == "" {
				newName = objectName + "_Copy"
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("obj = bpy.data.objects[%s]", script.Str(objectName)),
				script.Stmt("new_obj = obj.copy()"),
				script.Stmt("new_obj.data = obj.data.copy()"),
				script.Stmtf("new_obj.name = %s", script.Str(newName)),
				script.Stmtf("new_obj.location = (obj.location.x + %s, obj.location.y + %s, obj.location.z + %s)",
					script.Float(offset[0]), script.Float(offset[1]), script.Float(offset[2])),
				script.Stmt("bpy.context.collection.objects.link(new_obj)"),
				script.Stmtf(`results.append({"action": "duplicate_object", "original": %s, "duplicate": %s, "offset": %s})`,
					script.Str(objectName), script.Str(newName), script.Vec3(offset)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":           "duplicate_object",
				"original_object":  objectName,
				"duplicate_object": newName,
				"offset":           vec3Slice(offset),
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "join_objects",
		Description: "Join multiple objects into one.",
		Category:    CategoryBoolean,
		Schema: Schema{
			Required: []string{"object_names"},
			Properties: map[string]Property{
				"object_names": {Type: "array", Description: "List of object names to join", Items: &PropertyItems{Type: "string"}},
				"result_name":  strPropDefault("Name for the joined object", "JoinedObject"),
			},
		},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			objectNames := args.StrList("object_names")
			resultName := args.Str("result_name", "JoinedObject")
			if err := args.Err(); err != nil {
				return nil, err
			}
			// Rejected before any subprocess is launched.
			if len(objectNames) < 2 {
				return Response{
					"success": false,
					"error":   "At least 2 objects required for joining",
				}, nil
			}

			lookups := make([]string, len(objectNames))
			for i, name := range objectNames {
				lookups[i] = fmt.Sprintf("bpy.data.objects[%s]", script.Str(name))
			}

			res, err := deps.run(ctx, []script.Statement{
				script.Stmtf("objects_to_join = [%s]", script.Raw(strings.Join(lookups, ", "))),
				script.Stmt(`bpy.ops.object.select_all(action="DESELECT")`),
				script.Stmt("for obj in objects_to_join:\n    obj.select_set(True)"),
				script.Stmt("bpy.context.view_layer.objects.active = objects_to_join[0]"),
				script.Stmt("bpy.ops.object.join()"),
				script.Stmtf("bpy.context.active_object.name = %s", script.Str(resultName)),
				script.Stmtf(`results.append({"action": "join_objects", "input_objects": %s, "result_object": %s})`,
					script.StrList(objectNames), script.Str(resultName)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":        "join_objects",
				"input_objects": objectNames,
				"result_object": resultName,
			}), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "separate_object_by_loose_parts",
		Description: "Separate an object into loose parts.",
		Category:    CategoryBoolean,
		Schema: Schema{
			Required: []string{"object_name"},
			Properties: map[string]Property{
				"object_name": strProp("Name of the object to separate"),
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
				script.Stmt(`bpy.ops.mesh.separate(type="LOOSE")`),
				script.Stmt(`bpy.ops.object.mode_set(mode="OBJECT")`),
				script.Stmt("separated_objects = [obj.name for obj in bpy.context.selected_objects]"),
				script.Stmtf(`results.append({"action": "separate_loose_parts", "original_object": %s, "separated_objects": separated_objects})`,
					script.Str(objectName)),
			})
			if err != nil {
				return nil, err
			}
			return blenderResponse(res, Response{
				"action":          "separate_loose_parts",
				"original_object": objectName,
			}), nil
		},
	})
}
