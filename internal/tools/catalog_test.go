package tools

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blendmcp/internal/blender"
	"blendmcp/internal/script"
)

// mockRunner records the script it was given and returns a canned result.
type mockRunner struct {
	calls      int
	lastScript string
	result     *blender.Result
	err        error
}

func (m *mockRunner) Execute(ctx context.Context, pyScript string, opts blender.ExecuteOptions) (*blender.Result, error) {
	m.calls++
	m.lastScript = pyScript
	if m.result != nil {
		return m.result, m.err
	}
	return &blender.Result{Success: true, Stdout: "mock output"}, m.err
}

func newCatalog(t *testing.T) (*Registry, *Deps, *mockRunner) {
	t.Helper()
	r := NewRegistry()
	RegisterAll(r)
	runner := &mockRunner{}
	return r, &Deps{Runner: runner, Version: "1.0.0"}, runner
}

func TestCatalogComplete(t *testing.T) {
	r, _, _ := newCatalog(t)

	// Every tool the server publishes, by category.
	assert.Len(t, r.ByCategory(CategoryInfo), 2)
	assert.Len(t, r.ByCategory(CategoryPrimitive), 5)
	assert.Len(t, r.ByCategory(CategoryMesh), 8)
	assert.Len(t, r.ByCategory(CategoryBoolean), 6)
	assert.Len(t, r.ByCategory(CategorySurface), 6)
	assert.Len(t, r.ByCategory(CategoryMaterial), 7)
	assert.Len(t, r.ByCategory(CategoryModifier), 8)
	assert.Len(t, r.ByCategory(CategoryScene), 3)
	assert.Equal(t, 45, r.Count())
}

func TestCreateCubeDefaults(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "create_cube", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, 1, runner.calls)

	want := Response{
		"success":        true,
		"blender_output": "mock output",
		"object_name":    "Cube",
		"object_type":    "cube",
		"parameters":     Response{"size": 2.0, "location": []float64{0, 0, 0}},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}

	assert.Contains(t, runner.lastScript, "bpy.ops.mesh.primitive_cube_add(size=2.0, location=(0.0, 0.0, 0.0))")
	assert.Contains(t, runner.lastScript, `bpy.context.active_object.name = "Cube"`)
}

func TestCreateCubeEscapesName(t *testing.T) {
	r, deps, runner := newCatalog(t)

	_, err := r.Execute(context.Background(), deps, "create_cube", map[string]any{
		"name": `evil"); import os #`,
	})
	require.NoError(t, err)
	assert.Contains(t, runner.lastScript, `bpy.context.active_object.name = "evil\"); import os #"`)
}

func TestCreateCubeFailureRelaysStderr(t *testing.T) {
	r, deps, runner := newCatalog(t)
	runner.result = &blender.Result{
		Success:    false,
		Stdout:     "partial output",
		Stderr:     "Traceback: KeyError",
		ReturnCode: 1,
	}

	resp, err := r.Execute(context.Background(), deps, "create_cube", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "partial output", resp["blender_output"])
	assert.Equal(t, "Traceback: KeyError", resp["errors"])
}

func TestCreateCubeInvalidArg(t *testing.T) {
	r, deps, runner := newCatalog(t)

	_, err := r.Execute(context.Background(), deps, "create_cube", map[string]any{
		"size": "huge",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgType)
	assert.Zero(t, runner.calls, "no subprocess on invalid arguments")
}

func TestGetServerInfoIdempotent(t *testing.T) {
	r, deps, runner := newCatalog(t)

	first, err := r.Execute(context.Background(), deps, "get_server_info", nil)
	require.NoError(t, err)
	second, err := r.Execute(context.Background(), deps, "get_server_info", nil)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("responses differ between calls:\n%s", diff)
	}
	assert.Equal(t, ServerName, first["name"])
	assert.Zero(t, runner.calls, "info tools never launch Blender")
}

func TestListAvailableToolsMatchesRegistry(t *testing.T) {
	r, deps, _ := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "list_available_tools", nil)
	require.NoError(t, err)
	assert.Equal(t, r.Names(), resp["tools"])
}

func TestJoinObjectsRequiresTwo(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "join_objects", map[string]any{
		"object_names": []any{"OnlyOne"},
	})
	require.NoError(t, err)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "At least 2 objects")
	assert.Zero(t, runner.calls)
}

func TestJoinObjects(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "join_objects", map[string]any{
		"object_names": []any{"Cube", "Sphere"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, []string{"Cube", "Sphere"}, resp["input_objects"])
	assert.Contains(t, runner.lastScript, `objects_to_join = [bpy.data.objects["Cube"], bpy.data.objects["Sphere"]]`)
}

func TestRemeshModeAllowList(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "remesh_object", map[string]any{
		"object_name": "Cube",
		"mode":        "JAGGED",
	})
	require.NoError(t, err)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Invalid remesh mode")
	assert.Zero(t, runner.calls)
}

func TestDecimateTypeAllowList(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "decimate_object", map[string]any{
		"object_name":   "Cube",
		"decimate_type": "SHRED",
	})
	require.NoError(t, err)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Invalid decimate type")
	assert.Zero(t, runner.calls)
}

func TestExportModelFormatAllowList(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "export_model", map[string]any{
		"filepath": "/tmp/model",
		"format":   "gltf",
	})
	require.NoError(t, err)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Unsupported format")
	assert.Zero(t, runner.calls)
}

func TestExportModelAppendsExtension(t *testing.T) {
	r, deps, runner := newCatalog(t)
	dir := t.TempDir()

	resp, err := r.Execute(context.Background(), deps, "export_model", map[string]any{
		"filepath": dir + "/out/model",
		"format":   "stl",
	})
	require.NoError(t, err)
	assert.Equal(t, dir+"/out/model.stl", resp["filepath"])
	assert.Contains(t, runner.lastScript, "bpy.ops.export_mesh.stl(filepath=")
	assert.DirExists(t, dir+"/out")
}

func TestSaveBlendFileAppendsExtension(t *testing.T) {
	r, deps, _ := newCatalog(t)
	dir := t.TempDir()

	resp, err := r.Execute(context.Background(), deps, "save_blend_file", map[string]any{
		"filepath": dir + "/scenes/my_scene",
	})
	require.NoError(t, err)
	assert.Equal(t, dir+"/scenes/my_scene.blend", resp["filepath"])
	assert.DirExists(t, dir+"/scenes")
}

func TestDuplicateObjectDefaultName(t *testing.T) {
	r, deps, _ := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "duplicate_object", map[string]any{
		"object_name": "Cube",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cube_Copy", resp["duplicate_object"])
}

func TestBooleanDifferenceScript(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "boolean_difference", map[string]any{
		"object1_name": "Base",
		"object2_name": "Cutter",
	})
	require.NoError(t, err)
	assert.Equal(t, "BooleanResult", resp["result_object"])
	assert.Equal(t, "Base", resp["base_object"])
	assert.Equal(t, "Cutter", resp["subtract_object"])
	assert.Contains(t, runner.lastScript, `modifier.operation = "DIFFERENCE"`)
	assert.Contains(t, runner.lastScript, "bpy.data.objects.remove(obj2, do_unlink=True)")
}

func TestCreateMeshFromVertices(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "create_mesh_from_vertices", map[string]any{
		"vertices": []any{
			[]any{0.0, 0.0, 0.0},
			[]any{1.0, 0.0, 0.0},
			[]any{0.0, 1.0, 0.0},
		},
		"faces": []any{[]any{0.0, 1.0, 2.0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp["vertex_count"])
	assert.Equal(t, 1, resp["face_count"])
	assert.Contains(t, runner.lastScript, "vertices = [(0.0, 0.0, 0.0), (1.0, 0.0, 0.0), (0.0, 1.0, 0.0)]")
	assert.Contains(t, runner.lastScript, "faces = [[0, 1, 2]]")
}

func TestSubdivideRenderLevelsDefaultToLevels(t *testing.T) {
	r, deps, runner := newCatalog(t)

	resp, err := r.Execute(context.Background(), deps, "subdivide_surface", map[string]any{
		"object_name": "Cube",
		"levels":      float64(3),
	})
	require.NoError(t, err)
	params := resp["parameters"].(Response)
	assert.Equal(t, 3, params["levels"])
	assert.Equal(t, 3, params["render_levels"])
	assert.Contains(t, runner.lastScript, "modifier.render_levels = 3")
}

func TestScriptsUseTemplate(t *testing.T) {
	r, deps, runner := newCatalog(t)

	_, err := r.Execute(context.Background(), deps, "clear_scene", nil)
	require.NoError(t, err)
	assert.Contains(t, runner.lastScript, "import bpy")
	assert.Contains(t, runner.lastScript, script.SuccessMarker)
	assert.Contains(t, runner.lastScript, script.ErrorMarker)
}
