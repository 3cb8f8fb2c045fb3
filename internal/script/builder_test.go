package script

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplate(t *testing.T) {
	got := Build([]Statement{
		Stmtf("bpy.ops.mesh.primitive_cube_add(size=%s, location=%s)", Float(2), Vec3([3]float64{0, 0, 0})),
		Stmt(`results.append({"object": bpy.context.active_object.name})`),
	})

	// Template pieces every script carries.
	assert.Contains(t, got, "import bpy")
	assert.Contains(t, got, "import bmesh")
	assert.Contains(t, got, "bpy.ops.object.select_all(action='SELECT')")
	assert.Contains(t, got, "bpy.ops.object.delete(use_global=False, confirm=False)")
	assert.Contains(t, got, "results = []")
	assert.Contains(t, got, `print("BLENDER_MCP_SUCCESS:", json.dumps({"success": True, "results": results}))`)
	assert.Contains(t, got, `print("BLENDER_MCP_ERROR:", json.dumps(error_info))`)
	assert.Contains(t, got, "sys.exit(1)")

	// Statements land at body indent.
	assert.Contains(t, got, "        bpy.ops.mesh.primitive_cube_add(size=2.0, location=(0.0, 0.0, 0.0))")
	assert.Contains(t, got, `        results.append({"object": bpy.context.active_object.name})`)
}

func TestBuildMultiLineStatement(t *testing.T) {
	got := Build([]Statement{
		Stmt("for obj in bpy.data.objects:\n    obj.select_set(True)"),
	})
	assert.Contains(t, got, "        for obj in bpy.data.objects:")
	assert.Contains(t, got, "            obj.select_set(True)")
}

func TestStmtfOnlyAcceptsLiterals(t *testing.T) {
	// A hostile name stays inside its string literal.
	s := Stmtf("obj = bpy.data.objects.get(%s)", Str(`x"); __import__("os").system("rm")`))
	assert.Equal(t,
		Statement(`obj = bpy.data.objects.get("x\"); __import__(\"os\").system(\"rm\")")`), s)
}

func TestParseEnvelopeSuccess(t *testing.T) {
	stdout := strings.Join([]string{
		"Blender 4.5.0 (hash abc)",
		"Read prefs",
		`BLENDER_MCP_SUCCESS: {"success": true, "results": [{"object": "Cube"}]}`,
		"Blender quit",
	}, "\n")

	env, ok := ParseEnvelope(stdout)
	require.True(t, ok)
	want := &Envelope{
		Success: true,
		Results: []interface{}{map[string]interface{}{"object": "Cube"}},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvelopeError(t *testing.T) {
	stdout := `BLENDER_MCP_ERROR: {"success": false, "error": "Object not found", "traceback": "Traceback..."}`
	env, ok := ParseEnvelope(stdout)
	require.True(t, ok)
	assert.False(t, env.Success)
	assert.Equal(t, "Object not found", env.Error)
	assert.Equal(t, "Traceback...", env.Traceback)
}

func TestParseEnvelopeAbsentOrMalformed(t *testing.T) {
	_, ok := ParseEnvelope("Blender crashed before printing anything")
	assert.False(t, ok)

	// A marker with garbage after it is skipped, not an error.
	_, ok = ParseEnvelope("BLENDER_MCP_SUCCESS: not json at all")
	assert.False(t, ok)
}
