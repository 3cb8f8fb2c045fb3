package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTool(name string, category Category) *Tool {
	return &Tool{
		Name:        name,
		Description: "test tool",
		Category:    category,
		Schema:      Schema{Properties: map[string]Property{}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			return Response{"success": true}, nil
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(noopTool("alpha", CategoryScene)))
	require.NoError(t, r.Register(noopTool("beta", CategoryScene)))

	assert.True(t, r.Has("alpha"))
	assert.False(t, r.Has("gamma"))
	assert.NotNil(t, r.Get("beta"))
	assert.Nil(t, r.Get("gamma"))
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"alpha", "beta"}, r.Names())
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(noopTool("alpha", CategoryScene)))

	err := r.Register(noopTool("alpha", CategoryScene))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolAlreadyRegistered)
}

func TestRegisterInvalid(t *testing.T) {
	r := NewRegistry()

	err := r.Register(&Tool{Name: "", Run: nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolNameEmpty)

	err = r.Register(&Tool{Name: "no-run"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolRunNil)
}

func TestByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(noopTool("b", CategoryMesh)))
	require.NoError(t, r.Register(noopTool("a", CategoryMesh)))
	require.NoError(t, r.Register(noopTool("c", CategoryScene)))

	mesh := r.ByCategory(CategoryMesh)
	require.Len(t, mesh, 2)
	assert.Equal(t, "a", mesh[0].Name)
	assert.Equal(t, "b", mesh[1].Name)
}

func TestExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), &Deps{}, "missing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestExecuteMissingRequiredArg(t *testing.T) {
	r := NewRegistry()
	tool := noopTool("needs-arg", CategoryScene)
	tool.Schema.Required = []string{"object_name"}
	require.NoError(t, r.Register(tool))

	_, err := r.Execute(context.Background(), &Deps{}, "needs-arg", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredArg)
}

func TestExecuteDispatches(t *testing.T) {
	r := NewRegistry()
	called := false
	require.NoError(t, r.Register(&Tool{
		Name:     "probe",
		Category: CategoryInfo,
		Schema:   Schema{Properties: map[string]Property{}},
		Run: func(ctx context.Context, deps *Deps, args *Args) (Response, error) {
			called = true
			return Response{"success": true}, nil
		},
	}))

	resp, err := r.Execute(context.Background(), &Deps{}, "probe", map[string]any{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, true, resp["success"])
}
