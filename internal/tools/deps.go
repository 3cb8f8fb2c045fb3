package tools

import (
	"context"

	"blendmcp/internal/blender"
	"blendmcp/internal/script"
)

// Runner abstracts the Blender subprocess so handlers are testable without a
// Blender install. *blender.Executor satisfies it.
type Runner interface {
	Execute(ctx context.Context, pyScript string, opts blender.ExecuteOptions) (*blender.Result, error)
}

// Deps carries everything a tool handler needs. Injected per server instance;
// handlers hold no state of their own.
type Deps struct {
	Runner  Runner
	Version string
}

// run builds a script from the statements and executes it headless.
func (d *Deps) run(ctx context.Context, stmts []script.Statement) (*blender.Result, error) {
	return d.Runner.Execute(ctx, script.Build(stmts), blender.ExecuteOptions{})
}

// blenderResponse assembles the standard tool response shape around a Blender
// result: success flag, raw stdout relay, stderr only on failure, plus the
// tool's own fields.
func blenderResponse(res *blender.Result, fields Response) Response {
	resp := Response{
		"success":        res.Success,
		"blender_output": res.Stdout,
	}
	if !res.Success {
		if res.Error != "" {
			resp["error"] = res.Error
		}
		resp["errors"] = res.Stderr
	}
	for k, v := range fields {
		resp[k] = v
	}
	return resp
}

// vec3Slice converts a fixed-size vector to a slice so it serializes as a
// JSON array in responses.
func vec3Slice(v [3]float64) []float64 {
	return []float64{v[0], v[1], v[2]}
}

func vec4Slice(v [4]float64) []float64 {
	return []float64{v[0], v[1], v[2], v[3]}
}
