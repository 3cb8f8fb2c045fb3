// Package script builds the Python scripts blendmcp feeds to Blender. Tool
// handlers express operations as ordered statements; Build wraps them in a
// fixed template that clears the scene, accumulates structured results, and
// prints a single marker-prefixed JSON envelope on stdout.
package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Statement is one line (or an indented block line) of generated Python.
type Statement string

// Stmt returns a fixed statement with no caller-supplied values.
func Stmt(s string) Statement {
	return Statement(s)
}

// Stmtf builds a statement from a format string whose interpolated values are
// restricted to Literals. This is the only interpolation path into scripts.
func Stmtf(format string, args ...Literal) Statement {
	vals := make([]interface{}, len(args))
	for i, a := range args {
		vals[i] = string(a)
	}
	return Statement(fmt.Sprintf(format, vals...))
}

// Stdout markers emitted by the generated wrapper. Exactly one of these
// prefixes appears on exactly one stdout line per successful script run.
const (
	SuccessMarker = "BLENDER_MCP_SUCCESS:"
	ErrorMarker   = "BLENDER_MCP_ERROR:"
)

const header = `import bpy
import bmesh
import json
import sys
import traceback

def main():
    try:
        # Clear existing objects so every run starts from a known scene
        bpy.ops.object.select_all(action='SELECT')
        bpy.ops.object.delete(use_global=False, confirm=False)

        results = []

`

const footer = `
        print("BLENDER_MCP_SUCCESS:", json.dumps({"success": True, "results": results}))

    except Exception as e:
        error_info = {
            "success": False,
            "error": str(e),
            "traceback": traceback.format_exc()
        }
        print("BLENDER_MCP_ERROR:", json.dumps(error_info))
        sys.exit(1)

if __name__ == "__main__":
    main()
`

// Build assembles a complete script from the given statements. Statements are
// spliced verbatim at the template's body indent; multi-line statements keep
// their internal indentation. Pure string construction, no I/O.
func Build(stmts []Statement) string {
	var b strings.Builder
	b.WriteString(header)
	for _, stmt := range stmts {
		for _, line := range strings.Split(string(stmt), "\n") {
			if strings.TrimSpace(line) == "" {
				b.WriteByte('\n')
				continue
			}
			b.WriteString("        ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString(footer)
	return b.String()
}

// Envelope is the JSON payload printed after a marker by the generated
// wrapper: {success, results} on the success path, {success, error,
// traceback} on the exception path.
type Envelope struct {
	Success   bool          `json:"success"`
	Results   []interface{} `json:"results,omitempty"`
	Error     string        `json:"error,omitempty"`
	Traceback string        `json:"traceback,omitempty"`
}

// ParseEnvelope scans captured stdout for a marker line and decodes its JSON
// payload. Returns false when no well-formed marker line is present (Blender
// noise, truncated output, or a script that crashed before printing).
func ParseEnvelope(stdout string) (*Envelope, bool) {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		var payload string
		switch {
		case strings.HasPrefix(line, SuccessMarker):
			payload = strings.TrimSpace(strings.TrimPrefix(line, SuccessMarker))
		case strings.HasPrefix(line, ErrorMarker):
			payload = strings.TrimSpace(strings.TrimPrefix(line, ErrorMarker))
		default:
			continue
		}
		var env Envelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			continue
		}
		return &env, true
	}
	return nil, false
}
