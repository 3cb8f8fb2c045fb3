package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"blendmcp/internal/blender"
	"blendmcp/internal/tools"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubRunner struct {
	result *blender.Result
}

func (s *stubRunner) Execute(ctx context.Context, pyScript string, opts blender.ExecuteOptions) (*blender.Result, error) {
	if s.result != nil {
		return s.result, nil
	}
	return &blender.Result{Success: true, Stdout: "stub"}, nil
}

// serveRequests feeds framed requests through a full server and returns the
// decoded responses in order.
func serveRequests(t *testing.T, requests ...string) []*Message {
	t.Helper()

	registry := tools.NewRegistry()
	tools.RegisterAll(registry)
	deps := &tools.Deps{Runner: &stubRunner{}, Version: "1.0.0"}

	var input strings.Builder
	for _, req := range requests {
		input.WriteString(frame(req))
	}
	var output bytes.Buffer

	transport := NewStdioTransport(strings.NewReader(input.String()), &output)
	srv := NewServer("blendmcp", "1.0.0", registry, deps, transport, zap.NewNop())
	require.NoError(t, srv.Serve(context.Background()))

	reader := NewStdioTransport(&output, &bytes.Buffer{})
	var responses []*Message
	for {
		msg, err := reader.Receive()
		if err != nil {
			break
		}
		responses = append(responses, msg)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	resps := serveRequests(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]any)
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "blendmcp", info["name"])
	assert.Equal(t, "1.0.0", info["version"])
	caps := result["capabilities"].(map[string]any)
	assert.Contains(t, caps, "tools")
}

func TestInitializedNotificationHasNoResponse(t *testing.T) {
	resps := serveRequests(t,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	// Only the ping gets a reply.
	require.Len(t, resps, 1)
	assert.Equal(t, float64(2), resps[0].ID)
}

func TestToolsListStable(t *testing.T) {
	first := serveRequests(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	second := serveRequests(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	a, _ := json.Marshal(first[0].Result)
	b, _ := json.Marshal(second[0].Result)
	assert.Equal(t, string(a), string(b), "tools/list must be byte-stable across calls")

	result := first[0].Result.(map[string]any)
	list := result["tools"].([]any)
	assert.Len(t, list, 45)

	entry := list[0].(map[string]any)
	assert.Contains(t, entry, "name")
	assert.Contains(t, entry, "description")
	schema := entry["inputSchema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema, "properties")
	assert.Contains(t, schema, "required")
}

func TestToolsCall(t *testing.T) {
	resps := serveRequests(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"create_cube","arguments":{"size":3}}}`,
	)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error)

	result := resps[0].Result.(map[string]any)
	assert.Equal(t, false, result["isError"])
	content := result["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["text"].(string)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Cube", payload["object_name"])
	assert.Equal(t, "cube", payload["object_type"])
}

func TestToolsCallUnknownTool(t *testing.T) {
	resps := serveRequests(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"no_such_tool","arguments":{}}}`,
	)
	require.Len(t, resps, 1)
	require.Nil(t, resps[0].Error, "unknown tool is a tool result, not a protocol error")

	result := resps[0].Result.(map[string]any)
	assert.Equal(t, true, result["isError"])
	content := result["content"].([]any)
	text := content[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "tool not found")
}

func TestToolsCallMissingName(t *testing.T) {
	resps := serveRequests(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"arguments":{}}}`,
	)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, CodeInvalidParams, resps[0].Error.Code)
}

func TestUnknownMethod(t *testing.T) {
	resps := serveRequests(t, `{"jsonrpc":"2.0","id":7,"method":"resources/list"}`)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, CodeMethodNotFound, resps[0].Error.Code)
	assert.Equal(t, float64(7), resps[0].ID)
}

func TestParseErrorKeepsServing(t *testing.T) {
	resps := serveRequests(t,
		"{broken",
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	require.Len(t, resps, 2)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, CodeParseError, resps[0].Error.Code)
	assert.Nil(t, resps[1].Error)
	assert.Equal(t, float64(2), resps[1].ID)
}

func TestInvalidVersionRejected(t *testing.T) {
	resps := serveRequests(t, `{"jsonrpc":"1.0","id":1,"method":"ping"}`)
	require.Len(t, resps, 1)
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, CodeInvalidRequest, resps[0].Error.Code)
}
