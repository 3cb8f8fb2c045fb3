package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"blendmcp/internal/logging"
	"blendmcp/internal/tools"
)

// Server dispatches MCP requests to the tool registry. One server serves one
// transport; the loop is single-threaded, matching the one-client stdio
// model.
type Server struct {
	name      string
	version   string
	registry  *tools.Registry
	deps      *tools.Deps
	transport Transport
	logger    *zap.Logger
}

// NewServer creates a server over the given transport. The logger must write
// to stderr or a file; stdout belongs to the transport.
func NewServer(name, version string, registry *tools.Registry, deps *tools.Deps, transport Transport, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		name:      name,
		version:   version,
		registry:  registry,
		deps:      deps,
		transport: transport,
		logger:    logger,
	}
}

// Serve runs the message loop until the context is cancelled or the peer
// closes the stream. Malformed or unknown requests get error responses; they
// never terminate the loop.
func (s *Server) Serve(ctx context.Context) error {
	logging.Server("MCP server started: %s %s (%d tools)", s.name, s.version, s.registry.Count())

	type received struct {
		msg *Message
		err error
	}
	incoming := make(chan received)
	go func() {
		defer close(incoming)
		for {
			msg, err := s.transport.Receive()
			select {
			case incoming <- received{msg, err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !isRecoverable(err) {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logging.Server("MCP server stopping: %v", ctx.Err())
			return ctx.Err()
		case in, ok := <-incoming:
			if !ok {
				return nil
			}
			if in.err != nil {
				if errors.Is(in.err, io.EOF) {
					logging.Server("Peer closed the stream")
					return nil
				}
				var rpcErr *Error
				if errors.As(in.err, &rpcErr) {
					// Unparseable frame; report and keep serving.
					if err := s.transport.Send(errorResponse(nil, rpcErr.Code, rpcErr.Message)); err != nil {
						return err
					}
					continue
				}
				return in.err
			}
			if resp := s.handle(ctx, in.msg); resp != nil {
				if err := s.transport.Send(resp); err != nil {
					return err
				}
			}
		}
	}
}

func isRecoverable(err error) bool {
	var rpcErr *Error
	return errors.As(err, &rpcErr)
}

// handle routes one message. Returns nil for notifications.
func (s *Server) handle(ctx context.Context, msg *Message) *Message {
	if msg.JSONRPC != "2.0" {
		return errorResponse(msg.ID, CodeInvalidRequest, "unsupported jsonrpc version")
	}

	s.logger.Debug("handling request", zap.String("method", msg.Method))
	logging.ServerDebug("Request: method=%s", msg.Method)

	switch msg.Method {
	case "initialize":
		return resultResponse(msg.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.name,
				"version": s.version,
			},
		})

	case "notifications/initialized":
		return nil

	case "ping":
		return resultResponse(msg.ID, map[string]any{})

	case "tools/list":
		return resultResponse(msg.ID, map[string]any{
			"tools": s.toolList(),
		})

	case "tools/call":
		return s.handleToolCall(ctx, msg)

	default:
		if msg.IsNotification() {
			return nil
		}
		return errorResponse(msg.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
}

// toolList publishes every registry entry in stable (sorted) order.
func (s *Server) toolList() []map[string]any {
	all := s.registry.All()
	list := make([]map[string]any, 0, len(all))
	for _, tool := range all {
		required := tool.Schema.Required
		if required == nil {
			required = []string{}
		}
		list = append(list, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"inputSchema": map[string]any{
				"type":       "object",
				"properties": tool.Schema.Properties,
				"required":   required,
			},
		})
	}
	return list
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// handleToolCall dispatches tools/call. Tool failures come back as isError
// results, not protocol errors, so the client sees them as tool output.
func (s *Server) handleToolCall(ctx context.Context, msg *Message) *Message {
	var params toolCallParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg.ID, CodeInvalidParams, fmt.Sprintf("invalid tools/call params: %v", err))
	}
	if params.Name == "" {
		return errorResponse(msg.ID, CodeInvalidParams, "tool name is required")
	}

	resp, err := s.executeTool(ctx, params)
	if err != nil {
		s.logger.Warn("tool call failed", zap.String("tool", params.Name), zap.Error(err))
		logging.ToolsWarn("Tool %s failed: %v", params.Name, err)
		return resultResponse(msg.ID, toolResult(fmt.Sprintf("Error: %v", err), true))
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return errorResponse(msg.ID, CodeInternalError, fmt.Sprintf("failed to encode tool response: %v", err))
	}

	isError := false
	if success, ok := resp["success"].(bool); ok && !success {
		isError = true
	}
	return resultResponse(msg.ID, toolResult(string(body), isError))
}

// executeTool runs the tool with panic recovery. A panicking handler must not
// take the serve loop down with it.
func (s *Server) executeTool(ctx context.Context, params toolCallParams) (resp tools.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", zap.String("tool", params.Name), zap.Any("panic", r))
			resp = nil
			err = fmt.Errorf("tool %s panicked: %v", params.Name, r)
		}
	}()
	return s.registry.Execute(ctx, s.deps, params.Name, params.Arguments)
}

func toolResult(text string, isError bool) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"isError": isError,
	}
}
