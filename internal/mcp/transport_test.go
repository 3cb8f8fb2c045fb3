package mcp

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestStdioTransportRoundTrip(t *testing.T) {
	var wire bytes.Buffer

	sender := NewStdioTransport(strings.NewReader(""), &wire)
	require.NoError(t, sender.Send(&Message{JSONRPC: "2.0", ID: float64(1), Method: "ping"}))

	receiver := NewStdioTransport(&wire, io.Discard)
	msg, err := receiver.Receive()
	require.NoError(t, err)
	assert.Equal(t, "2.0", msg.JSONRPC)
	assert.Equal(t, float64(1), msg.ID)
	assert.Equal(t, "ping", msg.Method)
}

func TestStdioTransportMultipleMessages(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"a"}`) +
		frame(`{"jsonrpc":"2.0","id":2,"method":"b"}`)

	tr := NewStdioTransport(strings.NewReader(input), io.Discard)

	first, err := tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Method)

	second, err := tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Method)

	_, err = tr.Receive()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStdioTransportIgnoresExtraHeaders(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"ping"}`
	input := fmt.Sprintf("Content-Type: application/json\r\nContent-Length: %d\r\n\r\n%s", len(body), body)

	tr := NewStdioTransport(strings.NewReader(input), io.Discard)
	msg, err := tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, "ping", msg.Method)
}

func TestStdioTransportParseError(t *testing.T) {
	tr := NewStdioTransport(strings.NewReader(frame("{not json")), io.Discard)

	_, err := tr.Receive()
	require.Error(t, err)
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeParseError, rpcErr.Code)
}

func TestStdioTransportMissingContentLength(t *testing.T) {
	tr := NewStdioTransport(strings.NewReader("X-Other: 1\r\n\r\n{}"), io.Discard)
	_, err := tr.Receive()
	require.Error(t, err)
}

func TestStdioTransportCleanEOF(t *testing.T) {
	tr := NewStdioTransport(strings.NewReader(""), io.Discard)
	_, err := tr.Receive()
	assert.ErrorIs(t, err, io.EOF)
}
