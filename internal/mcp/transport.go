package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Transport moves messages between the server and its peer.
type Transport interface {
	// Send writes one message.
	Send(msg *Message) error
	// Receive blocks until the next message or io.EOF on a clean shutdown.
	Receive() (*Message, error)
	// Close releases transport resources.
	Close() error
}

// StdioTransport frames messages with Content-Length headers over a
// reader/writer pair, normally stdin/stdout. Writes are serialized with a
// mutex so responses never interleave.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex
}

// NewStdioTransport creates a stdio transport over the given streams.
func NewStdioTransport(reader io.Reader, writer io.Writer) *StdioTransport {
	return &StdioTransport{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Send writes one framed message: Content-Length header, blank line, body.
func (t *StdioTransport) Send(msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	if _, err := t.writer.Write([]byte(header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := t.writer.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Receive reads headers until the blank line, then the body. Returns io.EOF
// unchanged when the peer closes the stream between messages.
func (t *StdioTransport) Receive() (*Message, error) {
	var contentLength int
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if line == "\r\n" || line == "\n" {
			break
		}
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &contentLength); err == nil {
			continue
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing or invalid Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(t.reader, body); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &Error{Code: CodeParseError, Message: fmt.Sprintf("parse error: %v", err)}
	}
	return &msg, nil
}

// Close is a no-op; the process owns stdin/stdout.
func (t *StdioTransport) Close() error {
	return nil
}
