package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// chatStream is what the chat handler writes tokens to once streaming has begun.
type chatStream interface {
	WriteToken(text string) error
	WriteError(message string)
	WriteComplete(tokens int)
}

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteToken sends a token event
func (s *SSEWriter) WriteToken(text string) error {
	return s.WriteEvent("token", map[string]string{"text": text})
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(tokens int) {
	s.WriteEvent("complete", map[string]any{ //nolint:errcheck
		"status": "complete",
		"tokens": tokens,
	})
}

// DataStreamWriter writes the line-oriented AI data stream format: every
// line is "<code>:<json>\n", code 0 for text and 3 for an error.
type DataStreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewDataStreamWriter sets the data stream headers.
func NewDataStreamWriter(w http.ResponseWriter) (*DataStreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Vercel-AI-Data-Stream", "v1")
	w.Header().Set("Cache-Control", "no-cache")

	return &DataStreamWriter{w: w, flusher: flusher}, nil
}

func (d *DataStreamWriter) writePart(code byte, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.w, "%c:%s\n", code, encoded); err != nil {
		return err
	}
	d.flusher.Flush()
	return nil
}

// WriteToken sends a text part
func (d *DataStreamWriter) WriteToken(text string) error {
	return d.writePart('0', text)
}

// WriteError sends an error part
func (d *DataStreamWriter) WriteError(message string) {
	d.writePart('3', message) //nolint:errcheck
}

// WriteComplete is a no-op; the stream ends when the body closes.
func (d *DataStreamWriter) WriteComplete(int) {}
