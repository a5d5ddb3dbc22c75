package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/llm"
	"github.com/vibetank/vibetank/internal/metrics"
	"github.com/vibetank/vibetank/internal/server/middleware"
	"github.com/vibetank/vibetank/internal/types"
)

// handleChat proxies a conversation to the chat model and streams the reply.
// Headers are only committed once the first token arrives, so upstream
// failures before that still get a JSON error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.chatAPIKey == "" {
		s.errorResponse(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	logger := s.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))

	client, err := s.newChatClient(r.Context(), s.chatConfig, s.chatAPIKey)
	if err != nil {
		metrics.ChatStream(err)
		logger.Error("failed to create chat client", zap.Error(err))
		s.chatFailure(w, err)
		return
	}
	defer client.Close() //nolint:errcheck

	useSSE := strings.Contains(r.Header.Get("Accept"), "text/event-stream")
	var (
		stream chatStream
		tokens int
	)
	open := func() error {
		if useSSE {
			sse, err := NewSSEWriter(w)
			if err != nil {
				return err
			}
			stream = sse
			return nil
		}
		ds, err := NewDataStreamWriter(w)
		if err != nil {
			return err
		}
		stream = ds
		return nil
	}

	err = client.StreamChat(r.Context(), req.Messages, func(text string) error {
		if stream == nil {
			if err := open(); err != nil {
				return err
			}
		}
		tokens++
		metrics.ChatToken()
		return stream.WriteToken(text)
	})
	metrics.ChatStream(err)

	if err != nil {
		if stream == nil {
			logger.Error("chat request failed", zap.Error(err))
			if errors.Is(err, llm.ErrNoUserMessage) {
				s.errorResponse(w, http.StatusBadRequest, "Last message must be from the user")
				return
			}
			s.chatFailure(w, err)
			return
		}
		logger.Warn("chat stream interrupted", zap.Int("tokens", tokens), zap.Error(err))
		stream.WriteError(err.Error())
		return
	}

	if stream == nil {
		if err := open(); err != nil {
			s.chatFailure(w, err)
			return
		}
	}
	stream.WriteComplete(tokens)
	logger.Debug("chat stream complete", zap.Int("tokens", tokens), zap.String("model", client.Model()))
}

func (s *Server) chatFailure(w http.ResponseWriter, err error) {
	s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
		"error":   "Failed to process request",
		"details": err.Error(),
	})
}
