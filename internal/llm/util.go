package llm

import (
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/vibetank/vibetank/internal/types"
)

// ErrNoUserMessage is returned when a conversation does not end with a user turn.
var ErrNoUserMessage = errors.New("conversation must end with a user message")

// conversation is a chat transcript in Gemini's shape.
type conversation struct {
	system  string
	history []*genai.Content
	prompt  []genai.Part
}

// buildConversation maps chat turns onto Gemini contents. System turns are
// appended to the persona instruction, assistant turns become "model"
// turns, and the final user turn becomes the prompt.
func buildConversation(persona string, messages []types.ChatMessage) (*conversation, error) {
	system := []string{}
	if persona != "" {
		system = append(system, persona)
	}

	var turns []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case types.RoleSystem:
			system = append(system, m.Content)
		case types.RoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != "user" {
		return nil, ErrNoUserMessage
	}

	last := turns[len(turns)-1]
	return &conversation{
		system:  strings.Join(system, "\n\n"),
		history: turns[:len(turns)-1],
		prompt:  last.Parts,
	}, nil
}

// responseText concatenates the text parts of the first candidate.
// Returns "" when the chunk carries no text.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
