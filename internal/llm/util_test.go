package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibetank/vibetank/internal/types"
)

func TestBuildConversation(t *testing.T) {
	messages := []types.ChatMessage{
		{Role: types.RoleSystem, Content: "Answer in Korean."},
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello, soldier"},
		{Role: types.RoleUser, Content: "tell me about REKO"},
	}

	conv, err := buildConversation("persona", messages)
	require.NoError(t, err)

	assert.Equal(t, "persona\n\nAnswer in Korean.", conv.system)
	require.Len(t, conv.history, 2)
	assert.Equal(t, "user", conv.history[0].Role)
	assert.Equal(t, "model", conv.history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("hello, soldier")}, conv.history[1].Parts)
	assert.Equal(t, []genai.Part{genai.Text("tell me about REKO")}, conv.prompt)
}

func TestBuildConversation_SingleTurn(t *testing.T) {
	conv, err := buildConversation("", []types.ChatMessage{{Role: types.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Empty(t, conv.system)
	assert.Empty(t, conv.history)
}

func TestBuildConversation_RequiresTrailingUserTurn(t *testing.T) {
	tests := []struct {
		name     string
		messages []types.ChatMessage
	}{
		{name: "empty", messages: nil},
		{name: "system only", messages: []types.ChatMessage{{Role: types.RoleSystem, Content: "x"}}},
		{name: "ends with assistant", messages: []types.ChatMessage{
			{Role: types.RoleUser, Content: "hi"},
			{Role: types.RoleAssistant, Content: "hello"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConversation("persona", tt.messages)
			assert.ErrorIs(t, err, ErrNoUserMessage)
		})
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Roger"), genai.Text(" that")}},
		}},
	}
	assert.Equal(t, "Roger that", responseText(resp))

	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}
