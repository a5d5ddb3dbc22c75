package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/vibetank/vibetank/internal/types"
)

// ChatClient streams chat completions
type ChatClient interface {
	// StreamChat sends the conversation and calls onChunk for every text
	// chunk in arrival order. An error from onChunk stops the stream.
	StreamChat(ctx context.Context, messages []types.ChatMessage, onChunk func(string) error) error
	// Model returns the model name in use
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a chat client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (ChatClient, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}

// GeminiClient implements ChatClient for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// StreamChat streams the model's reply to the last user message.
func (c *GeminiClient) StreamChat(ctx context.Context, messages []types.ChatMessage, onChunk func(string) error) error {
	conv, err := buildConversation(c.config.SystemPrompt, messages)
	if err != nil {
		return err
	}

	model := c.client.GenerativeModel(c.config.Model)
	if c.config.Temperature > 0 {
		model.SetTemperature(c.config.Temperature)
	}
	if conv.system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(conv.system))
	}

	session := model.StartChat()
	session.History = conv.history

	iter := session.SendMessageStream(ctx, conv.prompt...)
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stream content: %w", err)
		}

		text := responseText(resp)
		if text == "" {
			continue
		}
		if err := onChunk(text); err != nil {
			return err
		}
	}
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
