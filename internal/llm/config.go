// Package llm provides the chat model configuration and a streaming client.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gemini-2.0-flash-lite-001"

// PersonaPrompt is the system instruction of the site assistant.
const PersonaPrompt = `You are TANK AI, a helpful assistant for the vibeTank portfolio website.
You speak in a friendly, slightly military-themed tone.
Keep responses concise and helpful.
You can help with:
- Questions about the portfolio projects
- General coding questions
- Career advice for developers
- Fun conversations

Always be encouraging and supportive!`

// Config holds the chat model configuration
type Config struct {
	Provider     Provider
	Model        string
	SystemPrompt string
	// Temperature is left to the provider default when zero.
	Temperature float32
}

// DefaultConfig returns the default Gemini chat configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderGemini,
		Model:        DefaultModel,
		SystemPrompt: PersonaPrompt,
	}
}

// WithModel returns a copy of the Config using model. An empty model keeps
// the current one.
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	if model != "" {
		newConfig.Model = model
	}
	return &newConfig
}
