package judge

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the default judge model for the OpenAI adapter.
const DefaultOpenAIModel = "gpt-4o"

// OpenAIClient adapts an OpenAI-compatible chat completion API to the
// judge Client interface.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout timeoutConfig
}

// NewOpenAIClient creates a judge client backed by an OpenAI-compatible API.
func NewOpenAIClient(opts ...Option) *OpenAIClient {
	cfg := defaultClientConfig()
	cfg.model = DefaultOpenAIModel
	for _, opt := range opts {
		opt(cfg)
	}

	config := openai.DefaultConfig(cfg.apiKey)
	if cfg.baseURL != "" {
		config.BaseURL = cfg.baseURL
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		model:   cfg.model,
		timeout: timeoutConfig{cfg.timeout},
	}
}

// Provider returns "openai".
func (c *OpenAIClient) Provider() string { return "openai" }

// Judge sends the prompt and parses the structured verdict. Transport
// errors (including the per-call timeout) are returned as errors; a
// response that cannot be decoded becomes a parse-failure verdict.
func (c *OpenAIClient) Judge(ctx context.Context, prompt Prompt) (*Verdict, error) {
	ctx, cancel := c.timeout.apply(ctx)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("openai judge call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai judge returned no choices")
	}

	return ParseVerdict(c.Provider(), resp.Choices[0].Message.Content), nil
}
