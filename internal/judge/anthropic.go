package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is the default judge model for the Anthropic adapter.
const DefaultAnthropicModel = "claude-sonnet-4-5-20250514"

const anthropicMaxTokens = 1024

// AnthropicClient adapts the Anthropic Messages API to the judge Client
// interface.
type AnthropicClient struct {
	client  anthropic.Client
	model   string
	timeout timeoutConfig
}

// NewAnthropicClient creates a judge client backed by the Anthropic API.
// Without WithAPIKey the SDK falls back to the ANTHROPIC_API_KEY environment
// variable.
func NewAnthropicClient(opts ...Option) *AnthropicClient {
	cfg := defaultClientConfig()
	cfg.model = DefaultAnthropicModel
	for _, opt := range opts {
		opt(cfg)
	}

	var sdkOpts []option.RequestOption
	if cfg.apiKey != "" {
		sdkOpts = append(sdkOpts, option.WithAPIKey(cfg.apiKey))
	}
	if cfg.baseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &AnthropicClient{
		client:  anthropic.NewClient(sdkOpts...),
		model:   cfg.model,
		timeout: timeoutConfig{cfg.timeout},
	}
}

// Provider returns "anthropic".
func (c *AnthropicClient) Provider() string { return "anthropic" }

// Judge sends the prompt and parses the structured verdict.
func (c *AnthropicClient) Judge(ctx context.Context, prompt Prompt) (*Verdict, error) {
	ctx, cancel := c.timeout.apply(ctx)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic judge call failed: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("anthropic judge returned no text content")
	}

	return ParseVerdict(c.Provider(), b.String()), nil
}
