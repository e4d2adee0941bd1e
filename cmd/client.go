package cmd

import (
	"os"
	"time"

	"github.com/giantswarm/skill-eval/internal/judge"
)

// buildJudgeClients assembles the provider registry for judge dispatch.
// The mock provider is always registered so evaluations work offline.
// OpenAI and Anthropic adapters are added when an API key is available
// via flag or environment.
func buildJudgeClients(endpoint, apiKey string, timeout time.Duration) map[string]judge.Client {
	clients := map[string]judge.Client{
		"mock": judge.NewMockClient(),
	}

	var openaiOpts []judge.Option
	if endpoint != "" {
		openaiOpts = append(openaiOpts, judge.WithBaseURL(endpoint))
	}
	if timeout > 0 {
		openaiOpts = append(openaiOpts, judge.WithTimeout(timeout))
	}
	openaiKey := apiKey
	if openaiKey == "" {
		openaiKey = os.Getenv("OPENAI_API_KEY")
	}
	if openaiKey != "" {
		clients["openai"] = judge.NewOpenAIClient(append(openaiOpts, judge.WithAPIKey(openaiKey))...)
	}

	if anthropicKey := os.Getenv("ANTHROPIC_API_KEY"); anthropicKey != "" {
		var anthropicOpts []judge.Option
		if timeout > 0 {
			anthropicOpts = append(anthropicOpts, judge.WithTimeout(timeout))
		}
		clients["anthropic"] = judge.NewAnthropicClient(append(anthropicOpts, judge.WithAPIKey(anthropicKey))...)
	}

	return clients
}
