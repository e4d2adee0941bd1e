package judge

import (
	"context"
	"encoding/json"
)

// MockClient is the deterministic offline judge provider. Given the same
// prompt it always returns the same verdict, so CI runs never depend on
// network access. The zero-configured client passes with a 4.5 score.
//
// It is also scriptable for harness tests: canned pass/score/issues, a
// simulated backend error, or a raw response override to exercise the
// verdict parser.
type MockClient struct {
	// Name overrides the provider identifier (default "mock").
	Name string

	// Verdict fields returned on success.
	Pass   bool
	Score  float64
	Issues []string

	// Err, when set, simulates a transport-level backend failure.
	Err error

	// RawResponse, when set, is fed through the verdict parser instead of
	// the canned verdict, to simulate a malformed backend payload.
	RawResponse string

	// Calls counts Judge invocations; LastPrompt stores the most recent
	// prompt for inspection.
	Calls      int
	LastPrompt Prompt
}

// NewMockClient returns a passing mock judge with a 4.5 score.
func NewMockClient() *MockClient {
	return &MockClient{Pass: true, Score: 4.5}
}

// Provider returns the configured provider identifier.
func (m *MockClient) Provider() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}

// Judge returns the canned verdict. The raw response is the JSON the verdict
// would have arrived as, so downstream diagnostics behave as with a real
// backend.
func (m *MockClient) Judge(_ context.Context, prompt Prompt) (*Verdict, error) {
	m.Calls++
	m.LastPrompt = prompt

	if m.Err != nil {
		return nil, m.Err
	}

	if m.RawResponse != "" {
		return ParseVerdict(m.Provider(), m.RawResponse), nil
	}

	issues := m.Issues
	if issues == nil {
		issues = []string{}
	}
	raw, _ := json.Marshal(map[string]any{
		"pass":          m.Pass,
		"overall_score": m.Score,
		"issues":        issues,
	})

	return &Verdict{
		Provider: m.Provider(),
		Status:   StatusOK,
		Pass:     m.Pass,
		Score:    m.Score,
		Issues:   issues,
		Raw:      string(raw),
	}, nil
}
