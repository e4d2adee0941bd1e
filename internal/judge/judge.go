// Package judge defines the judge backend boundary: prompt construction,
// the client interface implemented by provider adapters, and the structured
// verdict a judge returns.
package judge

import (
	"context"
	"fmt"
)

// Status classifies a verdict. A backend failure (transport error, timeout)
// and a parse failure (the backend answered but the response could not be
// decoded) are distinct error classes; neither is a negative judgment.
type Status string

const (
	StatusOK             Status = "ok"
	StatusBackendFailure Status = "backend_failure"
	StatusParseFailure   Status = "parse_failure"
)

// Verdict is the structured response from one judge call. Pass and Score
// are only meaningful when Status is StatusOK; Reason carries the failure
// diagnostic otherwise. Score is on a 0-5 scale.
type Verdict struct {
	Provider string   `json:"provider"`
	Status   Status   `json:"status"`
	Pass     bool     `json:"pass"`
	Score    float64  `json:"overall_score"`
	Issues   []string `json:"issues,omitempty"`
	Raw      string   `json:"raw_response,omitempty"`
	Reason   string   `json:"failure_reason,omitempty"`
}

// Usable reports whether the verdict carries a real judgment.
func (v *Verdict) Usable() bool {
	return v.Status == StatusOK
}

// BackendFailure builds a verdict representing a transport-level failure:
// the judge was never heard from.
func BackendFailure(provider string, err error) *Verdict {
	return &Verdict{
		Provider: provider,
		Status:   StatusBackendFailure,
		Reason:   err.Error(),
	}
}

// Client is implemented by every judge backend adapter, including the
// deterministic mock used for offline runs.
//
// Judge returns a transport-level error when the backend could not be
// reached or timed out; such errors are retryable. A response that arrives
// but cannot be decoded is returned as a parse-failure Verdict with a nil
// error, and must never be retried.
type Client interface {
	// Judge sends the prompt to the backend and returns its verdict.
	Judge(ctx context.Context, prompt Prompt) (*Verdict, error)

	// Provider returns the provider identifier (e.g. "openai").
	Provider() string
}

// UnknownProviderError is returned when a judge mode names a provider that
// has no registered client.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown judge provider: %s", e.Provider)
}
