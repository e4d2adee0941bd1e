// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"time"

	"github.com/giantswarm/skill-eval/internal/judge"
)

// SlowJudgeClient is a judge.Client double that blocks for a configured
// delay before answering, so tests can exercise deadline and abandonment
// behavior. A context cancelled during the delay surfaces as a transport
// error, like a real timed-out backend call.
type SlowJudgeClient struct {
	// Name is the provider identifier.
	Name string

	// Delay is how long Judge blocks before responding.
	Delay time.Duration

	// Verdict is returned after the delay. When nil, a passing 4.0 verdict
	// is returned.
	Verdict *judge.Verdict

	// Calls tracks the number of Judge invocations.
	Calls int
}

func (c *SlowJudgeClient) Provider() string { return c.Name }

func (c *SlowJudgeClient) Judge(ctx context.Context, _ judge.Prompt) (*judge.Verdict, error) {
	c.Calls++

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Verdict != nil {
		return c.Verdict, nil
	}
	return &judge.Verdict{
		Provider: c.Name,
		Status:   judge.StatusOK,
		Pass:     true,
		Score:    4.0,
	}, nil
}

// FlakyJudgeClient fails with Err for the first Failures calls, then
// delegates to the wrapped verdict. Used to exercise bounded transport
// retries.
type FlakyJudgeClient struct {
	Name     string
	Failures int
	Err      error
	Verdict  *judge.Verdict

	Calls int
}

func (c *FlakyJudgeClient) Provider() string { return c.Name }

func (c *FlakyJudgeClient) Judge(_ context.Context, _ judge.Prompt) (*judge.Verdict, error) {
	c.Calls++
	if c.Calls <= c.Failures {
		return nil, c.Err
	}
	if c.Verdict != nil {
		return c.Verdict, nil
	}
	return &judge.Verdict{
		Provider: c.Name,
		Status:   judge.StatusOK,
		Pass:     true,
		Score:    4.0,
	}, nil
}
