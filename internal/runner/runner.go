// Package runner orchestrates a scenario evaluation: pattern checks,
// optional judge dispatch, and aggregation into a single outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/giantswarm/skill-eval/internal/crossval"
	"github.com/giantswarm/skill-eval/internal/judge"
	"github.com/giantswarm/skill-eval/internal/pattern"
	"github.com/giantswarm/skill-eval/internal/report"
	"github.com/giantswarm/skill-eval/internal/skill"
)

// Config holds evaluation configuration.
type Config struct {
	// ScoreThreshold is the minimum judge score for a pass (default 4.0).
	ScoreThreshold float64

	// CallTimeout bounds each cross-validation provider call. Zero relies
	// on the per-adapter timeouts.
	CallTimeout time.Duration

	// MinProviders is the usable-verdict floor for cross-validation
	// (default 2).
	MinProviders int

	// RetryAttempts is the total number of single-provider call attempts
	// on transport failure (default 2: one call, one retry). Parse
	// failures are never retried.
	RetryAttempts uint

	// RetryDelay is the pause between attempts (default 1s).
	RetryDelay time.Duration
}

// Case is one evaluation: a skill, the scenario the artifact was generated
// for, the artifact itself, and the judge mode.
type Case struct {
	Skill    *skill.Spec
	Scenario string
	Artifact string
	Mode     JudgeMode
}

// Runner executes evaluation cases. Each run is self-contained: the runner
// holds only the provider registry and configuration, never per-run state.
type Runner struct {
	clients map[string]judge.Client
	config  Config
}

// NewRunner creates a Runner over the given provider registry.
func NewRunner(clients map[string]judge.Client, config Config) *Runner {
	if config.ScoreThreshold <= 0 {
		config.ScoreThreshold = report.DefaultScoreThreshold
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 2
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}
	return &Runner{clients: clients, config: config}
}

// Run evaluates one case: pattern check, judge dispatch per the case's
// mode, aggregation. Evaluation failures (backend down, unparseable
// verdict, insufficient providers, failed rules) land in the outcome with
// FinalPass false; Run only returns an error for caller bugs such as an
// unknown provider or a nil skill.
func (r *Runner) Run(ctx context.Context, c Case) (*report.Outcome, error) {
	if c.Skill == nil {
		return nil, fmt.Errorf("no skill specified for evaluation")
	}

	start := time.Now()

	assertions := pattern.Evaluate(c.Artifact, c.Skill.Rules)
	slog.Debug("pattern check complete",
		"skill", c.Skill.ID(),
		"rules", len(assertions),
		"satisfied", pattern.Satisfied(assertions),
	)

	signal, err := r.dispatchJudge(ctx, c)
	if err != nil {
		return nil, err
	}

	outcome := report.Aggregate(c.Skill.ID(), assertions, signal, r.config.ScoreThreshold)
	outcome.Duration = time.Since(start)

	slog.Info("evaluation complete",
		"skill", c.Skill.ID(),
		"final_pass", outcome.FinalPass,
		"duration", outcome.Duration,
	)

	return outcome, nil
}

func (r *Runner) dispatchJudge(ctx context.Context, c Case) (report.JudgeSignal, error) {
	switch c.Mode.Kind {
	case JudgeNone:
		return report.JudgeSignal{}, nil

	case JudgeSingle:
		client, ok := r.clients[c.Mode.Provider]
		if !ok {
			return report.JudgeSignal{}, &judge.UnknownProviderError{Provider: c.Mode.Provider}
		}

		prompt := judge.BuildPrompt(c.Skill, c.Scenario, c.Artifact)
		verdict, err := r.judgeWithRetry(ctx, client, prompt)
		if err != nil {
			slog.Warn("judge backend failed after retries",
				"provider", c.Mode.Provider,
				"error", err,
			)
			verdict = judge.BackendFailure(c.Mode.Provider, err)
		}
		return report.JudgeSignal{Enabled: true, Verdict: verdict}, nil

	case JudgeCross:
		prompt := judge.BuildPrompt(c.Skill, c.Scenario, c.Artifact)
		validator := crossval.NewValidator(r.clients, crossval.Config{
			CallTimeout:  r.config.CallTimeout,
			MinProviders: r.config.MinProviders,
		})

		crossReport, err := validator.Evaluate(ctx, prompt, c.Mode.Providers)
		if err != nil {
			var unknown *judge.UnknownProviderError
			if errors.As(err, &unknown) {
				return report.JudgeSignal{}, err
			}
			// Insufficient providers and similar dispatch failures are
			// evaluation outcomes, not errors.
			return report.JudgeSignal{Enabled: true, Failure: err.Error()}, nil
		}
		return report.JudgeSignal{Enabled: true, CrossValidation: crossReport}, nil

	default:
		return report.JudgeSignal{}, fmt.Errorf("unsupported judge mode: %d", c.Mode.Kind)
	}
}

// judgeWithRetry issues the judge call with a bounded retry on transport
// failure. A parse-failure verdict arrives with a nil error and is returned
// as-is: a malformed response indicates a prompt or backend bug, not
// transient flakiness.
func (r *Runner) judgeWithRetry(ctx context.Context, client judge.Client, prompt judge.Prompt) (*judge.Verdict, error) {
	var verdict *judge.Verdict

	err := retry.Do(
		func() error {
			v, err := client.Judge(ctx, prompt)
			if err != nil {
				return err
			}
			verdict = v
			return nil
		},
		retry.Attempts(r.config.RetryAttempts),
		retry.Delay(r.config.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("retrying judge call", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return verdict, nil
}
