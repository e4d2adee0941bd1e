// Package report merges pattern assertions and judge signals into a single
// evaluation outcome and renders it for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/skill-eval/internal/crossval"
	"github.com/giantswarm/skill-eval/internal/judge"
	"github.com/giantswarm/skill-eval/internal/pattern"
)

// DefaultScoreThreshold is the minimum judge score (0-5 scale) a passing
// artifact must reach.
const DefaultScoreThreshold = 4.0

// JudgeSignal carries whatever the judge dispatch produced: nothing (judge
// mode none), a single verdict, a cross-validation report, or a dispatch
// failure such as insufficient providers.
type JudgeSignal struct {
	Enabled         bool
	Verdict         *judge.Verdict
	CrossValidation *crossval.Report
	Failure         string
}

// Outcome is the top-level result of one evaluation run.
type Outcome struct {
	ID              string              `json:"id"`
	Skill           string              `json:"skill"`
	Assertions      []pattern.Assertion `json:"assertion_results"`
	Verdict         *judge.Verdict      `json:"judge_verdict,omitempty"`
	CrossValidation *crossval.Report    `json:"cross_validation,omitempty"`
	FinalPass       bool                `json:"final_pass"`
	FailureReasons  []string            `json:"failure_reasons,omitempty"`
	Timestamp       time.Time           `json:"timestamp"`
	Duration        time.Duration       `json:"duration"`
}

// Aggregate combines assertion results and the judge signal into an
// Outcome. FinalPass is the conjunction of all enabled signals: every
// pattern rule satisfied and, when a judge ran, a passing verdict at or
// above the score threshold. Every failure class contributes a
// human-readable reason instead of an error.
func Aggregate(skillID string, assertions []pattern.Assertion, signal JudgeSignal, threshold float64) *Outcome {
	if threshold <= 0 {
		threshold = DefaultScoreThreshold
	}

	outcome := &Outcome{
		ID:              uuid.NewString(),
		Skill:           skillID,
		Assertions:      assertions,
		Verdict:         signal.Verdict,
		CrossValidation: signal.CrossValidation,
		Timestamp:       time.Now(),
	}

	patternsOK := true
	for _, a := range assertions {
		if !a.Satisfied {
			patternsOK = false
			outcome.FailureReasons = append(outcome.FailureReasons,
				fmt.Sprintf("rule %q not satisfied: %s", a.Rule.ID, a.Message))
		}
	}

	judgeOK := true
	if signal.Enabled {
		judgeOK = evaluateJudgeSignal(outcome, signal, threshold)
	}

	outcome.FinalPass = patternsOK && judgeOK
	return outcome
}

func evaluateJudgeSignal(outcome *Outcome, signal JudgeSignal, threshold float64) bool {
	if signal.Failure != "" {
		outcome.FailureReasons = append(outcome.FailureReasons, signal.Failure)
		return false
	}

	if signal.Verdict != nil {
		return evaluateVerdict(outcome, signal.Verdict, threshold)
	}

	if signal.CrossValidation != nil {
		return evaluateCrossValidation(outcome, signal.CrossValidation, threshold)
	}

	outcome.FailureReasons = append(outcome.FailureReasons, "judge evaluation enabled but produced no signal")
	return false
}

func evaluateVerdict(outcome *Outcome, v *judge.Verdict, threshold float64) bool {
	switch v.Status {
	case judge.StatusBackendFailure:
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judge backend %q failed: %s", v.Provider, v.Reason))
		return false
	case judge.StatusParseFailure:
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judge %q response could not be parsed: %s", v.Provider, v.Reason))
		return false
	}

	ok := true
	if !v.Pass {
		ok = false
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judge %q failed the artifact (score %.1f)", v.Provider, v.Score))
	}
	if v.Score < threshold {
		ok = false
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judge score %.1f below threshold %.1f", v.Score, threshold))
	}
	return ok
}

func evaluateCrossValidation(outcome *Outcome, r *crossval.Report, threshold float64) bool {
	if !r.Agreement {
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judges disagree (average score %.1f)", r.AverageScore))
		return false
	}

	// Agreement holds, so every usable verdict carries the same pass flag.
	agreedPass := false
	for _, v := range r.PerProvider {
		if v.Usable() {
			agreedPass = v.Pass
			break
		}
	}

	ok := true
	if !agreedPass {
		ok = false
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("judges agree the artifact fails (average score %.1f)", r.AverageScore))
	}
	if r.AverageScore < threshold {
		ok = false
		outcome.FailureReasons = append(outcome.FailureReasons,
			fmt.Sprintf("average judge score %.1f below threshold %.1f", r.AverageScore, threshold))
	}
	return ok
}

// JSON returns the machine-readable form of the outcome.
func (o *Outcome) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcome: %w", err)
	}
	return data, nil
}
