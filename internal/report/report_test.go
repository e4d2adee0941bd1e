package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/skill-eval/internal/crossval"
	"github.com/giantswarm/skill-eval/internal/judge"
	"github.com/giantswarm/skill-eval/internal/pattern"
)

func passingAssertion(id string) pattern.Assertion {
	return pattern.Assertion{
		Rule:      pattern.Rule{ID: id, Pattern: "x", Polarity: pattern.Required},
		Matched:   true,
		Satisfied: true,
		Message:   `pattern "x" found`,
	}
}

func failingAssertion(id string) pattern.Assertion {
	return pattern.Assertion{
		Rule:      pattern.Rule{ID: id, Pattern: "x", Polarity: pattern.Required},
		Satisfied: false,
		Message:   `required pattern "x" not found in artifact`,
	}
}

func TestAggregatePatternsOnly(t *testing.T) {
	outcome := Aggregate("rails/demo", []pattern.Assertion{passingAssertion("r1")}, JudgeSignal{}, 0)

	assert.True(t, outcome.FinalPass)
	assert.Empty(t, outcome.FailureReasons)
	assert.NotEmpty(t, outcome.ID)
	assert.Equal(t, "rails/demo", outcome.Skill)
}

func TestAggregateEmptyRuleSetIsVacuousPass(t *testing.T) {
	outcome := Aggregate("rails/demo", nil, JudgeSignal{}, 0)
	assert.True(t, outcome.FinalPass)
}

func TestAggregateFailedRuleFailsOutcome(t *testing.T) {
	outcome := Aggregate("rails/demo",
		[]pattern.Assertion{passingAssertion("r1"), failingAssertion("r2")},
		JudgeSignal{}, 0)

	assert.False(t, outcome.FinalPass)
	require.Len(t, outcome.FailureReasons, 1)
	assert.Contains(t, outcome.FailureReasons[0], `"r2"`)
}

func TestAggregateVerdictAboveThreshold(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: &judge.Verdict{Provider: "mock", Status: judge.StatusOK, Pass: true, Score: 4.5},
	}
	outcome := Aggregate("rails/demo", []pattern.Assertion{passingAssertion("r1")}, signal, 4.0)

	assert.True(t, outcome.FinalPass)
	assert.Empty(t, outcome.FailureReasons)
}

func TestAggregateVerdictBelowThreshold(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: &judge.Verdict{Provider: "mock", Status: judge.StatusOK, Pass: true, Score: 3.5},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	require.Len(t, outcome.FailureReasons, 1)
	assert.Contains(t, outcome.FailureReasons[0], "below threshold")
}

func TestAggregateNegativeVerdict(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: &judge.Verdict{Provider: "mock", Status: judge.StatusOK, Pass: false, Score: 2.0},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	assert.NotEmpty(t, outcome.FailureReasons)
}

func TestAggregateBackendFailureIsNeverAPass(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: judge.BackendFailure("openai", assert.AnError),
	}
	outcome := Aggregate("rails/demo", []pattern.Assertion{passingAssertion("r1")}, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	require.Len(t, outcome.FailureReasons, 1)
	assert.Contains(t, outcome.FailureReasons[0], "backend")
}

func TestAggregateParseFailureIsDistinguished(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: judge.ParseVerdict("openai", "garbage"),
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	require.Len(t, outcome.FailureReasons, 1)
	assert.Contains(t, outcome.FailureReasons[0], "could not be parsed")
}

func TestAggregateDispatchFailure(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Failure: "cross-validation needs 2 usable verdicts, got 1",
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	assert.Contains(t, outcome.FailureReasons, "cross-validation needs 2 usable verdicts, got 1")
}

func TestAggregateCrossValidationAgreementPass(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		CrossValidation: &crossval.Report{
			PerProvider: map[string]*judge.Verdict{
				"judge-a": {Provider: "judge-a", Status: judge.StatusOK, Pass: true, Score: 4.0},
				"judge-b": {Provider: "judge-b", Status: judge.StatusOK, Pass: true, Score: 4.5},
			},
			AverageScore: 4.25,
			Agreement:    true,
			Usable:       2,
		},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.True(t, outcome.FinalPass)
}

func TestAggregateCrossValidationDisagreementFails(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		CrossValidation: &crossval.Report{
			PerProvider: map[string]*judge.Verdict{
				"judge-a": {Provider: "judge-a", Status: judge.StatusOK, Pass: true, Score: 4.0},
				"judge-b": {Provider: "judge-b", Status: judge.StatusOK, Pass: false, Score: 2.0},
			},
			AverageScore: 3.0,
			Agreement:    false,
			Usable:       2,
		},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
	require.NotEmpty(t, outcome.FailureReasons)
	assert.Contains(t, outcome.FailureReasons[0], "disagree")
}

func TestAggregateCrossValidationAgreedFail(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		CrossValidation: &crossval.Report{
			PerProvider: map[string]*judge.Verdict{
				"judge-a": {Provider: "judge-a", Status: judge.StatusOK, Pass: false, Score: 1.0},
				"judge-b": {Provider: "judge-b", Status: judge.StatusOK, Pass: false, Score: 2.0},
			},
			AverageScore: 1.5,
			Agreement:    true,
			Usable:       2,
		},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	assert.False(t, outcome.FinalPass)
}

func TestOutcomeJSON(t *testing.T) {
	outcome := Aggregate("rails/demo", []pattern.Assertion{passingAssertion("r1")}, JudgeSignal{}, 0)

	data, err := outcome.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["final_pass"])
	assert.Equal(t, "rails/demo", decoded["skill"])
	assert.Contains(t, decoded, "assertion_results")
}

func TestRender(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		Verdict: &judge.Verdict{
			Provider: "mock",
			Status:   judge.StatusOK,
			Pass:     false,
			Score:    2.0,
			Issues:   []string{"uses broadcast_append_to"},
		},
	}
	outcome := Aggregate("rails/demo",
		[]pattern.Assertion{passingAssertion("r1"), failingAssertion("r2")},
		signal, 4.0)

	var b strings.Builder
	outcome.Render(&b)
	text := b.String()

	assert.Contains(t, text, "Skill:  rails/demo")
	assert.Contains(t, text, "Result: FAIL")
	assert.Contains(t, text, "[PASS] r1")
	assert.Contains(t, text, "[FAIL] r2")
	assert.Contains(t, text, "score 2.0/5")
	assert.Contains(t, text, "uses broadcast_append_to")
	assert.Contains(t, text, "Failure reasons:")
}

func TestRenderCrossValidation(t *testing.T) {
	signal := JudgeSignal{
		Enabled: true,
		CrossValidation: &crossval.Report{
			PerProvider: map[string]*judge.Verdict{
				"judge-a": {Provider: "judge-a", Status: judge.StatusOK, Pass: true, Score: 4.0},
				"judge-b": judge.BackendFailure("judge-b", assert.AnError),
				"judge-c": {Provider: "judge-c", Status: judge.StatusOK, Pass: true, Score: 5.0},
			},
			AverageScore: 4.5,
			Agreement:    true,
			Usable:       2,
		},
	}
	outcome := Aggregate("rails/demo", nil, signal, 4.0)

	var b strings.Builder
	outcome.Render(&b)
	text := b.String()

	assert.Contains(t, text, "Agreement:     true")
	assert.Contains(t, text, "Average score: 4.50")
	assert.Contains(t, text, "UNAVAILABLE")
}
