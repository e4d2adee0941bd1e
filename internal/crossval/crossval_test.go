package crossval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/skill-eval/internal/judge"
	"github.com/giantswarm/skill-eval/internal/testutil"
)

func TestEvaluateAgreementAndAverage(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0},
		"judge-b": &judge.MockClient{Name: "judge-b", Pass: false, Score: 2.0},
	}
	v := NewValidator(clients, Config{})

	report, err := v.Evaluate(context.Background(), judge.Prompt{User: "p"}, []string{"judge-a", "judge-b"})
	require.NoError(t, err)

	assert.False(t, report.Agreement, "differing pass booleans mean no agreement")
	assert.Equal(t, 3.0, report.AverageScore)
	assert.Equal(t, 2, report.Usable)
	assert.Len(t, report.PerProvider, 2)
}

func TestEvaluateAgreementWhenAllPass(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.5},
		"judge-b": &judge.MockClient{Name: "judge-b", Pass: true, Score: 5.0},
		"judge-c": &judge.MockClient{Name: "judge-c", Pass: true, Score: 4.0},
	}
	v := NewValidator(clients, Config{})

	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b", "judge-c"})
	require.NoError(t, err)

	assert.True(t, report.Agreement)
	assert.Equal(t, 4.5, report.AverageScore)
}

func TestEvaluateAgreementWhenAllFail(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: false, Score: 1.0},
		"judge-b": &judge.MockClient{Name: "judge-b", Pass: false, Score: 2.0},
	}
	v := NewValidator(clients, Config{})

	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b"})
	require.NoError(t, err)

	assert.True(t, report.Agreement, "unanimous fail is still agreement")
	assert.Equal(t, 1.5, report.AverageScore)
}

func TestEvaluateExcludesFailedProviderFromAverage(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0},
		"judge-b": &judge.MockClient{Name: "judge-b", Pass: true, Score: 5.0},
		"judge-c": &judge.MockClient{Name: "judge-c", Err: assert.AnError},
	}
	v := NewValidator(clients, Config{})

	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b", "judge-c"})
	require.NoError(t, err)

	// judge-c is in neither the numerator nor the denominator.
	assert.Equal(t, 4.5, report.AverageScore)
	assert.True(t, report.Agreement)
	assert.Equal(t, 2, report.Usable)

	require.Contains(t, report.PerProvider, "judge-c")
	assert.Equal(t, judge.StatusBackendFailure, report.PerProvider["judge-c"].Status)
}

func TestEvaluateInsufficientProviders(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0},
		"judge-b": &judge.MockClient{Name: "judge-b", Err: assert.AnError},
	}
	v := NewValidator(clients, Config{MinProviders: 2})

	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b"})
	assert.Nil(t, report, "no partial one-provider report")

	var insufficient *InsufficientProvidersError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Usable)
	assert.Equal(t, 2, insufficient.Required)
}

func TestEvaluateParseFailureIsNotAgreementBreaking(t *testing.T) {
	clients := map[string]judge.Client{
		"judge-a": &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0},
		"judge-b": &judge.MockClient{Name: "judge-b", Pass: true, Score: 5.0},
		"judge-c": &judge.MockClient{Name: "judge-c", RawResponse: "garbage"},
	}
	v := NewValidator(clients, Config{})

	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b", "judge-c"})
	require.NoError(t, err)

	assert.True(t, report.Agreement)
	assert.Equal(t, judge.StatusParseFailure, report.PerProvider["judge-c"].Status)
}

func TestEvaluateDeadlineAbandonsPendingCalls(t *testing.T) {
	slow := &testutil.SlowJudgeClient{Name: "judge-slow", Delay: 5 * time.Second}
	clients := map[string]judge.Client{
		"judge-a":    &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0},
		"judge-b":    &judge.MockClient{Name: "judge-b", Pass: true, Score: 5.0},
		"judge-slow": slow,
	}
	v := NewValidator(clients, Config{CallTimeout: 50 * time.Millisecond})

	start := time.Now()
	report, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b", "judge-slow"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "the join barrier must not wait out the full delay")

	// The abandoned call is a failed response, not a disagreement.
	assert.True(t, report.Agreement)
	assert.Equal(t, 2, report.Usable)
	assert.Equal(t, judge.StatusBackendFailure, report.PerProvider["judge-slow"].Status)
}

func TestEvaluateSingleCallPerProvider(t *testing.T) {
	// Cross-validation never retries; a transport failure is simply an
	// excluded provider.
	a := &judge.MockClient{Name: "judge-a", Pass: true, Score: 4.0}
	b := &judge.MockClient{Name: "judge-b", Pass: true, Score: 4.0}
	c := &judge.MockClient{Name: "judge-c", Err: assert.AnError}

	v := NewValidator(map[string]judge.Client{"judge-a": a, "judge-b": b, "judge-c": c}, Config{})
	_, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b", "judge-c"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Calls)
	assert.Equal(t, 1, b.Calls)
	assert.Equal(t, 1, c.Calls)
}

func TestEvaluateUnknownProvider(t *testing.T) {
	v := NewValidator(map[string]judge.Client{}, Config{})

	_, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a", "judge-b"})

	var unknown *judge.UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "judge-a", unknown.Provider)
}

func TestEvaluateRejectsSingleProviderList(t *testing.T) {
	v := NewValidator(map[string]judge.Client{
		"judge-a": judge.NewMockClient(),
	}, Config{})

	_, err := v.Evaluate(context.Background(), judge.Prompt{}, []string{"judge-a"})
	require.Error(t, err)
}
