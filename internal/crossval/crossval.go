// Package crossval consults multiple judge providers for the same prompt
// concurrently and measures their agreement.
package crossval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/giantswarm/skill-eval/internal/judge"
)

// DefaultMinProviders is the minimum number of usable verdicts required to
// compute an agreement.
const DefaultMinProviders = 2

// Config holds cross-validation configuration.
type Config struct {
	// CallTimeout bounds each provider call independently. Zero relies on
	// the per-adapter timeouts alone.
	CallTimeout time.Duration

	// MinProviders is the number of usable (non-failed) verdicts required
	// to produce a report. Values below 2 are raised to 2: agreement over a
	// single judge is meaningless.
	MinProviders int
}

// Report aggregates the verdicts of all consulted providers. Failed
// providers stay listed in PerProvider for diagnostics but are excluded
// from both Agreement and AverageScore.
type Report struct {
	PerProvider  map[string]*judge.Verdict `json:"per_provider"`
	AverageScore float64                   `json:"average_score"`
	Agreement    bool                      `json:"agreement"`
	Usable       int                       `json:"usable_providers"`
}

// InsufficientProvidersError is returned when fewer than the required
// number of providers produced usable verdicts. No partial agreement is
// computed in that case.
type InsufficientProvidersError struct {
	Usable   int
	Required int
}

func (e *InsufficientProvidersError) Error() string {
	return fmt.Sprintf("cross-validation needs %d usable verdicts, got %d", e.Required, e.Usable)
}

// Validator dispatches one judge call per provider and computes agreement.
type Validator struct {
	clients map[string]judge.Client
	config  Config
}

// NewValidator creates a Validator over the given provider registry.
func NewValidator(clients map[string]judge.Client, config Config) *Validator {
	if config.MinProviders < DefaultMinProviders {
		config.MinProviders = DefaultMinProviders
	}
	return &Validator{clients: clients, config: config}
}

// Evaluate sends the prompt to every named provider concurrently and waits
// for all calls to return or time out; there is no early exit, because the
// agreement computation needs every available signal. Transport failures
// and unparseable responses surface as failed verdicts in the report; an
// overall context deadline abandons still-pending calls the same way.
func (v *Validator) Evaluate(ctx context.Context, prompt judge.Prompt, providers []string) (*Report, error) {
	if len(providers) < DefaultMinProviders {
		return nil, fmt.Errorf("cross-validation requires at least %d providers, got %d", DefaultMinProviders, len(providers))
	}

	clients := make([]judge.Client, len(providers))
	for i, p := range providers {
		client, ok := v.clients[p]
		if !ok {
			return nil, &judge.UnknownProviderError{Provider: p}
		}
		clients[i] = client
	}

	// One slot per provider; each goroutine writes only its own index.
	verdicts := make([]*judge.Verdict, len(providers))
	var wg sync.WaitGroup

	for i, client := range clients {
		wg.Add(1)
		go func(i int, c judge.Client) {
			defer wg.Done()

			callCtx := ctx
			if v.config.CallTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, v.config.CallTimeout)
				defer cancel()
			}

			verdict, err := c.Judge(callCtx, prompt)
			if err != nil {
				verdicts[i] = judge.BackendFailure(providers[i], err)
				return
			}
			verdicts[i] = verdict
		}(i, client)
	}

	wg.Wait()

	perProvider := make(map[string]*judge.Verdict, len(providers))
	var usable []*judge.Verdict
	for i, verdict := range verdicts {
		perProvider[providers[i]] = verdict
		if verdict.Usable() {
			usable = append(usable, verdict)
		} else {
			slog.Debug("provider excluded from agreement",
				"provider", providers[i],
				"status", verdict.Status,
				"reason", verdict.Reason,
			)
		}
	}

	slog.Info("cross-validation complete",
		"providers", len(providers),
		"usable", len(usable),
	)

	if len(usable) < v.config.MinProviders {
		return nil, &InsufficientProvidersError{
			Usable:   len(usable),
			Required: v.config.MinProviders,
		}
	}

	return &Report{
		PerProvider:  perProvider,
		AverageScore: averageScore(usable),
		Agreement:    agreement(usable),
		Usable:       len(usable),
	}, nil
}

// agreement is true iff every usable verdict carries the same pass boolean.
func agreement(verdicts []*judge.Verdict) bool {
	for _, v := range verdicts[1:] {
		if v.Pass != verdicts[0].Pass {
			return false
		}
	}
	return true
}

// averageScore is the arithmetic mean over usable verdicts only, rounded to
// two decimals. Providers that failed are part of neither the numerator nor
// the denominator.
func averageScore(verdicts []*judge.Verdict) float64 {
	sum := 0.0
	for _, v := range verdicts {
		sum += v.Score
	}
	return math.Round(sum/float64(len(verdicts))*100) / 100
}
