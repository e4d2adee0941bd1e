package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/giantswarm/skill-eval/internal/judge"
)

func statusLabel(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// Render writes a human-readable summary of the outcome: overall result,
// per-rule breakdown, judge scores, and collected issues.
func (o *Outcome) Render(w io.Writer) {
	sep := strings.Repeat("-", 72)

	fmt.Fprintf(w, "%s\n", sep)
	fmt.Fprintf(w, "Skill:  %s\n", o.Skill)
	fmt.Fprintf(w, "Result: %s\n", statusLabel(o.FinalPass))
	fmt.Fprintf(w, "%s\n", sep)

	if len(o.Assertions) == 0 {
		fmt.Fprintf(w, "Pattern rules: none\n")
	} else {
		fmt.Fprintf(w, "Pattern rules:\n")
		for _, a := range o.Assertions {
			fmt.Fprintf(w, "  [%s] %-24s %s\n", statusLabel(a.Satisfied), a.Rule.ID, a.Message)
		}
	}

	if o.Verdict != nil {
		fmt.Fprintln(w)
		renderVerdict(w, o.Verdict)
	}

	if o.CrossValidation != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Cross-validation (%d usable judges):\n", o.CrossValidation.Usable)
		fmt.Fprintf(w, "  Agreement:     %v\n", o.CrossValidation.Agreement)
		fmt.Fprintf(w, "  Average score: %.2f\n", o.CrossValidation.AverageScore)

		providers := make([]string, 0, len(o.CrossValidation.PerProvider))
		for p := range o.CrossValidation.PerProvider {
			providers = append(providers, p)
		}
		sort.Strings(providers)
		for _, p := range providers {
			renderVerdict(w, o.CrossValidation.PerProvider[p])
		}
	}

	if len(o.FailureReasons) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failure reasons:\n")
		for _, reason := range o.FailureReasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}

	fmt.Fprintf(w, "%s\n", sep)
}

func renderVerdict(w io.Writer, v *judge.Verdict) {
	switch v.Status {
	case judge.StatusOK:
		fmt.Fprintf(w, "  Judge %-12s %s  score %.1f/5\n", v.Provider+":", statusLabel(v.Pass), v.Score)
		for _, issue := range v.Issues {
			fmt.Fprintf(w, "    issue: %s\n", issue)
		}
	case judge.StatusBackendFailure:
		fmt.Fprintf(w, "  Judge %-12s UNAVAILABLE  %s\n", v.Provider+":", v.Reason)
	case judge.StatusParseFailure:
		fmt.Fprintf(w, "  Judge %-12s UNPARSEABLE  %s\n", v.Provider+":", v.Reason)
	}
}
