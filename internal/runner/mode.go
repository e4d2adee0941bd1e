package runner

import "fmt"

// ModeKind enumerates the judge dispatch modes.
type ModeKind int

const (
	// JudgeNone runs deterministic pattern checks only.
	JudgeNone ModeKind = iota
	// JudgeSingle consults one judge provider.
	JudgeSingle
	// JudgeCross consults two or more providers and computes agreement.
	JudgeCross
)

// JudgeMode is a tagged judge-mode value; the runner dispatches on Kind
// with an exhaustive switch.
type JudgeMode struct {
	Kind      ModeKind
	Provider  string   // JudgeSingle
	Providers []string // JudgeCross
}

// NoJudge disables LLM evaluation entirely.
func NoJudge() JudgeMode {
	return JudgeMode{Kind: JudgeNone}
}

// SingleJudge consults the named provider.
func SingleJudge(provider string) JudgeMode {
	return JudgeMode{Kind: JudgeSingle, Provider: provider}
}

// CrossJudge consults the named providers and cross-validates their
// verdicts.
func CrossJudge(providers ...string) JudgeMode {
	return JudgeMode{Kind: JudgeCross, Providers: providers}
}

// ParseJudgeMode maps the CLI judge-mode string onto a JudgeMode.
func ParseJudgeMode(mode, provider string, providers []string) (JudgeMode, error) {
	switch mode {
	case "none", "":
		return NoJudge(), nil
	case "single":
		if provider == "" {
			return JudgeMode{}, fmt.Errorf("judge mode %q requires a provider", mode)
		}
		return SingleJudge(provider), nil
	case "cross":
		if len(providers) < 2 {
			return JudgeMode{}, fmt.Errorf("judge mode %q requires at least 2 providers", mode)
		}
		return CrossJudge(providers...), nil
	default:
		return JudgeMode{}, fmt.Errorf("unsupported judge mode: %s (supported: none, single, cross)", mode)
	}
}
