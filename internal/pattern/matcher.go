// Package pattern implements deterministic presence/absence checks of
// textual patterns against a generated artifact.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Polarity declares whether a rule's pattern must be present in or absent
// from the artifact.
type Polarity string

const (
	// Required means the pattern must appear in the artifact.
	Required Polarity = "required"
	// Forbidden means the pattern must not appear in the artifact.
	Forbidden Polarity = "forbidden"
)

// Rule is a single deterministic check: a pattern, a polarity, and a
// human-readable failure message. Rules are stateless and reusable.
type Rule struct {
	ID       string   `yaml:"id" json:"id"`
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Regex    bool     `yaml:"regex,omitempty" json:"regex,omitempty"` // literal substring match when false
	Polarity Polarity `yaml:"polarity" json:"polarity"`
	Message  string   `yaml:"message,omitempty" json:"message,omitempty"`
}

// Assertion is the outcome of evaluating one Rule against one artifact.
type Assertion struct {
	Rule      Rule   `json:"rule"`
	Matched   bool   `json:"matched"`
	Satisfied bool   `json:"satisfied"`
	Message   string `json:"message,omitempty"`
}

// Evaluate checks every rule against the artifact and returns one assertion
// per rule, in rule order. It is a pure function: no side effects, and a
// malformed regex in a rule fails that rule closed with a diagnostic instead
// of aborting the evaluation. An empty artifact fails every required rule
// and passes every forbidden rule.
func Evaluate(artifact string, rules []Rule) []Assertion {
	assertions := make([]Assertion, 0, len(rules))
	for _, rule := range rules {
		assertions = append(assertions, evaluateRule(artifact, rule))
	}
	return assertions
}

func evaluateRule(artifact string, rule Rule) Assertion {
	matched, err := match(artifact, rule)
	if err != nil {
		return Assertion{
			Rule:      rule,
			Satisfied: false,
			Message:   fmt.Sprintf("invalid pattern in rule %q: %v", rule.ID, err),
		}
	}

	satisfied := matched
	if rule.Polarity == Forbidden {
		satisfied = !matched
	}

	return Assertion{
		Rule:      rule,
		Matched:   matched,
		Satisfied: satisfied,
		Message:   assertionMessage(rule, matched, satisfied),
	}
}

func match(artifact string, rule Rule) (bool, error) {
	if !rule.Regex {
		return strings.Contains(artifact, rule.Pattern), nil
	}
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(artifact), nil
}

func assertionMessage(rule Rule, matched, satisfied bool) string {
	if satisfied {
		if matched {
			return fmt.Sprintf("pattern %q found", rule.Pattern)
		}
		return fmt.Sprintf("pattern %q absent", rule.Pattern)
	}
	if rule.Message != "" {
		return rule.Message
	}
	if rule.Polarity == Forbidden {
		return fmt.Sprintf("forbidden pattern %q found in artifact", rule.Pattern)
	}
	return fmt.Sprintf("required pattern %q not found in artifact", rule.Pattern)
}

// Satisfied reports whether every assertion in the slice is satisfied.
// An empty slice is a vacuous pass.
func Satisfied(assertions []Assertion) bool {
	for _, a := range assertions {
		if !a.Satisfied {
			return false
		}
	}
	return true
}
