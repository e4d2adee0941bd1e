package judge

import (
	"fmt"
	"strings"

	"github.com/giantswarm/skill-eval/internal/skill"
)

// SystemPrompt is the system message sent with every judge request. It pins
// the response contract the verdict parser decodes.
const SystemPrompt = `You are an expert code reviewer evaluating whether a generated artifact satisfies a named behavioral skill.

You will be given the skill identifier, the scenario the artifact was generated for, review criteria, and the artifact itself.

Score the artifact on a 0-5 scale:
  0-1 = does not implement the skill, or actively violates it
  2-3 = partial implementation with significant issues
  4   = implements the skill with minor issues
  5   = fully implements the skill

You MUST respond with ONLY a JSON object in this exact format, no other text:
{"pass": <true/false>, "overall_score": <0-5>, "issues": ["<issue>", ...]}

Set "pass" to true only if the artifact genuinely satisfies the skill. List concrete issues; use an empty list when there are none.`

// Prompt is a fully composed judge request, derived deterministically from
// a (skill, scenario, artifact) triple.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt composes the evaluation prompt. It is deterministic: the same
// inputs always produce byte-identical output, and the scenario and artifact
// are embedded verbatim.
func BuildPrompt(spec *skill.Spec, scenario, artifact string) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "## Skill\n%s\n\n", spec.ID())
	if spec.Description != "" {
		fmt.Fprintf(&b, "## Skill Description\n%s\n\n", spec.Description)
	}

	fmt.Fprintf(&b, "## Scenario\n%s\n\n", scenario)

	if spec.Criteria != "" {
		fmt.Fprintf(&b, "## Review Criteria\n%s\n\n", spec.Criteria)
	}

	fmt.Fprintf(&b, "## Artifact\n```\n%s\n```\n", artifact)

	return Prompt{
		System: SystemPrompt,
		User:   b.String(),
	}
}
