package skill

import "github.com/giantswarm/skill-eval/internal/pattern"

// Spec names a behavioral contract an AI-generated artifact is expected to
// satisfy. The harness treats the skill as opaque beyond its identifier, its
// deterministic pattern rules, and the free-text criteria fragment that is
// interpolated into judge prompts.
type Spec struct {
	Domain      string         `yaml:"domain"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Criteria    string         `yaml:"criteria"` // qualitative review criteria for the judge prompt
	Rules       []pattern.Rule `yaml:"rules"`
}

// ID returns the skill identifier in "domain/name" form.
func (s *Spec) ID() string {
	if s.Domain == "" {
		return s.Name
	}
	return s.Domain + "/" + s.Name
}
