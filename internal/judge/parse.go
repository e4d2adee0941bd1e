package judge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// verdictWire is the JSON shape a judge backend must produce. Pointer
// fields distinguish "absent" from zero values so a missing pass or score
// is detected instead of silently defaulted.
type verdictWire struct {
	Pass   *bool    `json:"pass"`
	Score  *float64 `json:"overall_score"`
	Issues []string `json:"issues"`
}

// ParseVerdict decodes a backend response into a Verdict. A response that
// does not decode into the required shape (missing pass, missing or
// out-of-range score, truncated JSON) yields a parse-failure verdict with
// the raw payload attached; scores are never guessed.
func ParseVerdict(provider, raw string) *Verdict {
	wire, err := decodeWire(raw)
	if err != nil {
		return &Verdict{
			Provider: provider,
			Status:   StatusParseFailure,
			Raw:      raw,
			Reason:   err.Error(),
		}
	}

	return &Verdict{
		Provider: provider,
		Status:   StatusOK,
		Pass:     *wire.Pass,
		Score:    *wire.Score,
		Issues:   wire.Issues,
		Raw:      raw,
	}
}

func decodeWire(raw string) (*verdictWire, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var wire verdictWire
	err := json.Unmarshal([]byte(content), &wire)
	if err != nil {
		// The model may have wrapped the JSON in a code fence or prose.
		// Extract the outermost object and try once more.
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object in response")
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &wire); err != nil {
			return nil, fmt.Errorf("malformed verdict JSON: %w", err)
		}
	}

	if wire.Pass == nil {
		return nil, fmt.Errorf(`verdict is missing "pass"`)
	}
	if wire.Score == nil {
		return nil, fmt.Errorf(`verdict is missing "overall_score"`)
	}
	if *wire.Score < 0 || *wire.Score > 5 {
		return nil, fmt.Errorf("overall_score %v outside the 0-5 scale", *wire.Score)
	}

	return &wire, nil
}
