package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/skill-eval/internal/pattern"
)

func TestLoadEmbeddedSkill(t *testing.T) {
	spec, err := Load("turbo-morph-refresh", "")
	require.NoError(t, err)

	assert.Equal(t, "rails/turbo-morph-refresh", spec.ID())
	assert.NotEmpty(t, spec.Criteria)
	require.Len(t, spec.Rules, 3)
	assert.Equal(t, pattern.Required, spec.Rules[0].Polarity)
	assert.Equal(t, pattern.Forbidden, spec.Rules[2].Polarity)
	assert.Equal(t, "broadcast_append_to", spec.Rules[2].Pattern)
}

func TestLoadMissingSkill(t *testing.T) {
	_, err := Load("does-not-exist", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadExternalSkillTakesPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "turbo-morph-refresh")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))

	content := `domain: rails
name: turbo-morph-refresh
description: external override
rules:
  - id: only-rule
    pattern: morph
    polarity: required
`
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "skill.yaml"), []byte(content), 0o644))

	spec, err := Load("turbo-morph-refresh", tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "external override", spec.Description)
	assert.Len(t, spec.Rules, 1)
}

func TestLoadRejectsInvalidPolarity(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "bad-skill")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))

	content := `domain: rails
name: bad-skill
rules:
  - id: r1
    pattern: x
    polarity: maybe
`
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "skill.yaml"), []byte(content), 0o644))

	_, err := Load("bad-skill", tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid polarity")
}

func TestList(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "custom-skill"), 0o755))

	names, err := List(tmpDir)
	require.NoError(t, err)

	assert.Contains(t, names, "turbo-morph-refresh")
	assert.Contains(t, names, "strong-parameters")
	assert.Contains(t, names, "custom-skill")
}
