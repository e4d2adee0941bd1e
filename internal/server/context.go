package server

import (
	"github.com/giantswarm/skill-eval/internal/judge"
	"github.com/giantswarm/skill-eval/internal/runner"
)

// ServerContext holds shared dependencies for MCP tool handlers.
type ServerContext struct {
	Clients   map[string]judge.Client
	Config    runner.Config
	SkillsDir string // external skill directory (optional)
}
