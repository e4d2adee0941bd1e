package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/skill-eval/internal/runner"
	"github.com/giantswarm/skill-eval/internal/server"
	"github.com/giantswarm/skill-eval/internal/skill"
)

func registerSkillTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// list_skills
	listTool := mcp.NewTool("list_skills",
		mcp.WithDescription("List available skill rule sets with metadata"),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListSkills(ctx, request, sc)
	})

	// evaluate_artifact
	evaluateTool := mcp.NewTool("evaluate_artifact",
		mcp.WithDescription("Evaluate a generated artifact against a named skill: deterministic pattern checks plus optional LLM-judge scoring"),
		mcp.WithString("skill",
			mcp.Required(),
			mcp.Description("Name of the skill rule set (e.g. 'turbo-morph-refresh')"),
		),
		mcp.WithString("artifact",
			mcp.Required(),
			mcp.Description("The generated text to evaluate"),
		),
		mcp.WithString("scenario",
			mcp.Description("The natural-language task the artifact was generated for"),
		),
		mcp.WithString("judge_mode",
			mcp.Description("Judge dispatch mode: none (default), single, or cross"),
		),
		mcp.WithString("provider",
			mcp.Description("Judge provider for single mode (e.g. 'mock', 'openai', 'anthropic')"),
		),
		mcp.WithString("providers",
			mcp.Description("Comma-separated providers for cross mode"),
		),
	)
	s.AddTool(evaluateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleEvaluateArtifact(ctx, request, sc)
	})

	return nil
}

func handleListSkills(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	names, err := skill.List(sc.SkillsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list skills: %v", err)), nil
	}

	type skillInfo struct {
		Name        string `json:"name"`
		ID          string `json:"id"`
		Description string `json:"description"`
		RuleCount   int    `json:"rule_count"`
	}

	var skills []skillInfo
	for _, name := range names {
		spec, err := skill.Load(name, sc.SkillsDir)
		if err != nil {
			continue
		}
		skills = append(skills, skillInfo{
			Name:        name,
			ID:          spec.ID(),
			Description: spec.Description,
			RuleCount:   len(spec.Rules),
		})
	}

	data, err := json.MarshalIndent(skills, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal skills: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleEvaluateArtifact(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	skillName, _ := args["skill"].(string)
	artifact, _ := args["artifact"].(string)
	if skillName == "" || artifact == "" {
		return mcp.NewToolResultError("'skill' and 'artifact' are required"), nil
	}
	scenario, _ := args["scenario"].(string)

	judgeMode, _ := args["judge_mode"].(string)
	provider, _ := args["provider"].(string)
	var providers []string
	if raw, ok := args["providers"].(string); ok && raw != "" {
		for _, p := range strings.Split(raw, ",") {
			providers = append(providers, strings.TrimSpace(p))
		}
	}

	mode, err := runner.ParseJudgeMode(judgeMode, provider, providers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	spec, err := skill.Load(skillName, sc.SkillsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load skill: %v", err)), nil
	}

	r := runner.NewRunner(sc.Clients, sc.Config)
	outcome, err := r.Run(ctx, runner.Case{
		Skill:    spec,
		Scenario: scenario,
		Artifact: artifact,
		Mode:     mode,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	data, err := outcome.JSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal outcome: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
