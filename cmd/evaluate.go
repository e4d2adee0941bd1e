package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/skill-eval/internal/runner"
	"github.com/giantswarm/skill-eval/internal/skill"
)

func newEvaluateCmd() *cobra.Command {
	var (
		artifactPath string
		scenario     string
		scenarioFile string
		skillsDir    string
		judgeMode    string
		provider     string
		providers    []string
		threshold    float64
		endpoint     string
		apiKey       string
		timeout      time.Duration
		minProviders int
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <skill>",
		Short: "Evaluate an artifact against a skill rule set",
		Long: `Run a skill evaluation over a generated artifact.

Pattern assertions always run. An LLM judge can additionally score the
artifact against the skill's review criteria:

  --judge none    pattern assertions only (default)
  --judge single  one provider, with retry on transient backend failures
  --judge cross   several providers in parallel, with agreement checking

The command exits non-zero when the evaluation does not pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			spec, err := skill.Load(args[0], skillsDir)
			if err != nil {
				return fmt.Errorf("failed to load skill: %w", err)
			}

			artifact, err := readArtifact(artifactPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if scenarioFile != "" {
				data, err := os.ReadFile(scenarioFile)
				if err != nil {
					return fmt.Errorf("failed to read scenario file: %w", err)
				}
				scenario = string(data)
			}

			mode, err := runner.ParseJudgeMode(judgeMode, provider, providers)
			if err != nil {
				return err
			}

			clients := buildJudgeClients(endpoint, apiKey, timeout)
			r := runner.NewRunner(clients, runner.Config{
				ScoreThreshold: threshold,
				CallTimeout:    timeout,
				MinProviders:   minProviders,
			})

			outcome, err := r.Run(ctx, runner.Case{
				Skill:    spec,
				Scenario: scenario,
				Artifact: artifact,
				Mode:     mode,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := outcome.JSON()
				if err != nil {
					return fmt.Errorf("failed to marshal outcome: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				outcome.Render(cmd.OutOrStdout())
			}

			if !outcome.FinalPass {
				return fmt.Errorf("evaluation failed: %s", strings.Join(outcome.FailureReasons, "; "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "-", "Artifact file to evaluate, or '-' for stdin")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario text the artifact was generated for")
	cmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "Read the scenario from a file")
	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "External skills directory (optional)")
	cmd.Flags().StringVar(&judgeMode, "judge", "none", "Judge mode: none, single, or cross")
	cmd.Flags().StringVar(&provider, "provider", "", "Judge provider for single mode")
	cmd.Flags().StringSliceVar(&providers, "providers", nil, "Judge providers for cross mode (comma-separated)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum judge score for a pass (default 4.0)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "OpenAI-compatible API endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (or set OPENAI_API_KEY)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-provider judge call timeout (e.g. 30s). 0 uses the default")
	cmd.Flags().IntVar(&minProviders, "min-providers", 0, "Minimum usable providers for cross mode (default 2)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the outcome as JSON instead of a text report")

	return cmd
}

func readArtifact(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read artifact from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact file: %w", err)
	}
	return string(data), nil
}
