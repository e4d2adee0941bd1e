package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/skill-eval/internal/skill"
)

func newListCmd() *cobra.Command {
	var skillsDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available skill rule sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := skill.List(skillsDir)
			if err != nil {
				return fmt.Errorf("failed to list skills: %w", err)
			}

			if len(names) == 0 {
				fmt.Println("No skills found.")
				return nil
			}

			fmt.Printf("Available skills:\n\n")
			for _, name := range names {
				spec, err := skill.Load(name, skillsDir)
				if err != nil {
					fmt.Printf("  - %s (error loading: %v)\n", name, err)
					continue
				}
				fmt.Printf("  - %s\n", spec.ID())
				fmt.Printf("    Description: %s\n", spec.Description)
				fmt.Printf("    Rules: %d\n\n", len(spec.Rules))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&skillsDir, "skills-dir", "", "External skills directory")

	return cmd
}
