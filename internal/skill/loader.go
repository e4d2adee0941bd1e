package skill

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed all:testdata
var embeddedSkills embed.FS

// Load loads a skill rule set by name, searching first in the external
// directory (if provided), then in the embedded skills.
func Load(name string, externalDir string) (*Spec, error) {
	// Try external directory first.
	if externalDir != "" {
		dir := filepath.Join(externalDir, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return loadFromFS(os.DirFS(dir), name)
		}
	}

	// Fall back to embedded skills.
	// Use path.Join (not filepath.Join) because embed.FS always uses forward slashes.
	subFS, err := fs.Sub(embeddedSkills, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("skill %q not found: %w", name, err)
	}
	return loadFromFS(subFS, name)
}

// List returns the names of all available skill rule sets.
func List(externalDir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	// List embedded skills.
	entries, err := fs.ReadDir(embeddedSkills, "testdata")
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}

	// List external skills.
	if externalDir != "" {
		entries, err := os.ReadDir(externalDir)
		if err == nil {
			for _, e := range entries {
				if e.IsDir() && !seen[e.Name()] {
					names = append(names, e.Name())
				}
			}
		}
	}

	return names, nil
}

func loadFromFS(fsys fs.FS, name string) (*Spec, error) {
	data, err := fs.ReadFile(fsys, "skill.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read skill.yaml for skill %q: %w", name, err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse skill.yaml for skill %q: %w", name, err)
	}

	if spec.Name == "" {
		spec.Name = name
	}
	for i, rule := range spec.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("skill %q: rule %d has no id", name, i+1)
		}
		if rule.Pattern == "" {
			return nil, fmt.Errorf("skill %q: rule %q has no pattern", name, rule.ID)
		}
		switch rule.Polarity {
		case "required", "forbidden":
		default:
			return nil, fmt.Errorf("skill %q: rule %q has invalid polarity %q", name, rule.ID, rule.Polarity)
		}
	}

	return &spec, nil
}
