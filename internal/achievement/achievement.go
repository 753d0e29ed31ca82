// Package achievement derives unlocked achievements from game progress.
package achievement

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDefinition is returned when an achievement definition is
	// incomplete or duplicated.
	ErrInvalidDefinition = errors.New("invalid achievement definition")

	// ErrInvalidCondition is returned when a condition cannot be evaluated.
	ErrInvalidCondition = errors.New("invalid achievement condition")
)

//go:embed assets/achievements.yaml
var defaultDefinitions []byte

// Definition describes one achievement and the condition that unlocks it.
// Condition is a boolean expression over statistic names, for example
// "total_challenges >= 5 && average_performance > 80".
type Definition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Condition   string `json:"condition" yaml:"condition"`
}

type definitionFile struct {
	Achievements []Definition `yaml:"achievements"`
}

// LoadYAML parses achievement definitions. Every definition needs an id, a
// name and a condition, and ids must be unique.
func LoadYAML(data []byte) ([]Definition, error) {
	var f definitionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}

	seen := make(map[string]bool, len(f.Achievements))
	for i, d := range f.Achievements {
		switch {
		case strings.TrimSpace(d.ID) == "":
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidDefinition, i)
		case strings.TrimSpace(d.Name) == "":
			return nil, fmt.Errorf("%w: %q has no name", ErrInvalidDefinition, d.ID)
		case strings.TrimSpace(d.Condition) == "":
			return nil, fmt.Errorf("%w: %q has no condition", ErrInvalidDefinition, d.ID)
		case seen[d.ID]:
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDefinition, d.ID)
		}
		seen[d.ID] = true
	}
	return f.Achievements, nil
}

// LoadFile reads achievement definitions from a YAML file.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read achievements: %w", err)
	}
	return LoadYAML(data)
}

// Defaults returns the built-in achievement definitions.
func Defaults() []Definition {
	defs, err := LoadYAML(defaultDefinitions)
	if err != nil {
		panic(fmt.Sprintf("built-in achievements: %v", err))
	}
	return defs
}
