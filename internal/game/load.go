package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/konnektoren/internal/challenge"
)

// ErrInvalidDataset is returned when a dataset does not match the schema.
var ErrInvalidDataset = errors.New("invalid game dataset")

//go:embed assets/default.yaml
var defaultDataset []byte

// dataset is the on-disk structure of a game definition.
type dataset struct {
	Paths      []Path           `yaml:"paths"`
	Challenges []challenge.Type `yaml:"challenges"`
}

// LoadYAML builds a game from a YAML dataset. The document is validated
// against the dataset schema before it is decoded.
func LoadYAML(data []byte) (*Game, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := validateDataset(raw); err != nil {
		return nil, err
	}

	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	for _, p := range ds.Paths {
		for _, cfg := range p.Challenges {
			if cfg.Challenge == "" {
				return nil, fmt.Errorf("%w: config %q has no challenge", ErrInvalidDataset, cfg.ID)
			}
		}
	}

	return New(ds.Paths, challenge.NewFactory(ds.Challenges...)), nil
}

// LoadFile reads a YAML dataset from disk.
func LoadFile(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	g, err := LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return g, nil
}

// Default returns the built-in game. It panics if the embedded dataset is
// broken, which the tests guard against.
func Default() *Game {
	g, err := LoadYAML(defaultDataset)
	if err != nil {
		panic(fmt.Sprintf("built-in dataset: %v", err))
	}
	return g
}
