package game

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// datasetSchema describes a game dataset document (paths + challenge content).
var datasetSchema = map[string]any{
	"type":     "object",
	"required": []any{"paths", "challenges"},
	"properties": map[string]any{
		"paths": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name", "challenges"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string"},
					"challenges": map[string]any{
						"type":  "array",
						"items": configSchema,
					},
				},
			},
		},
		"challenges": map[string]any{
			"type":  "array",
			"items": contentSchema,
		},
	},
}

var configSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "challenge"},
	"properties": map[string]any{
		"id":            map[string]any{"type": "string", "minLength": 1},
		"name":          map[string]any{"type": "string"},
		"description":   map[string]any{"type": "string"},
		"challenge":     map[string]any{"type": "string", "minLength": 1},
		"tasks":         map[string]any{"type": []any{"string", "integer"}},
		"unlock_points": map[string]any{"type": "integer", "minimum": 0},
		"position": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "integer"},
			"minItems": 2,
			"maxItems": 2,
		},
	},
}

var contentSchema = map[string]any{
	"type":     "object",
	"required": []any{"kind"},
	"properties": map[string]any{
		"kind": map[string]any{
			"type": "string",
			"enum": []any{"multiple-choice", "sort-table", "contextual-choice", "informative", "custom"},
		},
	},
	"allOf": []any{
		kindRequires("multiple-choice", "multiple_choice"),
		kindRequires("sort-table", "sort_table"),
		kindRequires("contextual-choice", "contextual_choice"),
		kindRequires("informative", "informative"),
		kindRequires("custom", "custom"),
	},
}

// kindRequires makes the payload field mandatory for the given kind.
func kindRequires(kind, field string) map[string]any {
	return map[string]any{
		"if": map[string]any{
			"properties": map[string]any{"kind": map[string]any{"const": kind}},
		},
		"then": map[string]any{
			"required": []any{field},
			"properties": map[string]any{
				field: map[string]any{
					"type":     "object",
					"required": []any{"id"},
				},
			},
		},
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDataset checks a decoded dataset document against datasetSchema.
func validateDataset(doc any) error {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileSchema("dataset", datasetSchema)
	})
	if compileErr != nil {
		return fmt.Errorf("compile dataset schema: %w", compileErr)
	}

	// The validator expects plain JSON values.
	normalized, err := toJSONValue(doc)
	if err != nil {
		return err
	}
	if err := compiledSchema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return nil
}

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	parsed, err := toJSONValue(def)
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
}

func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return out, nil
}
