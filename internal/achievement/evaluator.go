package achievement

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/abhisek/konnektoren/internal/game"
)

var (
	identPattern   = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	allowedPattern = regexp.MustCompile(`^[A-Za-z0-9_.\s()<>=!&|+\-*/]+$`)

	// Conditions use C-style operators; Lua spells them differently.
	// "!=" must be listed before "!".
	luaOperators = strings.NewReplacer(
		"&&", " and ",
		"||", " or ",
		"!=", " ~= ",
		"!", " not ",
	)
)

// Evaluator decides which achievements a game has unlocked.
type Evaluator struct {
	defs []Definition
}

// NewEvaluator creates an evaluator over defs. Results follow the order of
// defs.
func NewEvaluator(defs []Definition) *Evaluator {
	return &Evaluator{defs: slices.Clone(defs)}
}

// Definitions returns the achievements known to the evaluator.
func (e *Evaluator) Definitions() []Definition {
	return slices.Clone(e.defs)
}

// Evaluate returns the achievements whose condition holds for g.
func (e *Evaluator) Evaluate(g *game.Game) ([]Definition, error) {
	return e.EvaluateStatistics(ComputeStatistics(g))
}

// EvaluateStatistics returns the achievements whose condition holds for s.
// The first malformed condition aborts evaluation with an error naming the
// achievement.
func (e *Evaluator) EvaluateStatistics(s Statistics) ([]Definition, error) {
	l := lua.NewState()
	vars := s.variables()

	var achieved []Definition
	for _, d := range e.defs {
		ok, err := evaluate(l, d.Condition, vars)
		if err != nil {
			return nil, fmt.Errorf("achievement %q: %w", d.ID, err)
		}
		if ok {
			achieved = append(achieved, d)
		}
	}
	return achieved, nil
}

// Check evaluates a single condition against s.
func Check(condition string, s Statistics) (bool, error) {
	return evaluate(lua.NewState(), condition, s.variables())
}

// substitute replaces statistic names in condition with their literal values
// and rewrites the operators into Lua syntax.
func substitute(condition string, vars map[string]float64) (string, error) {
	if !allowedPattern.MatchString(condition) {
		return "", fmt.Errorf("%w: unexpected character in %q", ErrInvalidCondition, condition)
	}

	var unknown string
	expr := identPattern.ReplaceAllStringFunc(condition, func(name string) string {
		if name == "true" || name == "false" {
			return name
		}
		v, ok := vars[name]
		if !ok {
			if unknown == "" {
				unknown = name
			}
			return name
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
	if unknown != "" {
		return "", fmt.Errorf("%w: unknown statistic %q", ErrInvalidCondition, unknown)
	}
	return luaOperators.Replace(expr), nil
}

// evaluate runs the substituted condition in l. The state has no libraries
// loaded, so a condition can only compute with the literals it contains.
func evaluate(l *lua.State, condition string, vars map[string]float64) (bool, error) {
	expr, err := substitute(condition, vars)
	if err != nil {
		return false, err
	}

	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadString(l, "return ("+expr+")"); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	if l.TypeOf(-1) != lua.TypeBoolean {
		return false, fmt.Errorf("%w: %q is not a boolean expression", ErrInvalidCondition, condition)
	}
	return l.ToBoolean(-1), nil
}
