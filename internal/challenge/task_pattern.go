package challenge

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// PatternKind identifies how tasks are selected from challenge content.
type PatternKind string

const (
	PatternExact  PatternKind = "exact"
	PatternRange  PatternKind = "range"
	PatternRandom PatternKind = "random"
)

// OpenEnd marks a TaskRange without an upper bound.
const OpenEnd = -1

// MaxTaskNumber bounds every count and index in a parsed pattern.
const MaxTaskNumber = 1 << 20

// TaskRange is an inclusive index range. End == OpenEnd means "up to the
// last item".
type TaskRange struct {
	Start int
	End   int
}

// String renders the range in the "lo..hi" grammar.
func (r TaskRange) String() string {
	if r.End == OpenEnd {
		return fmt.Sprintf("%d..", r.Start)
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// clamp bounds r to [0, total-1]. total must be positive.
func (r TaskRange) clamp(total int) (int, int) {
	last := total - 1
	lo := min(max(r.Start, 0), last)
	hi := r.End
	if hi == OpenEnd || hi > last {
		hi = last
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// TaskPattern selects which tasks of a challenge are played.
// The zero value selects every task.
type TaskPattern struct {
	Kind  PatternKind
	Count int
	Range *TaskRange
}

// Exact selects the first n tasks.
func Exact(n int) TaskPattern {
	return TaskPattern{Kind: PatternExact, Count: n}
}

// Range selects tasks start..=end.
func Range(start, end int) TaskPattern {
	return TaskPattern{Kind: PatternRange, Range: &TaskRange{Start: start, End: end}}
}

// Random samples n tasks, optionally restricted to r.
func Random(n int, r *TaskRange) TaskPattern {
	return TaskPattern{Kind: PatternRandom, Count: n, Range: r}
}

// TaskPatternError reports a malformed task pattern string.
type TaskPatternError struct {
	Input  string
	Reason string
}

func (e *TaskPatternError) Error() string {
	return fmt.Sprintf("invalid task pattern %q: %s", e.Input, e.Reason)
}

// ParseTaskPattern parses the compact grammar:
//
//	"10"       exact count
//	"1..10"    inclusive range (empty bound = open)
//	"5:random" random sample from all tasks
//	"5:1..10"  random sample from a sub-range
func ParseTaskPattern(s string) (TaskPattern, error) {
	input := s
	s = strings.TrimSpace(s)
	if s == "" {
		return TaskPattern{}, &TaskPatternError{Input: input, Reason: "empty pattern"}
	}

	if count, rest, ok := strings.Cut(s, ":"); ok {
		n, err := parseNumber(count)
		if err != nil {
			return TaskPattern{}, &TaskPatternError{Input: input, Reason: "count: " + err.Error()}
		}
		if n == 0 {
			return TaskPattern{}, &TaskPatternError{Input: input, Reason: "random count must be positive"}
		}
		if rest == "random" {
			return Random(n, nil), nil
		}
		r, err := parseRange(rest)
		if err != nil {
			return TaskPattern{}, &TaskPatternError{Input: input, Reason: err.Error()}
		}
		return Random(n, &r), nil
	}

	if strings.Contains(s, "..") {
		r, err := parseRange(s)
		if err != nil {
			return TaskPattern{}, &TaskPatternError{Input: input, Reason: err.Error()}
		}
		return TaskPattern{Kind: PatternRange, Range: &r}, nil
	}

	n, err := parseNumber(s)
	if err != nil {
		return TaskPattern{}, &TaskPatternError{Input: input, Reason: err.Error()}
	}
	return Exact(n), nil
}

// MustParseTaskPattern is like ParseTaskPattern but panics on error.
// Intended for literals in tests and built-in content.
func MustParseTaskPattern(s string) TaskPattern {
	p, err := ParseTaskPattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseRange(s string) (TaskRange, error) {
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		return TaskRange{}, fmt.Errorf("expected range lo..hi, got %q", s)
	}
	r := TaskRange{Start: 0, End: OpenEnd}
	if lo != "" {
		n, err := parseNumber(lo)
		if err != nil {
			return TaskRange{}, fmt.Errorf("range start: %w", err)
		}
		r.Start = n
	}
	if hi != "" {
		n, err := parseNumber(hi)
		if err != nil {
			return TaskRange{}, fmt.Errorf("range end: %w", err)
		}
		r.End = n
	}
	if r.End != OpenEnd && r.Start > r.End {
		return TaskRange{}, fmt.Errorf("range start %d is after end %d", r.Start, r.End)
	}
	return r, nil
}

// parseNumber accepts plain decimal digits up to MaxTaskNumber; signs are
// rejected.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing number")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%q is not a non-negative number", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxTaskNumber {
		return 0, fmt.Errorf("%q exceeds %d", s, MaxTaskNumber)
	}
	return n, nil
}

// String renders the pattern in the grammar accepted by ParseTaskPattern.
// The zero value renders as "".
func (p TaskPattern) String() string {
	switch p.Kind {
	case PatternExact:
		return strconv.Itoa(p.Count)
	case PatternRange:
		if p.Range == nil {
			return "0.."
		}
		return p.Range.String()
	case PatternRandom:
		if p.Range == nil {
			return fmt.Sprintf("%d:random", p.Count)
		}
		return fmt.Sprintf("%d:%s", p.Count, p.Range)
	default:
		return ""
	}
}

// IsZero reports whether p is the select-all zero value.
func (p TaskPattern) IsZero() bool {
	return p.Kind == ""
}

// Len returns the number of tasks the pattern asks for. Open ranges and the
// zero value depend on the content and report 0.
func (p TaskPattern) Len() int {
	switch p.Kind {
	case PatternExact, PatternRandom:
		return p.Count
	case PatternRange:
		if p.Range == nil || p.Range.End == OpenEnd {
			return 0
		}
		lo := max(p.Range.Start, 0)
		hi := min(p.Range.End, MaxTaskNumber)
		if hi < lo {
			return 0
		}
		return hi - lo + 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p TaskPattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// decodes to the zero value.
func (p *TaskPattern) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*p = TaskPattern{}
		return nil
	}
	parsed, err := ParseTaskPattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Indices returns the ascending item indices selected from total items.
// rng is only used by random patterns; nil uses the global source.
func (p TaskPattern) Indices(total int, rng *rand.Rand) []int {
	if total <= 0 {
		return nil
	}

	switch p.Kind {
	case PatternExact:
		return seq(0, min(p.Count, total)-1)
	case PatternRange:
		if p.Range == nil {
			return seq(0, total-1)
		}
		lo, hi := p.Range.clamp(total)
		return seq(lo, hi)
	case PatternRandom:
		pool := seq(0, total-1)
		if p.Range != nil {
			lo, hi := p.Range.clamp(total)
			pool = seq(lo, hi)
		}
		n := min(p.Count, len(pool))
		var perm []int
		if rng != nil {
			perm = rng.Perm(len(pool))
		} else {
			perm = rand.Perm(len(pool))
		}
		picked := make([]int, n)
		for i := 0; i < n; i++ {
			picked[i] = pool[perm[i]]
		}
		slices.Sort(picked)
		return picked
	default:
		return seq(0, total-1)
	}
}

// SelectItems returns the items chosen by p. The input slice is not modified.
func SelectItems[T any](p TaskPattern, items []T, rng *rand.Rand) []T {
	if items == nil {
		return nil
	}
	idx := p.Indices(len(items), rng)
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}

// seq returns lo..=hi, or an empty slice when hi < lo.
func seq(lo, hi int) []int {
	if hi < lo {
		return []int{}
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
