package challenge

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskPattern(t *testing.T) {
	tests := []struct {
		in   string
		want TaskPattern
	}{
		{"10", Exact(10)},
		{"0", Exact(0)},
		{" 3 ", Exact(3)},
		{"1..10", Range(1, 10)},
		{"..5", Range(0, 5)},
		{"3..", Range(3, OpenEnd)},
		{"5:random", Random(5, nil)},
		{"5:1..10", Random(5, &TaskRange{Start: 1, End: 10})},
		{"2:4..", Random(2, &TaskRange{Start: 4, End: OpenEnd})},
		{"0..1048576", Range(0, MaxTaskNumber)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTaskPattern(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaskPatternErrors(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"-1",
		"+3",
		"10..2",
		"1..x",
		"0:random",
		"5:",
		"5:foo",
		":random",
		"1...3",
		"0..9223372036854775807",
		"99999999999999999999",
		"1048577",
		"2:0..1048577",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTaskPattern(in)
			require.Error(t, err)
			var perr *TaskPatternError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, in, perr.Input)
			assert.NotEmpty(t, perr.Reason)
		})
	}
}

func TestTaskPatternRoundTrip(t *testing.T) {
	inputs := []string{"0", "7", "1..10", "..4", "2..", "0..0", "5:random", "5:1..10", "3:..9", "1:6.."}

	for _, in := range inputs {
		p, err := ParseTaskPattern(in)
		require.NoError(t, err, in)

		again, err := ParseTaskPattern(p.String())
		require.NoError(t, err, "reparse %q (from %q)", p.String(), in)
		assert.Equal(t, p, again, in)
	}
}

func TestTaskPatternLen(t *testing.T) {
	assert.Equal(t, 10, Exact(10).Len())
	assert.Equal(t, 10, Range(1, 10).Len())
	assert.Equal(t, 1, Range(4, 4).Len())
	assert.Equal(t, 0, Range(3, OpenEnd).Len())
	assert.Equal(t, 5, Random(5, &TaskRange{Start: 1, End: 10}).Len())
	assert.Equal(t, 0, TaskPattern{}.Len())

	// Hand-built ranges are capped instead of overflowing.
	assert.Equal(t, MaxTaskNumber+1, Range(0, math.MaxInt).Len())
	assert.Equal(t, 0, Range(MaxTaskNumber+5, math.MaxInt).Len())
}

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestSelectItemsExact(t *testing.T) {
	items := numbers(5)
	assert.Equal(t, []int{1, 2, 3}, SelectItems(Exact(3), items, nil))
	assert.Equal(t, items, SelectItems(Exact(10), items, nil), "count is clamped to the content")
	assert.Empty(t, SelectItems(Exact(0), items, nil))
}

func TestSelectItemsRangeClamped(t *testing.T) {
	items := numbers(5)
	assert.Equal(t, []int{2, 3, 4}, SelectItems(Range(1, 3), items, nil))
	assert.Equal(t, []int{4, 5}, SelectItems(Range(3, 99), items, nil))
	assert.Equal(t, []int{3, 4, 5}, SelectItems(Range(2, OpenEnd), items, nil))
	assert.Equal(t, []int{5}, SelectItems(Range(10, 12), items, nil))
}

func TestSelectItemsRandomWithinRange(t *testing.T) {
	p, err := ParseTaskPattern("5:1..10")
	require.NoError(t, err)
	assert.Equal(t, Random(5, &TaskRange{Start: 1, End: 10}), p)

	items := numbers(20)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		got := SelectItems(p, items, rng)
		require.Len(t, got, 5)

		seen := make(map[int]bool)
		for _, v := range got {
			assert.GreaterOrEqual(t, v, 2)
			assert.LessOrEqual(t, v, 11)
			assert.False(t, seen[v], "duplicate item %d", v)
			seen[v] = true
		}
	}
}

func TestSelectItemsRandomWholeSlice(t *testing.T) {
	items := numbers(3)
	got := SelectItems(Random(10, nil), items, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, []int{1, 2, 3}, got, "sample larger than content returns everything in order")
}

func TestSelectItemsDoesNotModifyInput(t *testing.T) {
	items := numbers(6)
	_ = SelectItems(Random(3, nil), items, rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, numbers(6), items)
}

func TestTaskPatternText(t *testing.T) {
	var p TaskPattern
	require.NoError(t, p.UnmarshalText([]byte("4:2..8")))
	assert.Equal(t, Random(4, &TaskRange{Start: 2, End: 8}), p)

	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "4:2..8", string(b))

	require.NoError(t, p.UnmarshalText([]byte("")))
	assert.True(t, p.IsZero())

	assert.Error(t, p.UnmarshalText([]byte("x..y")))
}
