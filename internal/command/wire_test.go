package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/konnektoren/internal/challenge"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{"next challenge", `{"type":"Game","action":"NextChallenge"}`, NextChallenge()},
		{"previous challenge", `{"type":"Game","action":"PreviousChallenge"}`, PreviousChallenge()},
		{"next task", `{"type":"Challenge","action":"NextTask"}`, NextTask()},
		{"previous task", `{"type":"Challenge","action":"PreviousTask"}`, PreviousTask()},
		{"solve option", `{"type":"Challenge","action":"SolveOption","optionIndex":2}`, SolveOption(2)},
		{"finish without result", `{"type":"Challenge","action":"Finish"}`, Finish(nil)},
		{"finish with null result", `{"type":"Challenge","action":"Finish","result":null}`, Finish(nil)},
		{"finish for config", `{"type":"Challenge","action":"Finish","configId":"konnektoren-2"}`, FinishFor("konnektoren-2", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFinishWithResult(t *testing.T) {
	got, err := Parse([]byte(`{"type":"Challenge","action":"Finish","result":{"kind":"multiple-choice","multipleChoice":[{"id":1,"name":"b"}]}}`))
	require.NoError(t, err)

	cmd, ok := got.(ChallengeCommand)
	require.True(t, ok)
	require.NotNil(t, cmd.Result)
	assert.Equal(t, challenge.KindMultipleChoice, cmd.Result.Kind)
	assert.Equal(t, []challenge.MultipleChoiceOption{{ID: 1, Name: "b"}}, cmd.Result.MultipleChoice)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"malformed", `{"type":`, ErrInvalidData},
		{"not an object", `[1,2]`, ErrInvalidData},
		{"missing type", `{"action":"NextTask"}`, ErrMissingData},
		{"missing action", `{"type":"Game"}`, ErrMissingData},
		{"type not string", `{"type":1,"action":"NextTask"}`, ErrInvalidData},
		{"unknown type", `{"type":"Player","action":"NextTask"}`, ErrUnknownCommandType},
		{"unknown game action", `{"type":"Game","action":"NextTask"}`, ErrUnknownAction},
		{"unknown challenge action", `{"type":"Challenge","action":"NextChallenge"}`, ErrUnknownAction},
		{"solve without index", `{"type":"Challenge","action":"SolveOption"}`, ErrMissingData},
		{"solve with string index", `{"type":"Challenge","action":"SolveOption","optionIndex":"1"}`, ErrInvalidData},
		{"solve with fractional index", `{"type":"Challenge","action":"SolveOption","optionIndex":1.5}`, ErrInvalidData},
		{"finish with scalar result", `{"type":"Challenge","action":"Finish","result":3}`, ErrInvalidData},
		{"finish with bad result", `{"type":"Challenge","action":"Finish","result":{"multipleChoice":"x"}}`, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	result := challenge.NewResult(challenge.KindMultipleChoice)
	result.MultipleChoice = []challenge.MultipleChoiceOption{{ID: 0, Name: "a"}}

	for _, cmd := range []Command{
		NextChallenge(),
		PreviousChallenge(),
		NextTask(),
		PreviousTask(),
		SolveOption(4),
		Finish(nil),
		Finish(&result),
		FinishFor("konnektoren-3", &result),
	} {
		t.Run(cmd.String(), func(t *testing.T) {
			data, err := Marshal(cmd)
			require.NoError(t, err)

			got, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, cmd, got)
		})
	}
}

func TestMarshalWireShape(t *testing.T) {
	data, err := Marshal(SolveOption(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Challenge","action":"SolveOption","optionIndex":1}`, string(data))

	data, err = Marshal(NextChallenge())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Game","action":"NextChallenge"}`, string(data))
}
