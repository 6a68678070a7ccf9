package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-stem-quiz/internal/domain"
)

func TestSequencerSubmitAdvances(t *testing.T) {
	seq := NewSequencer([]domain.Question{choiceQuestion(), shortQuestion()})

	q, ok := seq.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)

	result, err := seq.Submit(domain.ChoiceAnswer{Index: 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.Result{QuestionID: 1, Correct: true, Answer: domain.ChoiceAnswer{Index: 1}, XPEarned: 25, ElapsedSeconds: 4}, result)
	assert.Equal(t, 1, seq.Cursor())

	result, err = seq.Submit(domain.TextAnswer{Text: "11.0"}, 9)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.XPEarned)

	assert.True(t, seq.Exhausted())
	_, ok = seq.Current()
	assert.False(t, ok)
}

func TestSequencerSubmitWhenExhausted(t *testing.T) {
	seq := NewSequencer([]domain.Question{choiceQuestion()})
	_, err := seq.Submit(domain.ChoiceAnswer{Index: 0}, 1)
	require.NoError(t, err)

	_, err = seq.Submit(domain.ChoiceAnswer{Index: 1}, 1)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 1, seq.Cursor())
}

func TestSequencerPlaceAutoSubmits(t *testing.T) {
	seq := NewSequencer([]domain.Question{dragQuestion(), choiceQuestion()})

	result, err := seq.Place("engine", "target-propulsion", 1)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = seq.Place("fuel-tank", "target-storage", 2)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{"guidance"}, seq.Pending())
	assert.Equal(t, 0, seq.Cursor(), "no submit before every item is placed")

	result, err = seq.Place("guidance", "target-navigation", 3)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Correct)
	assert.Equal(t, 35, result.XPEarned)
	assert.Equal(t, 3, result.ElapsedSeconds)
	assert.Equal(t, domain.PlacementAnswer{Placements: correctPlacements()}, result.Answer)

	assert.Equal(t, 1, seq.Cursor())
	assert.Empty(t, seq.Placements())
	assert.Nil(t, seq.Pending())
}

func TestSequencerPlaceMovesItem(t *testing.T) {
	seq := NewSequencer([]domain.Question{dragQuestion()})

	_, err := seq.Place("engine", "target-storage", 1)
	require.NoError(t, err)
	_, err = seq.Place("engine", "target-propulsion", 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"engine": "target-propulsion"}, seq.Placements())
	assert.ElementsMatch(t, []string{"fuel-tank", "guidance"}, seq.Pending())
}

func TestSequencerPlaceIncorrectMappingStillSubmits(t *testing.T) {
	seq := NewSequencer([]domain.Question{dragQuestion()})

	for _, item := range []string{"engine", "fuel-tank", "guidance"} {
		result, err := seq.Place(item, "target-storage", 2)
		require.NoError(t, err)
		if item == "guidance" {
			require.NotNil(t, result)
			assert.False(t, result.Correct)
			assert.Zero(t, result.XPEarned)
		}
	}
	assert.True(t, seq.Exhausted())
}

func TestSequencerPlaceErrors(t *testing.T) {
	seq := NewSequencer([]domain.Question{dragQuestion(), choiceQuestion()})

	_, err := seq.Place("booster", "target-propulsion", 1)
	require.ErrorIs(t, err, domain.ErrInvalidPlacement)
	_, err = seq.Place("engine", "target-moon", 1)
	require.ErrorIs(t, err, domain.ErrInvalidPlacement)
	assert.Empty(t, seq.Placements())

	_, err = seq.Submit(domain.PlacementAnswer{}, 1)
	require.NoError(t, err)

	_, err = seq.Place("engine", "target-propulsion", 1)
	require.ErrorIs(t, err, domain.ErrInvalidState, "current question is multiple-choice")

	_, err = seq.Submit(domain.ChoiceAnswer{Index: 1}, 1)
	require.NoError(t, err)
	_, err = seq.Place("engine", "target-propulsion", 1)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}
