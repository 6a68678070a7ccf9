package bank

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-stem-quiz/internal/domain"
)

func TestBuiltinQuizzesAreValid(t *testing.T) {
	quizzes := Builtin()
	require.Len(t, quizzes, 3)

	for _, quiz := range quizzes {
		require.NoError(t, domain.ValidateQuiz(quiz), quiz.ID)
	}
	assert.Equal(t, 115, quizzes[0].MaxXP())
	assert.Equal(t, 105, quizzes[1].MaxXP())
	assert.Equal(t, 95, quizzes[2].MaxXP())
}

func TestBuiltinReturnsFreshCopies(t *testing.T) {
	first := Builtin()
	first[0].Questions[0].Prompt = "mutated"

	second := Builtin()
	assert.NotEqual(t, "mutated", second[0].Questions[0].Prompt)
}

func TestBuiltinQuizzesPassSchema(t *testing.T) {
	for _, quiz := range Builtin() {
		data, err := json.Marshal(quiz)
		require.NoError(t, err)

		parsed, err := Parse(quiz.ID+".json", data)
		require.NoError(t, err, quiz.ID)
		assert.Equal(t, quiz.Questions, parsed.Questions)
	}
}

const yamlQuiz = `
id: moon-facts
title: Moon Facts
estimatedMinutes: 3
questions:
  - id: 1
    type: short-answer
    prompt: How many days does the Moon take to orbit Earth?
    correctAnswers: ["27", "28"]
    answerType: number
    xpReward: 20
    difficulty: medium
    subject: science
  - id: 2
    type: multiple-choice
    prompt: Who first walked on the Moon?
    options: [Buzz Aldrin, Neil Armstrong]
    correctAnswer: 1
    xpReward: 10
    difficulty: easy
    subject: science
`

func TestParseYAML(t *testing.T) {
	quiz, err := Parse("moon.yaml", []byte(yamlQuiz))
	require.NoError(t, err)

	assert.Equal(t, "moon-facts", quiz.ID)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, domain.AnswerKindNumber, quiz.Questions[0].AnswerKind)
	assert.Equal(t, []string{"Buzz Aldrin", "Neil Armstrong"}, quiz.Questions[1].Options)
	assert.Equal(t, 1, quiz.Questions[1].CorrectAnswer)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing questions": `{"id":"x","title":"X"}`,
		"unknown type":      `{"id":"x","title":"X","questions":[{"id":1,"type":"essay","prompt":"p","xpReward":1,"difficulty":"easy","subject":"science"}]}`,
		"one option":        `{"id":"x","title":"X","questions":[{"id":1,"type":"multiple-choice","prompt":"p","options":["a"],"correctAnswer":0,"xpReward":1,"difficulty":"easy","subject":"science"}]}`,
		"zero reward":       `{"id":"x","title":"X","questions":[{"id":1,"type":"short-answer","prompt":"p","correctAnswers":["a"],"xpReward":0,"difficulty":"easy","subject":"science"}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("bad.json", []byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseRejectsDanglingTarget(t *testing.T) {
	doc := `{"id":"x","title":"X","questions":[{"id":1,"type":"drag-drop","prompt":"p","xpReward":5,"difficulty":"easy","subject":"science",
		"items":[{"id":"a","content":"A","correctTargetId":"nowhere"}],
		"targets":[{"id":"t1","content":"T1"}]}]}`

	_, err := Parse("bad.json", []byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuestion))
}

func TestLoadDirSortsAndRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(yamlQuiz), 0o644))

	data, err := json.Marshal(Builtin()[1])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	quizzes, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, RocketScienceID, quizzes[0].ID)
	assert.Equal(t, "moon-facts", quizzes[1].ID)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yml"), []byte(yamlQuiz), 0o644))
	_, err = LoadDir(dir)
	require.ErrorIs(t, err, domain.ErrInvalidQuestion)
}
