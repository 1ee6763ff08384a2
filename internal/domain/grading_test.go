package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeMultipleChoice(t *testing.T) {
	q := &Question{
		ID:            1,
		Type:          MultipleChoice,
		Question:      "What is the capital of France?",
		Options:       []string{"Paris", "London", "Berlin", "Madrid"},
		CorrectAnswer: "Paris",
		Explanation:   "Paris is the capital of France.",
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact match", "Paris", true},
		{"surrounding whitespace is trimmed", "  Paris  ", true},
		{"case sensitive", "paris", false},
		{"wrong option", "London", false},
		{"empty answer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Grade(q, tt.answer)
			assert.Equal(t, tt.correct, record.IsCorrect)
			assert.Equal(t, q.Question, record.Question)
			assert.Equal(t, tt.answer, record.UserAnswer)
			assert.Equal(t, "Paris", record.CorrectAnswer)
			assert.Equal(t, q.Explanation, record.Explanation)
		})
	}
}

func TestGradeFillBlank(t *testing.T) {
	q := &Question{
		ID:                2,
		Type:              FillBlank,
		Question:          "The sky is ___",
		CorrectAnswer:     "blue",
		AcceptableAnswers: []string{"blue", "Blue"},
		Explanation:       "Rayleigh scattering makes the sky appear blue.",
	}

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact match", "blue", true},
		{"case insensitive", "BLUE", true},
		{"whitespace trimmed", "  blue ", true},
		{"acceptable variant", "Blue", true},
		{"wrong answer", "green", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Grade(q, tt.answer)
			assert.Equal(t, tt.correct, record.IsCorrect)
		})
	}
}

func TestGradeFillBlankDefaultsToCorrectAnswer(t *testing.T) {
	q := &Question{
		ID:            3,
		Type:          FillBlank,
		Question:      "Water is made of hydrogen and ___",
		CorrectAnswer: "Oxygen",
	}

	assert.True(t, Grade(q, "oxygen").IsCorrect)
	assert.True(t, Grade(q, " OXYGEN ").IsCorrect)
	assert.False(t, Grade(q, "carbon").IsCorrect)
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 0, ScorePercentage(0, 0))
	assert.Equal(t, 50, ScorePercentage(1, 2))
	assert.Equal(t, 100, ScorePercentage(10, 10))
	assert.Equal(t, 33, ScorePercentage(1, 3))
	assert.Equal(t, 67, ScorePercentage(2, 3))
	assert.Equal(t, 0, ScorePercentage(0, 10))

	// Halfway values round to the nearest even percentage.
	assert.Equal(t, 12, ScorePercentage(1, 8))
	assert.Equal(t, 38, ScorePercentage(3, 8))
	assert.Equal(t, 62, ScorePercentage(5, 8))
	assert.Equal(t, 88, ScorePercentage(7, 8))
}
