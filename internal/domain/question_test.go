package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMultipleChoiceQuestion(t *testing.T) {
	q, err := NewMultipleChoiceQuestion(1, "Pick one", []string{"a", "b", "c", "d"}, "a", "because")
	assert.NoError(t, err)
	assert.Equal(t, MultipleChoice, q.Type)
	assert.Len(t, q.Options, 4)
	assert.Empty(t, q.AcceptableAnswers)

	_, err = NewMultipleChoiceQuestion(1, "Pick one", []string{"a", "b"}, "a", "")
	assert.Error(t, err)

	_, err = NewMultipleChoiceQuestion(1, "", []string{"a", "b", "c", "d"}, "a", "")
	assert.Error(t, err)

	_, err = NewMultipleChoiceQuestion(1, "Pick one", []string{"a", "b", "c", "d"}, "", "")
	assert.Error(t, err)
}

func TestNewFillBlankQuestion(t *testing.T) {
	q, err := NewFillBlankQuestion(2, "Fill in ___", "answer", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, FillBlank, q.Type)
	assert.Equal(t, []string{"answer"}, q.AcceptableAnswers)

	q, err = NewFillBlankQuestion(2, "Fill in ___", "answer", []string{"answer", "Answer"}, "")
	assert.NoError(t, err)
	assert.Len(t, q.AcceptableAnswers, 2)

	_, err = NewFillBlankQuestion(2, "Fill in ___", "", nil, "")
	assert.Error(t, err)
}

func TestQuestionValidateVariantFields(t *testing.T) {
	// Options on a fill_blank question are rejected
	q := &Question{
		Type:              FillBlank,
		Question:          "Fill in ___",
		CorrectAnswer:     "x",
		Options:           []string{"a", "b", "c", "d"},
		AcceptableAnswers: []string{"x"},
	}
	assert.Error(t, q.Validate())

	// AcceptableAnswers on a multiple_choice question are rejected
	q = &Question{
		Type:              MultipleChoice,
		Question:          "Pick one",
		CorrectAnswer:     "a",
		Options:           []string{"a", "b", "c", "d"},
		AcceptableAnswers: []string{"a"},
	}
	assert.Error(t, q.Validate())

	q = &Question{Type: "essay", Question: "Write", CorrectAnswer: "x"}
	assert.Error(t, q.Validate())
}

func TestSessionRecordAnswer(t *testing.T) {
	s := &Session{
		SessionID: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		UserID:    "user-1",
		Questions: []Question{
			{ID: 1, Type: MultipleChoice, Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
			{ID: 2, Type: FillBlank, Question: "q2", CorrectAnswer: "x", AcceptableAnswers: []string{"x"}},
		},
		StartTime: time.Now().UTC(),
	}

	q, err := s.QuestionAt(0)
	assert.NoError(t, err)
	s.RecordAnswer(0, Grade(q, "a"))
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, 1, s.CurrentQuestion)

	q, err = s.QuestionAt(1)
	assert.NoError(t, err)
	s.RecordAnswer(1, Grade(q, "wrong"))
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, 2, s.CurrentQuestion)
	assert.Len(t, s.UserAnswers, 2)

	// correct_count always equals the number of correct records
	correct := 0
	for _, r := range s.UserAnswers {
		if r.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, s.CorrectCount, correct)

	_, err = s.QuestionAt(2)
	assert.Error(t, err)
	_, err = s.QuestionAt(-1)
	assert.Error(t, err)
}

func TestNewHistoryEntryFromSession(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := &Session{
		SessionID:    "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		UserID:       "user-1",
		DocumentName: "biology.pdf",
		StartTime:    start,
		Questions: []Question{
			{ID: 1, Type: MultipleChoice, Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
			{ID: 2, Type: FillBlank, Question: "q2", CorrectAnswer: "x", AcceptableAnswers: []string{"x"}},
		},
		UserAnswers: []AnswerRecord{
			{Question: "q1", UserAnswer: "a", CorrectAnswer: "a", IsCorrect: true},
			{Question: "q2", UserAnswer: "y", CorrectAnswer: "x", IsCorrect: false},
		},
		CorrectCount: 1,
	}

	entry := NewHistoryEntryFromSession(s, start.Add(95*time.Second))
	assert.Equal(t, s.SessionID, entry.QuizID)
	assert.Equal(t, "biology.pdf", entry.DocumentName)
	assert.Equal(t, 2, entry.TotalQuestions)
	assert.Equal(t, 1, entry.CorrectAnswers)
	assert.Equal(t, 50, entry.ScorePercentage)
	assert.Equal(t, 95, entry.TimeTakenSeconds)
	assert.Len(t, entry.QuestionsReview, 2)
}
