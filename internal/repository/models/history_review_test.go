package models

import (
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAnswerRecordListValue(t *testing.T) {
	var nilList AnswerRecordList
	v, err := nilList.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)

	list := AnswerRecordList{
		{Question: "q1", UserAnswer: "a", CorrectAnswer: "a", IsCorrect: true, Explanation: "e"},
	}
	v, err = list.Value()
	assert.NoError(t, err)
	assert.Contains(t, v.(string), `"question":"q1"`)
	assert.Contains(t, v.(string), `"is_correct":true`)
}

func TestAnswerRecordListScan(t *testing.T) {
	var list AnswerRecordList

	assert.NoError(t, list.Scan(nil))
	assert.Empty(t, list)

	assert.NoError(t, list.Scan(""))
	assert.Empty(t, list)

	assert.NoError(t, list.Scan("null"))
	assert.Empty(t, list)

	payload := `[{"question":"q1","user_answer":"x","correct_answer":"a","is_correct":false,"explanation":""}]`
	assert.NoError(t, list.Scan(payload))
	assert.Len(t, list, 1)
	assert.Equal(t, "q1", list[0].Question)
	assert.False(t, list[0].IsCorrect)

	assert.NoError(t, list.Scan([]byte(payload)))
	assert.Len(t, list, 1)

	assert.Error(t, list.Scan(42))
}

func TestAnswerRecordListRoundTrip(t *testing.T) {
	original := AnswerRecordList{
		{Question: "q1", UserAnswer: "paris", CorrectAnswer: "Paris", IsCorrect: false, Explanation: "capital"},
		{Question: "q2", UserAnswer: "BLUE", CorrectAnswer: "blue", IsCorrect: true, Explanation: ""},
	}

	v, err := original.Value()
	assert.NoError(t, err)

	var decoded AnswerRecordList
	assert.NoError(t, decoded.Scan(v))
	assert.Equal(t, []domain.AnswerRecord(original), []domain.AnswerRecord(decoded))
}
