package domain

import (
	"math"
	"strings"
)

// Grade compares a raw submitted answer against the question's canonical
// answers and returns the resulting record. It is a pure function; the
// caller is responsible for addressing a valid question.
//
// Multiple-choice answers are compared exactly after trimming surrounding
// whitespace (case-sensitive). Fill-in-the-blank answers are trimmed and
// lower-cased, then matched against each acceptable answer lower-cased.
func Grade(q *Question, userAnswer string) AnswerRecord {
	var isCorrect bool

	switch q.Type {
	case FillBlank:
		submitted := strings.ToLower(strings.TrimSpace(userAnswer))
		acceptable := q.AcceptableAnswers
		if len(acceptable) == 0 {
			acceptable = []string{q.CorrectAnswer}
		}
		for _, a := range acceptable {
			if submitted == strings.ToLower(a) {
				isCorrect = true
				break
			}
		}
	default:
		isCorrect = strings.TrimSpace(userAnswer) == strings.TrimSpace(q.CorrectAnswer)
	}

	return AnswerRecord{
		Question:      q.Question,
		UserAnswer:    userAnswer,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     isCorrect,
		Explanation:   q.Explanation,
	}
}

// ScorePercentage returns the percentage of correct answers rounded
// half to even, or 0 when total is 0.
func ScorePercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(correct) / float64(total) * 100))
}
