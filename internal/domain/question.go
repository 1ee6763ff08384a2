package domain

// QuestionType distinguishes the two supported question variants.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FillBlank      QuestionType = "fill_blank"
)

// Question represents a single generated quiz question. It is immutable
// once generated; Options is populated only for multiple-choice questions
// and AcceptableAnswers only for fill-in-the-blank questions.
type Question struct {
	ID                int          `json:"id"`
	Type              QuestionType `json:"type"`
	Question          string       `json:"question"`
	Options           []string     `json:"options,omitempty"`
	CorrectAnswer     string       `json:"correct_answer"`
	AcceptableAnswers []string     `json:"acceptable_answers,omitempty"`
	Explanation       string       `json:"explanation"`
}

// NewMultipleChoiceQuestion creates a validated multiple-choice question.
func NewMultipleChoiceQuestion(id int, question string, options []string, correctAnswer, explanation string) (*Question, error) {
	q := &Question{
		ID:            id,
		Type:          MultipleChoice,
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// NewFillBlankQuestion creates a validated fill-in-the-blank question.
// When acceptableAnswers is empty it defaults to the correct answer alone.
func NewFillBlankQuestion(id int, question, correctAnswer string, acceptableAnswers []string, explanation string) (*Question, error) {
	if len(acceptableAnswers) == 0 {
		acceptableAnswers = []string{correctAnswer}
	}
	q := &Question{
		ID:                id,
		Type:              FillBlank,
		Question:          question,
		CorrectAnswer:     correctAnswer,
		AcceptableAnswers: acceptableAnswers,
		Explanation:       explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate enforces the fields valid for each question variant.
func (q *Question) Validate() error {
	if q.Question == "" {
		return NewInvalidInputError("question text is required")
	}
	if q.CorrectAnswer == "" {
		return NewInvalidInputError("correct answer is required")
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) != 4 {
			return NewInvalidInputError("multiple choice questions require exactly 4 options")
		}
		if len(q.AcceptableAnswers) > 0 {
			return NewInvalidInputError("acceptable answers are only valid for fill_blank questions")
		}
	case FillBlank:
		if len(q.Options) > 0 {
			return NewInvalidInputError("options are only valid for multiple_choice questions")
		}
		if len(q.AcceptableAnswers) == 0 {
			return NewInvalidInputError("at least one acceptable answer is required")
		}
	default:
		return NewInvalidInputError("question type must be multiple_choice or fill_blank")
	}
	return nil
}
