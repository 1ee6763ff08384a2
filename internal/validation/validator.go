package validation

import (
	"regexp"
	"strings"

	"studyquiz/internal/domain"
)

const (
	maxAnswerLength   = 2000
	maxUserIDLength   = 100
	maxQuizQuestions  = 50
	maxDocumentLength = 255
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID validates a quiz session identifier
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// ValidateUserID validates a user identifier
func (v *Validator) ValidateUserID(userID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	} else if len(userID) > maxUserIDLength {
		errors = append(errors, domain.NewOutOfRangeError("user_id", len(userID), 1, maxUserIDLength))
	}

	return errors
}

// ValidateCreateQuizRequest validates the create quiz request
func (v *Validator) ValidateCreateQuizRequest(userID, documentName, knowledge string, numQuestions int) domain.ValidationErrors {
	errors := v.ValidateUserID(userID)

	if strings.TrimSpace(knowledge) == "" {
		errors = append(errors, domain.NewMissingFieldError("knowledge"))
	}
	if len(documentName) > maxDocumentLength {
		errors = append(errors, domain.NewOutOfRangeError("document_name", len(documentName), 0, maxDocumentLength))
	}
	if numQuestions < 0 || numQuestions > maxQuizQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, 0, maxQuizQuestions))
	}

	return errors
}

// ValidateSubmitAnswerRequest validates the submit answer request
func (v *Validator) ValidateSubmitAnswerRequest(sessionID, answer string) domain.ValidationErrors {
	errors := v.ValidateSessionID(sessionID)

	if strings.TrimSpace(answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if len(answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(answer), 1, maxAnswerLength))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
