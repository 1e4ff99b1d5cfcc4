package validation

import (
	"strings"
	"unicode/utf8"

	"quizforge/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

const maxTopicLength = 200

var validDifficulties = map[string]bool{
	"":       true, // defaults to medium downstream
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// ValidateGenerateQuizRequest validates the quiz generation request.
func (v *Validator) ValidateGenerateQuizRequest(topic string, numQuestions int, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if utf8.RuneCountInString(topic) > maxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", utf8.RuneCountInString(topic), 1, maxTopicLength))
	}

	// Zero means "use the default"; anything else must be in range.
	if numQuestions != 0 && (numQuestions < 1 || numQuestions > 20) {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, 1, 20))
	}

	if !validDifficulties[strings.ToLower(difficulty)] {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	return errors
}

// ValidateSubmitAttemptRequest validates a quiz attempt submission.
func (v *Validator) ValidateSubmitAttemptRequest(answers map[string]string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}

	for questionID, answer := range answers {
		switch strings.ToUpper(answer) {
		case "A", "B", "C", "D":
		default:
			errors = append(errors, domain.NewInvalidFormatError("answers."+questionID, answer))
		}
	}

	return errors
}
