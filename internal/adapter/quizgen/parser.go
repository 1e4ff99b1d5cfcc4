package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// ParseErrorKind identifies the first validation gate a backend response
// failed.
type ParseErrorKind string

const (
	ParseMalformedDocument    ParseErrorKind = "malformed_document"
	ParseMissingField         ParseErrorKind = "missing_field"
	ParseWrongType            ParseErrorKind = "wrong_type"
	ParseQuestionMissingField ParseErrorKind = "question_missing_field"
	ParseInvalidCorrectAnswer ParseErrorKind = "invalid_correct_answer"
)

// ParseError describes a structural or schema violation in backend output.
// Question is the zero-based index of the offending question, or -1 when the
// violation is at the document level.
type ParseError struct {
	Kind     ParseErrorKind
	Field    string
	Question int
	Cause    error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseMalformedDocument:
		return fmt.Sprintf("malformed quiz document: %v", e.Cause)
	case ParseMissingField:
		return fmt.Sprintf("missing field %q", e.Field)
	case ParseWrongType:
		if e.Question >= 0 {
			return fmt.Sprintf("question %d: field %q has wrong type", e.Question, e.Field)
		}
		return fmt.Sprintf("field %q has wrong type", e.Field)
	case ParseQuestionMissingField:
		return fmt.Sprintf("question %d: missing field %q", e.Question, e.Field)
	case ParseInvalidCorrectAnswer:
		return fmt.Sprintf("question %d: correct_answer must be one of A, B, C, D", e.Question)
	default:
		return "invalid quiz document"
	}
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newDocumentError(kind ParseErrorKind, field string, cause error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Question: -1, Cause: cause}
}

func newQuestionError(kind ParseErrorKind, index int, field string) *ParseError {
	return &ParseError{Kind: kind, Field: field, Question: index}
}

// requiredQuestionFields are validated in this order so the reported field
// is deterministic for a given response.
var requiredQuestionFields = []string{
	"text", "option_a", "option_b", "option_c", "option_d", "correct_answer",
}

// stripCodeFence removes one surrounding triple-backtick fence, optionally
// tagged with a language hint. Backends sometimes wrap their JSON despite
// being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseQuizResponse validates raw backend output into a GeneratedQuiz.
// The output is untrusted text, not a trusted wire format: every gate fails
// fast with a typed ParseError identifying the first violation, and no
// partial quiz is ever returned.
func ParseQuizResponse(raw string) (*domain.GeneratedQuiz, error) {
	cleaned := stripCodeFence(raw)

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, newDocumentError(ParseMalformedDocument, "", err)
	}

	titleVal, ok := doc["title"]
	if !ok {
		return nil, newDocumentError(ParseMissingField, "title", nil)
	}
	title, ok := titleVal.(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, newDocumentError(ParseWrongType, "title", nil)
	}

	// description is optional; a non-string value is ignored rather than fatal.
	description, _ := doc["description"].(string)

	questionsVal, ok := doc["questions"]
	if !ok {
		return nil, newDocumentError(ParseMissingField, "questions", nil)
	}
	items, ok := questionsVal.([]any)
	if !ok || len(items) == 0 {
		return nil, newDocumentError(ParseWrongType, "questions", nil)
	}

	questions := make([]domain.GeneratedQuestion, 0, len(items))
	for i, item := range items {
		q, ok := item.(map[string]any)
		if !ok {
			return nil, &ParseError{Kind: ParseWrongType, Field: "questions", Question: i}
		}

		fields := make(map[string]string, len(requiredQuestionFields))
		for _, field := range requiredQuestionFields {
			val, ok := q[field]
			if !ok {
				return nil, newQuestionError(ParseQuestionMissingField, i, field)
			}
			s, ok := val.(string)
			if !ok {
				return nil, newQuestionError(ParseWrongType, i, field)
			}
			// A present-but-blank required field is as unusable as a missing one.
			if strings.TrimSpace(s) == "" {
				return nil, newQuestionError(ParseQuestionMissingField, i, field)
			}
			fields[field] = s
		}

		correct := strings.ToUpper(strings.TrimSpace(fields["correct_answer"]))
		switch correct {
		case "A", "B", "C", "D":
		default:
			return nil, newQuestionError(ParseInvalidCorrectAnswer, i, "correct_answer")
		}

		explanation, _ := q["explanation"].(string)

		questions = append(questions, domain.GeneratedQuestion{
			Text:          fields["text"],
			OptionA:       fields["option_a"],
			OptionB:       fields["option_b"],
			OptionC:       fields["option_c"],
			OptionD:       fields["option_d"],
			CorrectAnswer: correct,
			Explanation:   explanation,
		})
	}

	return &domain.GeneratedQuiz{
		Title:       title,
		Description: description,
		Questions:   questions,
	}, nil
}
