package domain

import "context"

// Difficulty is the requested difficulty of a generated quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a free-form difficulty string to a known level.
// Unknown or empty values fall back to medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyMedium
	}
}

// GeneratedQuestion is a single validated multiple-choice question produced
// by the generation pipeline. CorrectAnswer is always one of A, B, C, D
// (upper-cased) after a successful parse.
type GeneratedQuestion struct {
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// GeneratedQuiz is the validated result of the generation pipeline, ready
// for persistence. Questions is never empty after a successful parse.
type GeneratedQuiz struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []GeneratedQuestion `json:"questions"`
}

// QuizGenerationService is the entry point of the generation pipeline:
// topic gate, prompt construction, backend call, response validation.
// It never returns a partially populated quiz.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, topic string, numQuestions int, difficulty Difficulty) (*GeneratedQuiz, error)
}

// TextGenerator is the port to the external text-generation backend. It
// performs no content validation; it only surfaces raw completion text or
// a transport-level failure.
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
