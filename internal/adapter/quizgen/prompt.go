package quizgen

import (
	"fmt"
	"quizforge/internal/domain"
)

const (
	// MaxTopicLength is the practical cap on requester-supplied topics.
	MaxTopicLength = 200

	defaultNumQuestions = 10
	minNumQuestions     = 1
	maxNumQuestions     = 20
)

// systemInstruction restricts the backend to programming/technology quiz
// generation regardless of what the user prompt asks for.
const systemInstruction = "You are a programming and technology quiz generator. " +
	"You ONLY generate quizzes about programming, software development, " +
	"computer science, and technology topics. " +
	"If asked about non-tech topics (cooking, sports, entertainment, etc.), " +
	"refuse and return an error. " +
	"Generate quiz questions in valid JSON format only. " +
	"No markdown, no code blocks, just pure JSON."

// GenerationRequest is an immutable description of a single quiz generation
// invocation.
type GenerationRequest struct {
	Topic        string
	NumQuestions int
	Difficulty   domain.Difficulty
}

// NewGenerationRequest builds a GenerationRequest, applying defaults: a
// non-positive question count becomes 10 and counts are clamped to [1, 20];
// unknown difficulties fall back to medium.
func NewGenerationRequest(topic string, numQuestions int, difficulty domain.Difficulty) GenerationRequest {
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}
	if numQuestions < minNumQuestions {
		numQuestions = minNumQuestions
	}
	if numQuestions > maxNumQuestions {
		numQuestions = maxNumQuestions
	}
	return GenerationRequest{
		Topic:        topic,
		NumQuestions: numQuestions,
		Difficulty:   domain.ParseDifficulty(string(difficulty)),
	}
}

// SystemInstruction returns the fixed system-level instruction sent with
// every generation request.
func (r GenerationRequest) SystemInstruction() string {
	return systemInstruction
}

// Prompt renders the natural-language instruction sent to the generation
// backend. The JSON shape it mandates is the contract the response parser
// validates against; the parser stays defensive because the backend is only
// instructed, not forced, to comply.
func (r GenerationRequest) Prompt() string {
	return fmt.Sprintf(`Generate a %s difficulty programming quiz about: %s

Create exactly %d multiple choice questions. Each question must have exactly 4 options (A, B, C, D) with only one correct answer.

Return ONLY valid JSON in this exact format (no markdown, no code blocks):
{
    "title": "Quiz title here",
    "description": "Brief description of the quiz",
    "questions": [
        {
            "text": "Question text here?",
            "option_a": "First option",
            "option_b": "Second option",
            "option_c": "Third option",
            "option_d": "Fourth option",
            "correct_answer": "A",
            "explanation": "Brief explanation of why this is correct"
        }
    ]
}

Requirements:
- Questions should test practical programming knowledge
- Options should be plausible (avoid obviously wrong answers)
- Include code snippets in questions when appropriate
- Explanations should be educational and concise
- Difficulty: %s (easy=beginner concepts, medium=intermediate, hard=advanced)`,
		r.Difficulty, r.Topic, r.NumQuestions, r.Difficulty)
}
