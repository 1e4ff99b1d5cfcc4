package dto

import (
	"html/template"
	"time"
)

// GenerateQuizRequest is the request body for quiz generation.
type GenerateQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// QuizSummaryResponse represents a quiz in listing responses.
type QuizSummaryResponse struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionResponse represents one question in a quiz detail response.
// Text and option fields are pre-rendered safe HTML; consumers must not
// escape them again. The correct answer is deliberately omitted.
type QuestionResponse struct {
	ID      string        `json:"id"`
	Text    template.HTML `json:"text"`
	OptionA template.HTML `json:"option_a"`
	OptionB template.HTML `json:"option_b"`
	OptionC template.HTML `json:"option_c"`
	OptionD template.HTML `json:"option_d"`
	Order   int           `json:"order"`
}

// QuizDetailResponse represents a full quiz with its questions.
type QuizDetailResponse struct {
	Slug          string             `json:"slug"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	IsAIGenerated bool               `json:"is_ai_generated"`
	CreatedAt     time.Time          `json:"created_at"`
	Questions     []QuestionResponse `json:"questions"`
}

// SubmitAttemptRequest is the request body for submitting quiz answers.
// Answers maps question ID to the chosen option label (A-D).
type SubmitAttemptRequest struct {
	Answers map[string]string `json:"answers"`
}

// QuestionResult reports the outcome of a single question in an attempt.
// Explanation is pre-rendered safe HTML.
type QuestionResult struct {
	QuestionID    string        `json:"question_id"`
	Correct       bool          `json:"correct"`
	CorrectAnswer string        `json:"correct_answer"`
	Explanation   template.HTML `json:"explanation"`
}

// AttemptResponse is the result of a submitted quiz attempt.
type AttemptResponse struct {
	AttemptID      string           `json:"attempt_id"`
	QuizSlug       string           `json:"quiz_slug"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     float64          `json:"percentage"`
	Results        []QuestionResult `json:"results"`
}

// AttemptSummaryResponse represents one past attempt in history listings.
type AttemptSummaryResponse struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         string    `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse carries the unread notification count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
