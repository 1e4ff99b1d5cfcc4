package models

import (
	"database/sql"
	"time"
)

// Quiz is the database model for the quizzes table.
type Quiz struct {
	ID            string         `db:"id"`
	Slug          string         `db:"slug"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	CreatorID     sql.NullString `db:"creator_id"`
	IsAIGenerated int            `db:"is_ai_generated"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Question is the database model for the questions table.
type Question struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Text          string         `db:"question_text"`
	OptionA       string         `db:"option_a"`
	OptionB       string         `db:"option_b"`
	OptionC       string         `db:"option_c"`
	OptionD       string         `db:"option_d"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	OrderNo       int            `db:"order_no"`
}

// QuizAttempt is the database model for the quiz_attempts table. Answers is
// stored as a JSON object mapping question ID to the chosen option.
type QuizAttempt struct {
	ID             string       `db:"id"`
	QuizID         string       `db:"quiz_id"`
	UserID         string       `db:"user_id"`
	Score          int          `db:"score"`
	TotalQuestions int          `db:"total_questions"`
	Answers        string       `db:"answers"`
	StartedAt      time.Time    `db:"started_at"`
	CompletedAt    sql.NullTime `db:"completed_at"`
}

// Notification is the database model for the notifications table.
type Notification struct {
	ID          string    `db:"id"`
	RecipientID string    `db:"recipient_id"`
	Type        string    `db:"notification_type"`
	Message     string    `db:"message"`
	IsRead      int       `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}
