package domain

import (
	"context"
	"time"
)

// Quiz represents a quiz in the domain
type Quiz struct {
	ID            string
	Slug          string
	Title         string
	Description   string
	CreatorID     string
	IsAIGenerated bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Questions     []*Question
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewInvalidInputError("title is required")
	}
	if len(q.Questions) == 0 {
		return NewInvalidInputError("quiz must have at least one question")
	}
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Question is a multiple-choice question with four options, exactly one of
// which is correct.
type Question struct {
	ID            string
	QuizID        string
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Explanation   string
	Order         int
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	switch q.CorrectAnswer {
	case "A", "B", "C", "D":
	default:
		return NewInvalidInputError("correct answer must be one of A, B, C, D")
	}
	return nil
}

// QuizAttempt records a user's completed attempt at a quiz. Answers maps
// question ID to the chosen option label.
type QuizAttempt struct {
	ID             string
	QuizID         string
	UserID         string
	Score          int
	TotalQuestions int
	Answers        map[string]string
	StartedAt      time.Time
	CompletedAt    time.Time
}

// Percentage returns the attempt score as a percentage, rounded to one
// decimal place.
func (a *QuizAttempt) Percentage() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return float64(int(float64(a.Score)/float64(a.TotalQuestions)*1000+0.5)) / 10
}

// NotificationType classifies notifications about social interactions on a
// user's quizzes.
type NotificationType string

const (
	NotificationQuizCompleted NotificationType = "quiz_completed"
	NotificationQuizSaved     NotificationType = "quiz_saved"
	NotificationSystem        NotificationType = "system"
)

// Notification is a message delivered to a quiz creator.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}

// QuizRepository is the persistence port for quizzes and their questions.
type QuizRepository interface {
	// CreateQuizWithQuestions persists a quiz and all of its questions.
	// Callers are expected to run it inside TransactionManager.WithTransaction
	// so either every row is written or none.
	CreateQuizWithQuestions(ctx context.Context, quiz *Quiz) error
	GetQuizBySlug(ctx context.Context, slug string) (*Quiz, error)
	ListRecentQuizzes(ctx context.Context, limit int) ([]*Quiz, error)
	SaveQuizForUser(ctx context.Context, quizID, userID string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// AttemptRepository is the persistence port for quiz attempts.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	ListAttemptsByUser(ctx context.Context, userID string, limit int) ([]*QuizAttempt, error)
}

// NotificationRepository is the persistence port for notifications.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
