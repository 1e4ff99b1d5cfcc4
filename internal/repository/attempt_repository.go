package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAttemptDatabaseAdapter creates a new instance of AttemptDatabaseAdapter
func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

// CreateAttempt implements domain.AttemptRepository.
func (a *AttemptDatabaseAdapter) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	exec := getExecutor(ctx, a.db)

	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}

	answers, err := marshalAnswers(attempt.Answers)
	if err != nil {
		return err
	}

	query := `INSERT INTO quiz_attempts
		(id, quiz_id, user_id, score, total_questions, answers, started_at, completed_at)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	if _, err := exec.ExecContext(ctx, query,
		attempt.ID, attempt.QuizID, attempt.UserID, attempt.Score,
		attempt.TotalQuestions, answers, attempt.StartedAt, attempt.CompletedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quiz attempt: %w", err)
	}
	return nil
}

// ListAttemptsByUser implements domain.AttemptRepository.
func (a *AttemptDatabaseAdapter) ListAttemptsByUser(ctx context.Context, userID string, limit int) ([]*domain.QuizAttempt, error) {
	exec := getExecutor(ctx, a.db)

	var modelAttempts []models.QuizAttempt
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		user_id "user_id",
		score "score",
		total_questions "total_questions",
		answers "answers",
		started_at "started_at",
		completed_at "completed_at"
	FROM quiz_attempts
	WHERE user_id = :1
	ORDER BY started_at DESC
	FETCH FIRST :2 ROWS ONLY`

	if err := exec.SelectContext(ctx, &modelAttempts, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list attempts for user: %w", err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(modelAttempts))
	for i := range modelAttempts {
		attempt, err := toDomainAttempt(&modelAttempts[i])
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

func toDomainAttempt(m *models.QuizAttempt) (*domain.QuizAttempt, error) {
	answers := map[string]string{}
	if m.Answers != "" {
		if err := json.Unmarshal([]byte(m.Answers), &answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored answers: %w", err)
		}
	}
	attempt := &domain.QuizAttempt{
		ID:             m.ID,
		QuizID:         m.QuizID,
		UserID:         m.UserID,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Answers:        answers,
		StartedAt:      m.StartedAt,
	}
	if m.CompletedAt.Valid {
		attempt.CompletedAt = m.CompletedAt.Time
	}
	return attempt, nil
}
