package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `
	id "id",
	slug "slug",
	title "title",
	description "description",
	creator_id "creator_id",
	is_ai_generated "is_ai_generated",
	created_at "created_at",
	updated_at "updated_at"`

const questionColumns = `
	id "id",
	quiz_id "quiz_id",
	question_text "question_text",
	option_a "option_a",
	option_b "option_b",
	option_c "option_c",
	option_d "option_d",
	correct_answer "correct_answer",
	explanation "explanation",
	order_no "order_no"`

// CreateQuizWithQuestions implements domain.QuizRepository. It derives a
// unique slug from the title and inserts the quiz row plus one row per
// question. Run it inside TransactionManager.WithTransaction so the insert
// is all-or-nothing.
func (a *QuizDatabaseAdapter) CreateQuizWithQuestions(ctx context.Context, quiz *domain.Quiz) error {
	exec := getExecutor(ctx, a.db)

	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	slug, err := a.uniqueSlug(ctx, quiz.Title)
	if err != nil {
		return err
	}
	quiz.Slug = slug

	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	isAI := 0
	if quiz.IsAIGenerated {
		isAI = 1
	}

	insertQuiz := `INSERT INTO quizzes
		(id, slug, title, description, creator_id, is_ai_generated, created_at, updated_at)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	if _, err := exec.ExecContext(ctx, insertQuiz,
		quiz.ID, quiz.Slug, quiz.Title, quiz.Description,
		nullString(quiz.CreatorID), isAI, quiz.CreatedAt, quiz.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	insertQuestion := `INSERT INTO questions
		(id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, explanation, order_no)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`

	for i, q := range quiz.Questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.QuizID = quiz.ID
		q.Order = i
		if _, err := exec.ExecContext(ctx, insertQuestion,
			q.ID, q.QuizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectAnswer, q.Explanation, q.Order,
		); err != nil {
			return fmt.Errorf("failed to insert question %d: %w", i, err)
		}
	}

	return nil
}

// GetQuizBySlug implements domain.QuizRepository. Returns (nil, nil) when no
// quiz matches.
func (a *QuizDatabaseAdapter) GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error) {
	exec := getExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE slug = :1`
	if err := exec.GetContext(ctx, &modelQuiz, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by slug: %w", err)
	}

	var modelQuestions []models.Question
	questionQuery := `SELECT ` + questionColumns + ` FROM questions WHERE quiz_id = :1 ORDER BY order_no`
	if err := exec.SelectContext(ctx, &modelQuestions, questionQuery, modelQuiz.ID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz: %w", err)
	}

	quiz := toDomainQuiz(&modelQuiz)
	for _, mq := range modelQuestions {
		quiz.Questions = append(quiz.Questions, toDomainQuestion(&mq))
	}
	return quiz, nil
}

// ListRecentQuizzes implements domain.QuizRepository. Questions are not
// loaded for listings.
func (a *QuizDatabaseAdapter) ListRecentQuizzes(ctx context.Context, limit int) ([]*domain.Quiz, error) {
	exec := getExecutor(ctx, a.db)

	var modelQuizzes []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	ORDER BY created_at DESC
	FETCH FIRST :1 ROWS ONLY`

	if err := exec.SelectContext(ctx, &modelQuizzes, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// SaveQuizForUser implements domain.QuizRepository.
func (a *QuizDatabaseAdapter) SaveQuizForUser(ctx context.Context, quizID, userID string) error {
	exec := getExecutor(ctx, a.db)

	query := `INSERT INTO saved_quizzes (id, quiz_id, user_id, created_at)
	SELECT :1, :2, :3, :4 FROM dual
	WHERE NOT EXISTS (
		SELECT 1 FROM saved_quizzes WHERE quiz_id = :5 AND user_id = :6
	)`

	if _, err := exec.ExecContext(ctx, query,
		util.NewULID(), quizID, userID, time.Now(), quizID, userID,
	); err != nil {
		return fmt.Errorf("failed to save quiz for user: %w", err)
	}
	return nil
}

// SlugExists implements domain.QuizRepository.
func (a *QuizDatabaseAdapter) SlugExists(ctx context.Context, slug string) (bool, error) {
	exec := getExecutor(ctx, a.db)

	var count int
	query := `SELECT COUNT(*) "count" FROM quizzes WHERE slug = :1`
	if err := exec.GetContext(ctx, &count, query, slug); err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return count > 0, nil
}

// uniqueSlug derives a slug from the title, appending a numeric suffix until
// it no longer collides with an existing quiz.
func (a *QuizDatabaseAdapter) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "quiz"
	}
	slug := base
	for counter := 1; ; counter++ {
		exists, err := a.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:            m.ID,
		Slug:          m.Slug,
		Title:         m.Title,
		Description:   m.Description.String,
		CreatorID:     m.CreatorID.String,
		IsAIGenerated: m.IsAIGenerated == 1,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Text:          m.Text,
		OptionA:       m.OptionA,
		OptionB:       m.OptionB,
		OptionC:       m.OptionC,
		OptionD:       m.OptionD,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Order:         m.OrderNo,
	}
}

// marshalAnswers serializes an answers map for storage.
func marshalAnswers(answers map[string]string) (string, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to marshal answers: %w", err)
	}
	return string(data), nil
}
