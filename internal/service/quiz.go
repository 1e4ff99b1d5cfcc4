package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/markup"

	"go.uber.org/zap"
)

// QuizService defines quiz browsing, attempt, and save operations.
type QuizService interface {
	ListQuizzes(ctx context.Context, limit int) ([]dto.QuizSummaryResponse, error)
	GetQuizBySlug(ctx context.Context, slug string) (*dto.QuizDetailResponse, error)
	SubmitAttempt(ctx context.Context, slug, userID string, req *dto.SubmitAttemptRequest) (*dto.AttemptResponse, error)
	ListAttempts(ctx context.Context, userID string, limit int) ([]dto.AttemptSummaryResponse, error)
	SaveQuiz(ctx context.Context, slug, userID string) error
}

type quizService struct {
	repo          domain.QuizRepository
	attempts      domain.AttemptRepository
	notifications domain.NotificationRepository
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	attempts domain.AttemptRepository,
	notifications domain.NotificationRepository,
) QuizService {
	return &quizService{
		repo:          repo,
		attempts:      attempts,
		notifications: notifications,
	}
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context, limit int) ([]dto.QuizSummaryResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	quizzes, err := s.repo.ListRecentQuizzes(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	summaries := make([]dto.QuizSummaryResponse, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, dto.QuizSummaryResponse{
			Slug:          q.Slug,
			Title:         q.Title,
			Description:   q.Description,
			IsAIGenerated: q.IsAIGenerated,
			CreatedAt:     q.CreatedAt,
		})
	}
	return summaries, nil
}

// GetQuizBySlug implements QuizService
func (s *quizService) GetQuizBySlug(ctx context.Context, slug string) (*dto.QuizDetailResponse, error) {
	quiz, err := s.repo.GetQuizBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(slug)
	}
	return toQuizDetailResponse(quiz), nil
}

// SubmitAttempt implements QuizService. Answers are graded against the
// stored correct options; the attempt is recorded complete and the quiz
// creator is notified, unless they graded their own quiz.
func (s *quizService) SubmitAttempt(ctx context.Context, slug, userID string, req *dto.SubmitAttemptRequest) (*dto.AttemptResponse, error) {
	quiz, err := s.repo.GetQuizBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(slug)
	}

	score := 0
	results := make([]dto.QuestionResult, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		// Stored correct answers are always uppercase; submitted answers are
		// accepted case-insensitively, so normalize before comparing.
		answer := strings.ToUpper(strings.TrimSpace(req.Answers[q.ID]))
		correct := answer == q.CorrectAnswer
		if correct {
			score++
		}
		results = append(results, dto.QuestionResult{
			QuestionID:    q.ID,
			Correct:       correct,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   markup.Render(q.Explanation),
		})
	}

	attempt := &domain.QuizAttempt{
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Answers:        req.Answers,
		StartedAt:      time.Now(),
		CompletedAt:    time.Now(),
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("Failed to record attempt", err)
	}

	s.notifyCreator(ctx, quiz, userID, domain.NotificationQuizCompleted,
		fmt.Sprintf("Someone completed your quiz: %s", quiz.Title))

	return &dto.AttemptResponse{
		AttemptID:      attempt.ID,
		QuizSlug:       quiz.Slug,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage(),
		Results:        results,
	}, nil
}

// ListAttempts implements QuizService
func (s *quizService) ListAttempts(ctx context.Context, userID string, limit int) ([]dto.AttemptSummaryResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	attempts, err := s.attempts.ListAttemptsByUser(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list attempts", err)
	}

	summaries := make([]dto.AttemptSummaryResponse, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, dto.AttemptSummaryResponse{
			AttemptID:      a.ID,
			QuizID:         a.QuizID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     a.Percentage(),
			CompletedAt:    a.CompletedAt,
		})
	}
	return summaries, nil
}

// SaveQuiz implements QuizService
func (s *quizService) SaveQuiz(ctx context.Context, slug, userID string) error {
	quiz, err := s.repo.GetQuizBySlug(ctx, slug)
	if err != nil {
		return domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return domain.NewQuizNotFoundError(slug)
	}

	if err := s.repo.SaveQuizForUser(ctx, quiz.ID, userID); err != nil {
		return domain.NewInternalError("Failed to save quiz", err)
	}

	s.notifyCreator(ctx, quiz, userID, domain.NotificationQuizSaved,
		fmt.Sprintf("Someone saved your quiz: %s", quiz.Title))
	return nil
}

// notifyCreator emits a notification to the quiz creator. Notification
// failures are logged, never surfaced; they must not fail the operation that
// triggered them.
func (s *quizService) notifyCreator(ctx context.Context, quiz *domain.Quiz, actorID string, nType domain.NotificationType, message string) {
	if quiz.CreatorID == "" || quiz.CreatorID == actorID {
		return
	}
	n := &domain.Notification{
		RecipientID: quiz.CreatorID,
		Type:        nType,
		Message:     message,
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		logger.Get().Warn("Failed to create notification",
			zap.String("quiz_id", quiz.ID),
			zap.String("type", string(nType)),
			zap.Error(err))
	}
}

// toQuizDetailResponse maps a quiz to its detail DTO. Question and option
// text pass through the markup renderer so embedded code annotations become
// safe, styled HTML.
func toQuizDetailResponse(quiz *domain.Quiz) *dto.QuizDetailResponse {
	resp := &dto.QuizDetailResponse{
		Slug:          quiz.Slug,
		Title:         quiz.Title,
		Description:   quiz.Description,
		IsAIGenerated: quiz.IsAIGenerated,
		CreatedAt:     quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:      q.ID,
			Text:    markup.Render(q.Text),
			OptionA: markup.Render(q.OptionA),
			OptionB: markup.Render(q.OptionB),
			OptionC: markup.Render(q.OptionC),
			OptionD: markup.Render(q.OptionD),
			Order:   q.Order,
		})
	}
	return resp
}
