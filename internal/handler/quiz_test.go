package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Logger.Level = "debug"
	cfg.Logger.Env = "test"
	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockQuizService struct {
	mock.Mock
}

func (m *mockQuizService) ListQuizzes(ctx context.Context, limit int) ([]dto.QuizSummaryResponse, error) {
	args := m.Called(ctx, limit)
	if quizzes, ok := args.Get(0).([]dto.QuizSummaryResponse); ok {
		return quizzes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) GetQuizBySlug(ctx context.Context, slug string) (*dto.QuizDetailResponse, error) {
	args := m.Called(ctx, slug)
	if quiz, ok := args.Get(0).(*dto.QuizDetailResponse); ok {
		return quiz, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) SubmitAttempt(ctx context.Context, slug, userID string, req *dto.SubmitAttemptRequest) (*dto.AttemptResponse, error) {
	args := m.Called(ctx, slug, userID, req)
	if resp, ok := args.Get(0).(*dto.AttemptResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) ListAttempts(ctx context.Context, userID string, limit int) ([]dto.AttemptSummaryResponse, error) {
	args := m.Called(ctx, userID, limit)
	if attempts, ok := args.Get(0).([]dto.AttemptSummaryResponse); ok {
		return attempts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) SaveQuiz(ctx context.Context, slug, userID string) error {
	args := m.Called(ctx, slug, userID)
	return args.Error(0)
}

type mockGenerationService struct {
	mock.Mock
}

func (m *mockGenerationService) GenerateAndStoreQuiz(ctx context.Context, topic string, numQuestions int, difficulty string, creatorID string) (*domain.Quiz, error) {
	args := m.Called(ctx, topic, numQuestions, difficulty, creatorID)
	if quiz, ok := args.Get(0).(*domain.Quiz); ok {
		return quiz, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestApp(quizSvc *mockQuizService, genSvc *mockGenerationService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewQuizHandler(quizSvc, genSvc)

	api := app.Group("/api")
	api.Post("/quizzes/generate", h.GenerateQuiz)
	api.Get("/quizzes", h.ListQuizzes)
	api.Get("/quizzes/:slug", h.GetQuiz)
	api.Post("/quizzes/:slug/attempts", h.SubmitAttempt)
	api.Post("/quizzes/:slug/save", h.SaveQuiz)
	api.Get("/attempts", h.ListAttempts)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func testDetail() *dto.QuizDetailResponse {
	return &dto.QuizDetailResponse{
		Slug:          "python-loops-quiz",
		Title:         "Python Loops Quiz",
		IsAIGenerated: true,
		CreatedAt:     time.Now(),
		Questions: []dto.QuestionResponse{
			{ID: "q-1", Text: "Which keyword starts a loop?", OptionA: "for", OptionB: "loop", OptionC: "each", OptionD: "iter"},
		},
	}
}

func TestGenerateQuiz(t *testing.T) {
	quizSvc := new(mockQuizService)
	genSvc := new(mockGenerationService)

	genSvc.On("GenerateAndStoreQuiz", mock.Anything, "Python loops", 5, "easy", "user-1").
		Return(&domain.Quiz{Slug: "python-loops-quiz"}, nil).Once()
	quizSvc.On("GetQuizBySlug", mock.Anything, "python-loops-quiz").
		Return(testDetail(), nil).Once()

	app := newTestApp(quizSvc, genSvc)
	req := jsonRequest(http.MethodPost, "/api/quizzes/generate", dto.GenerateQuizRequest{
		Topic: "Python loops", NumQuestions: 5, Difficulty: "easy",
	})
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.QuizDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "python-loops-quiz", body.Slug)
	require.Len(t, body.Questions, 1)

	genSvc.AssertExpectations(t)
	quizSvc.AssertExpectations(t)
}

func TestGenerateQuiz_ValidationFailure(t *testing.T) {
	quizSvc := new(mockQuizService)
	genSvc := new(mockGenerationService)

	app := newTestApp(quizSvc, genSvc)
	req := jsonRequest(http.MethodPost, "/api/quizzes/generate", dto.GenerateQuizRequest{
		Topic: "", NumQuestions: 99,
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	genSvc.AssertNotCalled(t, "GenerateAndStoreQuiz",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz_TopicRejected(t *testing.T) {
	quizSvc := new(mockQuizService)
	genSvc := new(mockGenerationService)

	genSvc.On("GenerateAndStoreQuiz", mock.Anything, "best pizza toppings", 5, "easy", "").
		Return(nil, domain.NewTopicRejectedError()).Once()

	app := newTestApp(quizSvc, genSvc)
	req := jsonRequest(http.MethodPost, "/api/quizzes/generate", dto.GenerateQuizRequest{
		Topic: "best pizza toppings", NumQuestions: 5, Difficulty: "easy",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeTopicRejected), body.Code)
	assert.Contains(t, body.Message, "programming or technology-related topic")
}

func TestListQuizzes(t *testing.T) {
	quizSvc := new(mockQuizService)
	quizSvc.On("ListQuizzes", mock.Anything, 20).
		Return([]dto.QuizSummaryResponse{{Slug: "python-loops-quiz", Title: "Python Loops Quiz"}}, nil).Once()

	app := newTestApp(quizSvc, new(mockGenerationService))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []dto.QuizSummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "python-loops-quiz", body[0].Slug)
}

func TestGetQuiz_NotFound(t *testing.T) {
	quizSvc := new(mockQuizService)
	quizSvc.On("GetQuizBySlug", mock.Anything, "missing").
		Return(nil, domain.NewQuizNotFoundError("missing")).Once()

	app := newTestApp(quizSvc, new(mockGenerationService))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/missing", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAttempt(t *testing.T) {
	quizSvc := new(mockQuizService)
	quizSvc.On("SubmitAttempt", mock.Anything, "python-loops-quiz", "user-1",
		mock.MatchedBy(func(req *dto.SubmitAttemptRequest) bool {
			return req.Answers["q-1"] == "A"
		})).
		Return(&dto.AttemptResponse{Score: 1, TotalQuestions: 1, Percentage: 100}, nil).Once()

	app := newTestApp(quizSvc, new(mockGenerationService))
	req := jsonRequest(http.MethodPost, "/api/quizzes/python-loops-quiz/attempts", dto.SubmitAttemptRequest{
		Answers: map[string]string{"q-1": "A"},
	})
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AttemptResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 100.0, body.Percentage)
	quizSvc.AssertExpectations(t)
}

func TestSubmitAttempt_InvalidAnswers(t *testing.T) {
	quizSvc := new(mockQuizService)

	app := newTestApp(quizSvc, new(mockGenerationService))
	req := jsonRequest(http.MethodPost, "/api/quizzes/python-loops-quiz/attempts", dto.SubmitAttemptRequest{
		Answers: map[string]string{"q-1": "Z"},
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	quizSvc.AssertNotCalled(t, "SubmitAttempt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListAttempts(t *testing.T) {
	quizSvc := new(mockQuizService)
	quizSvc.On("ListAttempts", mock.Anything, "user-1", 20).
		Return([]dto.AttemptSummaryResponse{
			{AttemptID: "a-1", QuizID: "quiz-1", Score: 8, TotalQuestions: 10, Percentage: 80},
		}, nil).Once()

	app := newTestApp(quizSvc, new(mockGenerationService))
	req := httptest.NewRequest(http.MethodGet, "/api/attempts", nil)
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []dto.AttemptSummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, 80.0, body[0].Percentage)
}

func TestListAttempts_MissingIdentity(t *testing.T) {
	quizSvc := new(mockQuizService)

	app := newTestApp(quizSvc, new(mockGenerationService))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/attempts", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	quizSvc.AssertNotCalled(t, "ListAttempts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveQuiz(t *testing.T) {
	quizSvc := new(mockQuizService)
	quizSvc.On("SaveQuiz", mock.Anything, "python-loops-quiz", "user-1").Return(nil).Once()

	app := newTestApp(quizSvc, new(mockGenerationService))
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/python-loops-quiz/save", nil)
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	quizSvc.AssertExpectations(t)
}

func TestSaveQuiz_MissingIdentity(t *testing.T) {
	quizSvc := new(mockQuizService)

	app := newTestApp(quizSvc, new(mockGenerationService))
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/quizzes/python-loops-quiz/save", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	quizSvc.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything, mock.Anything)
}
