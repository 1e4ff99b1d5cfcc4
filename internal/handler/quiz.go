package handler

import (
	"quizforge/internal/dto"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// userIDHeader carries the requester identity set by the upstream auth proxy.
const userIDHeader = "X-User-ID"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService       service.QuizService
	generationService service.GenerationService
	validator         *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, generationService service.GenerationService) *QuizHandler {
	return &QuizHandler{
		quizService:       quizService,
		generationService: generationService,
		validator:         validation.NewValidator(),
	}
}

// GenerateQuiz handles POST /api/quizzes/generate
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req.Topic, req.NumQuestions, req.Difficulty); len(errs) > 0 {
		return errs
	}

	quiz, err := h.generationService.GenerateAndStoreQuiz(
		c.UserContext(), req.Topic, req.NumQuestions, req.Difficulty, c.Get(userIDHeader))
	if err != nil {
		return err
	}

	detail, err := h.quizService.GetQuizBySlug(c.UserContext(), quiz.Slug)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// ListQuizzes handles GET /api/quizzes
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	quizzes, err := h.quizService.ListQuizzes(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz handles GET /api/quizzes/:slug
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuizBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitAttempt handles POST /api/quizzes/:slug/attempts
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateSubmitAttemptRequest(req.Answers); len(errs) > 0 {
		return errs
	}

	result, err := h.quizService.SubmitAttempt(c.UserContext(), c.Params("slug"), c.Get(userIDHeader), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListAttempts handles GET /api/attempts
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user identity is required")
	}

	attempts, err := h.quizService.ListAttempts(c.UserContext(), userID, c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}

// SaveQuiz handles POST /api/quizzes/:slug/save
func (h *QuizHandler) SaveQuiz(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user identity is required")
	}

	if err := h.quizService.SaveQuiz(c.UserContext(), c.Params("slug"), userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
