package quizgen

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"quizforge/internal/domain"

	"go.uber.org/zap"
)

// Generator composes the generation pipeline: topic gate, prompt
// construction, backend call, response validation. Every failure path yields
// a single typed error; a half-populated quiz is never returned.
type Generator struct {
	client domain.TextGenerator
	logger *zap.Logger
}

// NewGenerator creates a Generator backed by the given text generation
// client.
func NewGenerator(client domain.TextGenerator, logger *zap.Logger) *Generator {
	return &Generator{
		client: client,
		logger: logger,
	}
}

// GenerateQuiz implements domain.QuizGenerationService.
func (g *Generator) GenerateQuiz(ctx context.Context, topic string, numQuestions int, difficulty domain.Difficulty) (*domain.GeneratedQuiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return nil, domain.NewInvalidInputError("topic must be at most 200 characters")
	}

	if !IsValidTopic(topic) {
		g.logger.Info("Rejected non-technology topic", zap.String("topic", topic))
		return nil, domain.NewTopicRejectedError()
	}

	req := NewGenerationRequest(topic, numQuestions, difficulty)

	raw, err := g.client.Complete(ctx, req.SystemInstruction(), req.Prompt())
	if err != nil {
		g.logger.Error("Generation backend failed",
			zap.String("topic", topic),
			zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}

	quiz, err := ParseQuizResponse(raw)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			g.logger.Error("Generation backend produced unusable output",
				zap.String("topic", topic),
				zap.String("kind", string(parseErr.Kind)),
				zap.String("field", parseErr.Field),
				zap.Int("question", parseErr.Question))
		}
		return nil, domain.NewUnusableOutputError(err)
	}

	g.logger.Info("Generated quiz",
		zap.String("topic", topic),
		zap.String("title", quiz.Title),
		zap.Int("num_questions", len(quiz.Questions)))
	return quiz, nil
}

var _ domain.QuizGenerationService = (*Generator)(nil)
