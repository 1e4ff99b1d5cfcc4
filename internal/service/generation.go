package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GenerationService drives quiz generation end to end: run the generation
// pipeline, persist the validated result atomically, and return the stored
// quiz.
type GenerationService interface {
	GenerateAndStoreQuiz(ctx context.Context, topic string, numQuestions int, difficulty string, creatorID string) (*domain.Quiz, error)
}

type generationService struct {
	generator domain.QuizGenerationService
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cfg       *config.Config
	sfGroup   singleflight.Group
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	generator domain.QuizGenerationService,
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) GenerationService {
	return &generationService{
		generator: generator,
		repo:      repo,
		txManager: txManager,
		cache:     cacheAdapter,
		cfg:       cfg,
	}
}

// GenerateAndStoreQuiz implements GenerationService. Identical concurrent
// requests collapse into a single backend call via singleflight, and recent
// generation results are served from the cache; every request still gets its
// own persisted quiz record.
func (s *generationService) GenerateAndStoreQuiz(ctx context.Context, topic string, numQuestions int, difficulty string, creatorID string) (*domain.Quiz, error) {
	generated, err := s.generateCached(ctx, topic, numQuestions, difficulty)
	if err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		Title:         generated.Title,
		Description:   generated.Description,
		CreatorID:     creatorID,
		IsAIGenerated: true,
	}
	for _, gq := range generated.Questions {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			Text:          gq.Text,
			OptionA:       gq.OptionA,
			OptionB:       gq.OptionB,
			OptionC:       gq.OptionC,
			OptionD:       gq.OptionD,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
		})
	}

	// Quiz plus questions land in one transaction: all rows or none.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.CreateQuizWithQuestions(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to store generated quiz", err)
	}

	logger.Get().Info("Stored generated quiz",
		zap.String("slug", quiz.Slug),
		zap.Int("num_questions", len(quiz.Questions)))
	return quiz, nil
}

func (s *generationService) generateCached(ctx context.Context, topic string, numQuestions int, difficulty string) (*domain.GeneratedQuiz, error) {
	key := generationCacheKey(topic, numQuestions, difficulty)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var quiz domain.GeneratedQuiz
		if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
			logger.Get().Debug("Serving generated quiz from cache", zap.String("key", key))
			return &quiz, nil
		}
		// A corrupt cache entry is dropped and regenerated.
		_ = s.cache.Delete(ctx, key)
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Generation cache lookup failed", zap.Error(err))
	}

	result, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		quiz, err := s.generator.GenerateQuiz(ctx, topic, numQuestions, domain.ParseDifficulty(difficulty))
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(quiz); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.cfg.Cache.GeneratedQuizTTL); err != nil {
				logger.Get().Warn("Failed to cache generated quiz", zap.Error(err))
			}
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.GeneratedQuiz), nil
}

// generationCacheKey derives a stable key from the normalized request.
func generationCacheKey(topic string, numQuestions int, difficulty string) string {
	normalized := fmt.Sprintf("%s|%d|%s",
		strings.ToLower(strings.TrimSpace(topic)),
		numQuestions,
		strings.ToLower(strings.TrimSpace(difficulty)))
	sum := sha256.Sum256([]byte(normalized))
	return cache.GenerateCacheKey("generation", "quiz", hex.EncodeToString(sum[:]))
}
