package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testGeneratedQuiz() *domain.GeneratedQuiz {
	return &domain.GeneratedQuiz{
		Title:       "Python Loops Quiz",
		Description: "Test your knowledge of Python loops",
		Questions: []domain.GeneratedQuestion{
			{
				Text:          "Which keyword starts a loop over a sequence?",
				OptionA:       "for",
				OptionB:       "loop",
				OptionC:       "each",
				OptionD:       "iter",
				CorrectAnswer: "A",
				Explanation:   "Python iterates sequences with for.",
			},
			{
				Text:          "What does break do?",
				OptionA:       "Skips one iteration",
				OptionB:       "Exits the loop",
				OptionC:       "Restarts the loop",
				OptionD:       "Raises an error",
				CorrectAnswer: "B",
			},
		},
	}
}

func testServiceConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.GeneratedQuizTTL = 10 * time.Minute
	return cfg
}

func TestGenerateAndStoreQuiz_CacheMiss(t *testing.T) {
	generated := testGeneratedQuiz()

	generator := new(MockQuizGenerationService)
	generator.On("GenerateQuiz", mock.Anything, "Python loops", 2, domain.DifficultyEasy).
		Return(generated, nil).Once()

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return("", domain.ErrCacheMiss).Once()
	cacheMock.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 10*time.Minute).
		Return(nil).Once()

	repo := new(MockQuizRepository)
	repo.On("CreateQuizWithQuestions", mock.Anything, mock.AnythingOfType("*domain.Quiz")).
		Return(nil).Once()

	txManager := new(MockTransactionManager)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())
	quiz, err := svc.GenerateAndStoreQuiz(context.Background(), "Python loops", 2, "easy", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Python Loops Quiz", quiz.Title)
	assert.Equal(t, "user-1", quiz.CreatorID)
	assert.True(t, quiz.IsAIGenerated)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "A", quiz.Questions[0].CorrectAnswer)

	generator.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
	repo.AssertExpectations(t)
	txManager.AssertExpectations(t)
}

// A cache hit skips the generation backend entirely but still persists a new
// quiz record for the caller.
func TestGenerateAndStoreQuiz_CacheHit(t *testing.T) {
	cached, err := json.Marshal(testGeneratedQuiz())
	require.NoError(t, err)

	generator := new(MockQuizGenerationService)

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return(string(cached), nil).Once()

	repo := new(MockQuizRepository)
	repo.On("CreateQuizWithQuestions", mock.Anything, mock.AnythingOfType("*domain.Quiz")).
		Return(nil).Once()

	txManager := new(MockTransactionManager)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())
	quiz, err := svc.GenerateAndStoreQuiz(context.Background(), "Python loops", 2, "easy", "user-2")

	require.NoError(t, err)
	assert.Equal(t, "Python Loops Quiz", quiz.Title)
	assert.Equal(t, "user-2", quiz.CreatorID)
	generator.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cacheMock.AssertExpectations(t)
	repo.AssertExpectations(t)
}

// A corrupt cache entry is deleted and the quiz regenerated.
func TestGenerateAndStoreQuiz_CorruptCacheEntry(t *testing.T) {
	generator := new(MockQuizGenerationService)
	generator.On("GenerateQuiz", mock.Anything, "Python loops", 2, domain.DifficultyEasy).
		Return(testGeneratedQuiz(), nil).Once()

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return("{not json", nil).Once()
	cacheMock.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Return(nil).Once()
	cacheMock.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Once()

	repo := new(MockQuizRepository)
	repo.On("CreateQuizWithQuestions", mock.Anything, mock.Anything).Return(nil).Once()

	txManager := new(MockTransactionManager)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())
	_, err := svc.GenerateAndStoreQuiz(context.Background(), "Python loops", 2, "easy", "user-1")

	require.NoError(t, err)
	generator.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestGenerateAndStoreQuiz_GenerationErrorPassesThrough(t *testing.T) {
	genErr := domain.NewTopicRejectedError()

	generator := new(MockQuizGenerationService)
	generator.On("GenerateQuiz", mock.Anything, "cooking", 5, domain.DifficultyMedium).
		Return(nil, genErr).Once()

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return("", domain.ErrCacheMiss).Once()

	repo := new(MockQuizRepository)
	txManager := new(MockTransactionManager)

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())
	quiz, err := svc.GenerateAndStoreQuiz(context.Background(), "cooking", 5, "medium", "user-1")

	require.Error(t, err)
	assert.Nil(t, quiz)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTopicRejected, domainErr.Code)
	repo.AssertNotCalled(t, "CreateQuizWithQuestions", mock.Anything, mock.Anything)
	txManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestGenerateAndStoreQuiz_PersistenceFailure(t *testing.T) {
	generator := new(MockQuizGenerationService)
	generator.On("GenerateQuiz", mock.Anything, "Go channels", 2, domain.DifficultyMedium).
		Return(testGeneratedQuiz(), nil).Once()

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return("", domain.ErrCacheMiss).Once()
	cacheMock.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Return(nil).Once()

	repo := new(MockQuizRepository)
	txManager := new(MockTransactionManager)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).
		Return(errors.New("ORA-00001")).Once()

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())
	quiz, err := svc.GenerateAndStoreQuiz(context.Background(), "Go channels", 2, "medium", "user-1")

	require.Error(t, err)
	assert.Nil(t, quiz)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

// Identical concurrent requests collapse into one backend call.
func TestGenerateAndStoreQuiz_Singleflight(t *testing.T) {
	generator := new(MockQuizGenerationService)
	generator.On("GenerateQuiz", mock.Anything, "Python loops", 2, domain.DifficultyEasy).
		Run(func(args mock.Arguments) {
			time.Sleep(50 * time.Millisecond)
		}).
		Return(testGeneratedQuiz(), nil).Once()

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.AnythingOfType("string")).
		Return("", domain.ErrCacheMiss)
	cacheMock.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Return(nil)

	repo := new(MockQuizRepository)
	repo.On("CreateQuizWithQuestions", mock.Anything, mock.Anything).Return(nil)

	txManager := new(MockTransactionManager)
	txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

	svc := NewGenerationService(generator, repo, txManager, cacheMock, testServiceConfig())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.GenerateAndStoreQuiz(context.Background(), "Python loops", 2, "easy", "user-1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	generator.AssertNumberOfCalls(t, "GenerateQuiz", 1)
}

func TestGenerationCacheKey_Normalization(t *testing.T) {
	base := generationCacheKey("Python loops", 5, "easy")

	assert.Equal(t, base, generationCacheKey("  python LOOPS  ", 5, "EASY"))
	assert.NotEqual(t, base, generationCacheKey("Python loops", 6, "easy"))
	assert.NotEqual(t, base, generationCacheKey("Python loops", 5, "hard"))
	assert.True(t, strings.HasPrefix(base, "quizforge:generation:quiz:"))
}
