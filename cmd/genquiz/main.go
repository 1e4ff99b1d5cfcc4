package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quizforge/internal/adapter/quizgen"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/repository"

	"go.uber.org/zap"
)

// genquiz generates a quiz from the command line and stores it, bypassing the
// HTTP layer. Useful for pre-populating an instance with curated topics.
func main() {
	topic := flag.String("topic", "", "programming or technology topic to generate a quiz for")
	numQuestions := flag.Int("n", 10, "number of questions")
	difficulty := flag.String("difficulty", "medium", "difficulty: easy, medium or hard")
	creator := flag.String("creator", "", "creator user ID recorded on the quiz")
	flag.Parse()

	if *topic == "" {
		fmt.Println("usage: genquiz -topic <topic> [-n 10] [-difficulty medium] [-creator <user-id>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	client, err := quizgen.NewOpenAIClient(cfg.Generation, log)
	if err != nil {
		log.Fatal("Failed to create generation client", zap.Error(err))
	}
	generator := quizgen.NewGenerator(client, log)

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	quizRepo := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	ctx := context.Background()
	generated, err := generator.GenerateQuiz(ctx, *topic, *numQuestions, domain.ParseDifficulty(*difficulty))
	if err != nil {
		log.Fatal("Quiz generation failed", zap.String("topic", *topic), zap.Error(err))
	}

	quiz := &domain.Quiz{
		Title:         generated.Title,
		Description:   generated.Description,
		CreatorID:     *creator,
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

	err = txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return quizRepo.CreateQuizWithQuestions(txCtx, quiz)
	})
	if err != nil {
		log.Fatal("Failed to store generated quiz", zap.Error(err))
	}

	log.Info("Stored generated quiz",
		zap.String("slug", quiz.Slug),
		zap.String("title", quiz.Title),
		zap.Int("questions", len(quiz.Questions)))
	fmt.Println(quiz.Slug)
}
