package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/domain"
	"quizforge/internal/logger"
	"quizforge/internal/repository"

	"go.uber.org/zap"
)

// seedQuiz mirrors the structure of the seed data file.
type seedQuiz struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
	Questions   []struct {
		Text          string `json:"text"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectAnswer string `json:"correct_answer"`
		Explanation   string `json:"explanation"`
	} `json:"questions"`
}

func main() {
	seedFile := flag.String("file", "configs/seed_data/initial_quizzes.json", "path to the seed data file")
	flag.Parse()

	ctx := context.Background()
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

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	data, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	var seeds []seedQuiz
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatal("Failed to parse seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	log.Info("Loaded seed data", zap.String("path", *seedFile), zap.Int("quizzes", len(seeds)))

	quizRepo := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	seeded := 0
	for _, s := range seeds {
		quiz := toDomainQuiz(s)
		if err := quiz.Validate(); err != nil {
			log.Error("Skipping invalid seed quiz", zap.String("title", s.Title), zap.Error(err))
			continue
		}

		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return quizRepo.CreateQuizWithQuestions(txCtx, quiz)
		})
		if err != nil {
			log.Error("Failed to seed quiz", zap.String("title", s.Title), zap.Error(err))
			continue
		}
		log.Info("Seeded quiz", zap.String("slug", quiz.Slug), zap.Int("questions", len(quiz.Questions)))
		seeded++
	}

	log.Info("Seeding finished", zap.Int("seeded", seeded), zap.Int("total", len(seeds)))
}

func toDomainQuiz(s seedQuiz) *domain.Quiz {
	quiz := &domain.Quiz{
		Title:       s.Title,
		Description: s.Description,
		CreatorID:   s.CreatorID,
	}
	for _, q := range s.Questions {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return quiz
}
