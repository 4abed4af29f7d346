package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/quizforge/quiz-api/config"
	"github.com/quizforge/quiz-api/internal/domain/entity"
	pginfra "github.com/quizforge/quiz-api/internal/infrastructure/postgres"
)

// Seeds a handful of demo quiz questions for local development.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := pginfra.NewQuestionRepository(pool)

	seed := []entity.Question{
		{
			QuestionText: "How do you prefer to spend a free evening?",
			Answers: []entity.Answer{
				{Text: "Reading at home", Score: 1},
				{Text: "Dinner with a few friends", Score: 2},
				{Text: "A big party", Score: 3},
			},
		},
		{
			QuestionText: "When facing a hard problem, you usually...",
			Answers: []entity.Answer{
				{Text: "Plan carefully before acting", Score: 1},
				{Text: "Try something and adjust", Score: 2},
				{Text: "Ask others for input first", Score: 3},
			},
		},
		{
			QuestionText: "Which describes your work style best?",
			Answers: []entity.Answer{
				{Text: "Steady and methodical", Score: 1},
				{Text: "Bursts of intense focus", Score: 2},
				{Text: "Collaborative and talkative", Score: 3},
			},
		},
	}

	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			log.Fatalf("seed question %d: %v", i, err)
		}
		log.Printf("seeded question %s", seed[i].ID)
	}
	log.Printf("done: %d questions", len(seed))
}
