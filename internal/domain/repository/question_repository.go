package repository

import (
	"context"

	"github.com/quizforge/quiz-api/internal/domain/entity"
)

// QuestionStore is plain CRUD over quiz questions; whatever was written
// is returned, no further invariants.
type QuestionStore interface {
	Create(ctx context.Context, q *entity.Question) error
	List(ctx context.Context) ([]entity.Question, error)
}
