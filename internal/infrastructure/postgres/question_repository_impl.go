package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
)

// QuestionRepository stores quiz questions with their answers as a JSONB
// document, mirroring the document shape the API exposes.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO questions (question_text, answers)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, q.QuestionText, answers)
	return row.Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

func (r *QuestionRepository) List(ctx context.Context) ([]entity.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question_text, answers, created_at, updated_at
		FROM questions
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Question, 0)
	for rows.Next() {
		var q entity.Question
		var answers []byte
		if err := rows.Scan(&q.ID, &q.QuestionText, &answers, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &q.Answers); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

var _ repository.QuestionStore = (*QuestionRepository)(nil)
