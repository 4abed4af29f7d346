package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
)

type memQuestionStore struct {
	mu        sync.Mutex
	questions []entity.Question
}

func (s *memQuestionStore) Create(_ context.Context, q *entity.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = fmt.Sprintf("q-%d", len(s.questions)+1)
	s.questions = append(s.questions, *q)
	return nil
}

func (s *memQuestionStore) List(_ context.Context) ([]entity.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

var _ repository.QuestionStore = (*memQuestionStore)(nil)

func TestQuestionService_CreateAndList(t *testing.T) {
	t.Parallel()

	svc := NewQuestionService(&memQuestionStore{}, nil, 0, nil, "", nil)
	ctx := context.Background()

	q := &entity.Question{
		QuestionText: "Pick one",
		Answers: []entity.Answer{
			{Text: "A", Score: 1},
			{Text: "B", Score: 2},
		},
	}
	require.NoError(t, svc.Create(ctx, q))
	assert.NotEmpty(t, q.ID)

	out, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Pick one", out[0].QuestionText)
	assert.Equal(t, q.Answers, out[0].Answers)
}

func TestQuestionService_SearchWithoutESIsEmpty(t *testing.T) {
	t.Parallel()

	svc := NewQuestionService(&memQuestionStore{}, nil, 0, nil, "", nil)
	out, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
