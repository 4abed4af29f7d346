package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
	"github.com/quizforge/quiz-api/pkg/helpers"
)

const questionListKey = "questions:all"

// QuestionService is plain CRUD over quiz content, with a short-lived Redis
// cache on the list and optional Elasticsearch indexing for search. Both
// side channels are nil-guarded; the store is the source of truth.
type QuestionService struct {
	Store    repository.QuestionStore
	Redis    *redis.Client
	CacheTTL time.Duration
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewQuestionService(store repository.QuestionStore, rdb *redis.Client, cacheTTL time.Duration, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *QuestionService {
	return &QuestionService{Store: store, Redis: rdb, CacheTTL: cacheTTL, ES: es, ESIndex: esIndex, Logger: logger}
}

func (s *QuestionService) Create(ctx context.Context, q *entity.Question) error {
	if err := s.Store.Create(ctx, q); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, questionListKey); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("question cache invalidation failed")
		}
	}
	_ = s.indexQuestion(ctx, q)
	return nil
}

func (s *QuestionService) List(ctx context.Context) ([]entity.Question, error) {
	if s.Redis != nil {
		var cached []entity.Question
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, questionListKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, questionListKey, out, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("question cache write failed")
		}
	}
	return out, nil
}

func (s *QuestionService) indexQuestion(ctx context.Context, q *entity.Question) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	b, _ := json.Marshal(q)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: q.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("question_id", q.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("question_id", q.ID).Warn("es index response error")
	}
	return nil
}

// Search performs a match query against question text and answer text.
// Without a configured Elasticsearch client it returns an empty result.
func (s *QuestionService) Search(ctx context.Context, q string, size int) ([]entity.Question, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []entity.Question{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"questionText^2", "answers.text"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Question `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Question, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
