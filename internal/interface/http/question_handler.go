package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quizforge/quiz-api/internal/application"
	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/pkg/response"
	"github.com/quizforge/quiz-api/pkg/validation"
)

type QuestionHandler struct {
	Svc    *application.QuestionService
	Logger *logrus.Logger
}

func NewQuestionHandler(svc *application.QuestionService, logger *logrus.Logger) *QuestionHandler {
	return &QuestionHandler{Svc: svc, Logger: logger}
}

type answerPayload struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

type createQuestionRequest struct {
	QuestionText string          `json:"questionText" binding:"required"`
	Answers      []answerPayload `json:"answers" binding:"required,min=1,dive"`
}

// Create POST /questions (auth required)
func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	q := &entity.Question{QuestionText: req.QuestionText}
	for _, a := range req.Answers {
		q.Answers = append(q.Answers, entity.Answer{Text: a.Text, Score: *a.Score})
	}

	if err := h.Svc.Create(c.Request.Context(), q); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create question failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusCreated, q, "question created")
}

// List GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list questions failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "questions")
}

// Search GET /questions/search?q=
func (h *QuestionHandler) Search(c *gin.Context) {
	q := c.Query("q")
	out, err := h.Svc.Search(c.Request.Context(), q, 10)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("search questions failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "search results")
}
