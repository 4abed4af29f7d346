package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/quizforge/quiz-api/internal/interface/http"
	"github.com/quizforge/quiz-api/internal/interface/middleware"
	"github.com/quizforge/quiz-api/pkg/helpers"
)

// QuestionModule registers the quiz content routes.
// Public: GET /questions, GET /questions/search
// Protected: POST /questions
type QuestionModule struct {
	Handler *handlers.QuestionHandler
	Tokens  *helpers.TokenIssuer
}

func NewQuestionModule(h *handlers.QuestionHandler, tokens *helpers.TokenIssuer) *QuestionModule {
	return &QuestionModule{Handler: h, Tokens: tokens}
}

func (m *QuestionModule) Register(rg *gin.RouterGroup) {
	rg.GET("/questions", m.Handler.List)
	rg.GET("/questions/search", m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.AuthGuard(m.Tokens))
	{
		auth.POST("/questions", m.Handler.Create)
	}
}
