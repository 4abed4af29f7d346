package router

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/quizforge/quiz-api/config"
	"github.com/quizforge/quiz-api/internal/application"
	pginfra "github.com/quizforge/quiz-api/internal/infrastructure/postgres"
	handlers "github.com/quizforge/quiz-api/internal/interface/http"
	"github.com/quizforge/quiz-api/internal/router/modules"
	"github.com/quizforge/quiz-api/pkg/helpers"
	"github.com/quizforge/quiz-api/pkg/mailer"
)

// Deps are the shared infrastructure handles built once in main and passed
// down explicitly; modules receive constructed services, never globals.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Tokens *helpers.TokenIssuer
	Sender mailer.Sender
}

// InitModules wires all feature modules into the router registry.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	accountSvc := application.NewAccountService(
		users,
		helpers.NewOTPGenerator(d.Cfg.OTPTTL),
		d.Sender,
		d.Tokens,
		d.Logger,
	)
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accountSvc, d.Logger)))

	questions := pginfra.NewQuestionRepository(d.Pool)
	questionSvc := application.NewQuestionService(
		questions,
		d.Redis,
		d.Cfg.QuestionCacheTTL,
		d.ES,
		d.Cfg.ESQuestionsIndex,
		d.Logger,
	)
	r.Add(modules.NewQuestionModule(handlers.NewQuestionHandler(questionSvc, d.Logger), d.Tokens))

	r.Engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Quiz backend is running")
	})
}
