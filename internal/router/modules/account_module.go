package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/quizforge/quiz-api/internal/interface/http"
)

// AccountModule registers the registration and authentication routes.
// Public: POST /register, POST /verify-otp, POST /resend-otp, POST /login
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/verify-otp", m.Handler.VerifyOTP)
	rg.POST("/resend-otp", m.Handler.ResendOTP)
	rg.POST("/login", m.Handler.Login)
}
