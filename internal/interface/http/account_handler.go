package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quizforge/quiz-api/internal/application"
	"github.com/quizforge/quiz-api/pkg/response"
	"github.com/quizforge/quiz-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

type resendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, gin.H{"email": req.Email}, "verification code sent")
	case errors.Is(err, application.ErrAlreadyRegistered):
		response.Error(c, http.StatusBadRequest, "email already registered", nil)
	case errors.Is(err, application.ErrDeliveryFailed):
		// The account was created; the user can request a new code.
		response.Error(c, http.StatusInternalServerError, "failed to send verification code", nil)
	default:
		h.internal(c, err, "register failed")
	}
}

// VerifyOTP POST /verify-otp
func (h *AccountHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"verified": true}, "account verified")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusBadRequest, "account not found", nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "account already verified", nil)
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "invalid otp", nil)
	case errors.Is(err, application.ErrOTPExpired):
		response.Error(c, http.StatusBadRequest, "otp expired, request a new one", nil)
	default:
		h.internal(c, err, "verify otp failed")
	}
}

// ResendOTP POST /resend-otp
func (h *AccountHandler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	err := h.Svc.ResendOTP(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"email": req.Email}, "verification code resent")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusBadRequest, "account not found", nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error(c, http.StatusBadRequest, "account already verified", nil)
	case errors.Is(err, application.ErrDeliveryFailed):
		response.Error(c, http.StatusInternalServerError, "failed to send verification code", nil)
	default:
		h.internal(c, err, "resend otp failed")
	}
}

// Login POST /login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"token": res.Token, "expiresAt": res.ExpiresAt}, "login successful")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusBadRequest, "account not found", nil)
	case errors.Is(err, application.ErrNotVerified):
		response.Error(c, http.StatusBadRequest, "account not verified", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, "invalid credentials", nil)
	default:
		h.internal(c, err, "login failed")
	}
}

func (h *AccountHandler) internal(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
	response.Error(c, http.StatusInternalServerError, "internal error", nil)
}
