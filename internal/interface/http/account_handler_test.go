package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quiz-api/internal/application"
	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
	"github.com/quizforge/quiz-api/internal/interface/middleware"
	"github.com/quizforge/quiz-api/pkg/helpers"
	"github.com/quizforge/quiz-api/pkg/validation"
)

// fakeDirectory is a minimal in-memory UserDirectory for transport tests.
type fakeDirectory struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) CreatePending(_ context.Context, email, hash, code string, exp time.Time) (*entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[email]; ok {
		return nil, repository.ErrConflict
	}
	u := &entity.User{ID: "id-" + email, Email: email, PasswordHash: hash, OTPCode: &code, OTPExpiresAt: &exp}
	d.users[email] = u
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) UpdatePendingCredentials(_ context.Context, email, hash, code string, exp time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	if u.IsVerified {
		return repository.ErrAlreadyVerified
	}
	u.PasswordHash = hash
	u.OTPCode = &code
	u.OTPExpiresAt = &exp
	return nil
}

func (d *fakeDirectory) UpdateOTP(_ context.Context, email, code string, exp time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	if u.IsVerified {
		return repository.ErrAlreadyVerified
	}
	u.OTPCode = &code
	u.OTPExpiresAt = &exp
	return nil
}

func (d *fakeDirectory) MarkVerified(_ context.Context, email, otpCode string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	if u.IsVerified {
		return repository.ErrAlreadyVerified
	}
	if u.OTPCode == nil || *u.OTPCode != otpCode {
		return repository.ErrOTPMismatch
	}
	if !time.Now().Before(*u.OTPExpiresAt) {
		return repository.ErrOTPExpired
	}
	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	return nil
}

// scriptedOTP hands out sequential codes; ttl is adjustable mid-test so a
// code can be issued already expired.
type scriptedOTP struct {
	mu  sync.Mutex
	n   int
	ttl time.Duration
}

func (g *scriptedOTP) Generate() (string, time.Time, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%06d", g.n), time.Now().Add(g.ttl), nil
}

func (g *scriptedOTP) setTTL(ttl time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ttl = ttl
}

func (g *scriptedOTP) last() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%06d", g.n)
}

type nopSender struct{}

func (nopSender) SendOTP(context.Context, string, string, time.Duration) error { return nil }

type fakeQuestionStore struct {
	mu        sync.Mutex
	questions []entity.Question
}

func (s *fakeQuestionStore) Create(_ context.Context, q *entity.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = fmt.Sprintf("q-%d", len(s.questions)+1)
	s.questions = append(s.questions, *q)
	return nil
}

func (s *fakeQuestionStore) List(_ context.Context) ([]entity.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

type testAPI struct {
	router *gin.Engine
	otp    *scriptedOTP
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	otp := &scriptedOTP{ttl: 5 * time.Minute}
	tokens := helpers.NewTokenIssuer("test-secret", 7*24*time.Hour)
	accountSvc := application.NewAccountService(&fakeDirectory{users: map[string]*entity.User{}}, otp, nopSender{}, tokens, nil)
	questionSvc := application.NewQuestionService(&fakeQuestionStore{}, nil, 0, nil, "", nil)

	r := gin.New()
	account := NewAccountHandler(accountSvc, nil)
	question := NewQuestionHandler(questionSvc, nil)

	r.POST("/register", account.Register)
	r.POST("/verify-otp", account.VerifyOTP)
	r.POST("/resend-otp", account.ResendOTP)
	r.POST("/login", account.Login)
	r.GET("/questions", question.List)
	r.POST("/questions", middleware.AuthGuard(tokens), question.Create)

	return &testAPI{router: r, otp: otp}
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	a.router.ServeHTTP(w, req)
	return w
}

func TestRegistrationFlow_EndToEnd(t *testing.T) {
	api := newTestAPI(t)

	// Register issues the first code, but born expired.
	api.otp.setTTL(-time.Second)
	w := api.do(http.MethodPost, "/register", "", `{"email":"a@x.com","password":"secretpass"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	expiredCode := api.otp.last()

	// Wrong code: still pending.
	w = api.do(http.MethodPost, "/verify-otp", "", `{"email":"a@x.com","otp":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid otp")

	// Right code, but past its TTL.
	w = api.do(http.MethodPost, "/verify-otp", "", fmt.Sprintf(`{"email":"a@x.com","otp":%q}`, expiredCode))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "otp expired")

	// Resend with a sane TTL, then verify.
	api.otp.setTTL(5 * time.Minute)
	w = api.do(http.MethodPost, "/resend-otp", "", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/verify-otp", "", fmt.Sprintf(`{"email":"a@x.com","otp":%q}`, api.otp.last()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Login yields a token together with its expiry.
	w = api.do(http.MethodPost, "/login", "", `{"email":"a@x.com","password":"secretpass"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Data struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expiresAt"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)
	assert.True(t, login.Data.ExpiresAt.After(time.Now()), "token expiry must lie in the future")

	// Protected create with the raw header token.
	payload := `{"questionText":"Pick one","answers":[{"text":"A","score":1},{"text":"B","score":2}]}`
	w = api.do(http.MethodPost, "/questions", login.Data.Token, payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The same token corrupted is rejected.
	corrupted := login.Data.Token[:len(login.Data.Token)-2] + "xx"
	w = api.do(http.MethodPost, "/questions", corrupted, payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Public list shows the created question.
	w = api.do(http.MethodGet, "/questions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pick one")
}

func TestRegister_ValidationAndConflict(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/register", "", `{"email":"not-an-email","password":"secretpass"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/register", "", `{"email":"a@x.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Verified accounts reject re-registration.
	w = api.do(http.MethodPost, "/register", "", `{"email":"a@x.com","password":"secretpass"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(http.MethodPost, "/verify-otp", "", fmt.Sprintf(`{"email":"a@x.com","otp":%q}`, api.otp.last()))
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/register", "", `{"email":"a@x.com","password":"otherpass9"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestLogin_PendingAccountRejected(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/register", "", `{"email":"p@x.com","password":"secretpass"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodPost, "/login", "", `{"email":"p@x.com","password":"secretpass"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not verified")
}

func TestCreateQuestion_ValidatesPayload(t *testing.T) {
	api := newTestAPI(t)

	tokens := helpers.NewTokenIssuer("test-secret", time.Hour)
	tok, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	// Missing answers.
	w := api.do(http.MethodPost, "/questions", tok, `{"questionText":"Q?"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Answer without a score.
	w = api.do(http.MethodPost, "/questions", tok, `{"questionText":"Q?","answers":[{"text":"A"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No token at all.
	w = api.do(http.MethodPost, "/questions", "", `{"questionText":"Q?","answers":[{"text":"A","score":1}]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
