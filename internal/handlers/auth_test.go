package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuantrong94/chat-backend/internal/handlers"
	"github.com/xuantrong94/chat-backend/internal/middleware"
	"github.com/xuantrong94/chat-backend/internal/repository"
	"github.com/xuantrong94/chat-backend/internal/service"
	"github.com/xuantrong94/chat-backend/pkg/config"
	"github.com/xuantrong94/chat-backend/pkg/cookie"
	"github.com/xuantrong94/chat-backend/pkg/token"
	"github.com/xuantrong94/chat-backend/pkg/utils"
)

const (
	testAccessSecret  = "handler-access-secret"
	testRefreshSecret = "handler-refresh-secret"
)

// fakeRepo is an in-memory credential store recording store traffic.
type fakeRepo struct {
	mu          sync.Mutex
	byEmail     map[string]*repository.User
	storeCalls  int
	createCalls int
}

var _ repository.UserRepo = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*repository.User)}
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.storeCalls++
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.storeCalls++
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.storeCalls++
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateUserParams) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.storeCalls++
	f.createCalls++
	if _, ok := f.byEmail[params.Email]; ok {
		return nil, repository.ErrUserExists
	}

	hash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &repository.User{
		ID:        uuid.New(),
		Email:     params.Email,
		FullName:  params.FullName,
		AvatarURL: params.AvatarURL,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.byEmail[params.Email] = u

	cp := *u
	return &cp, nil
}

func (f *fakeRepo) ComparePassword(user *repository.User, plain string) error {
	return utils.ComparePassword(plain, user.Password)
}

func (f *fakeRepo) calls() (store, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storeCalls, f.createCalls
}

func (f *fakeRepo) delete(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byEmail, email)
}

type testEnv struct {
	router *chi.Mux
	repo   *fakeRepo
	tokens *token.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := token.NewManager(testAccessSecret, testRefreshSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	repo := newFakeRepo()
	authService := service.NewAuthService(repo, tokens)
	cookies := cookie.NewPolicy(config.CookieConfig{SameSite: "lax"}, 15*time.Minute, time.Hour)

	authHandler := handlers.NewAuthHandler(authService, repo, cookies)
	userHandler := handlers.NewUserHandler(repo)
	messageHandler := handlers.NewMessageHandler()

	r := chi.NewRouter()
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/signin", authHandler.Signin)
	r.Post("/auth/logout", authHandler.Logout)
	r.Post("/auth/refresh", authHandler.Refresh)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(authService))
		protected.Get("/users/me", userHandler.Profile)
		protected.Post("/messages", messageHandler.Send)
		protected.Get("/messages", messageHandler.List)
	})

	return &testEnv{router: r, repo: repo, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) signup(t *testing.T) (accessCookie, refreshCookie *http.Cookie) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":           "a@b.com",
		"fullName":        "A B",
		"password":        "Abc12345!",
		"confirmPassword": "Abc12345!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return findCookie(w, cookie.AccessTokenName), findCookie(w, cookie.RefreshTokenName)
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignupSetsCookiesAndHidesPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":           "a@b.com",
		"fullName":        "A B",
		"password":        "Abc12345!",
		"confirmPassword": "Abc12345!",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "a@b.com")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Abc12345!")

	access := findCookie(w, cookie.AccessTokenName)
	refresh := findCookie(w, cookie.RefreshTokenName)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)

	claims, err := env.tokens.VerifyAccessToken(access.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestSignupPasswordMismatchNeverReachesStore(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":           "a@b.com",
		"fullName":        "A B",
		"password":        "Abc12345!",
		"confirmPassword": "different!",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrPasswordMismatch.Error())

	store, create := env.repo.calls()
	assert.Zero(t, store)
	assert.Zero(t, create)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	w := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":           "a@b.com",
		"fullName":        "A B",
		"password":        "Abc12345!",
		"confirmPassword": "Abc12345!",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrUserExists.Error())
}

func TestSignupValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":           "not-an-email",
		"fullName":        "A B",
		"password":        "Abc12345!",
		"confirmPassword": "Abc12345!",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrInvalidRequest.Error())
}

func TestSigninWrongPasswordSetsNoCookies(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	w := env.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email":    "a@b.com",
		"password": "WrongPassword1!",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), handlers.ErrInvalidCredentials.Error())
	assert.Empty(t, w.Result().Cookies())
}

func TestSigninSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	w := env.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email":    "a@b.com",
		"password": "Abc12345!",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, findCookie(w, cookie.AccessTokenName))
	require.NotNil(t, findCookie(w, cookie.RefreshTokenName))
}

func TestRefreshRotatesCookies(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.signup(t)

	w := env.do(t, http.MethodPost, "/auth/refresh", nil, refresh)

	assert.Equal(t, http.StatusOK, w.Code)
	newAccess := findCookie(w, cookie.AccessTokenName)
	newRefresh := findCookie(w, cookie.RefreshTokenName)
	require.NotNil(t, newAccess)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, refresh.Value, newRefresh.Value)
	assert.Positive(t, newRefresh.MaxAge)
}

func TestRefreshWithExpiredTokenClearsCookies(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	expired := signExpiredToken(t, token.TypeRefresh, testRefreshSecret)
	w := env.do(t, http.MethodPost, "/auth/refresh", nil, &http.Cookie{
		Name:  cookie.RefreshTokenName,
		Value: expired,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assertCookiesCleared(t, w)
}

func TestRefreshWithoutCookieClearsCookies(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/refresh", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrMissingCookie.Error())
	assertCookiesCleared(t, w)
}

func TestRefreshAfterAccountDeleted(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.signup(t)

	env.repo.delete("a@b.com")

	w := env.do(t, http.MethodPost, "/auth/refresh", nil, refresh)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrUserNotFound.Error())
	assertCookiesCleared(t, w)
}

func TestLogoutAlwaysClearsCookies(t *testing.T) {
	env := newTestEnv(t)

	// no cookies presented at all
	w := env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assertCookiesCleared(t, w)

	// and again with valid cookies
	access, refresh := env.signup(t)
	w = env.do(t, http.MethodPost, "/auth/logout", nil, access, refresh)
	assert.Equal(t, http.StatusOK, w.Code)
	assertCookiesCleared(t, w)
}

func TestProtectedRouteRequiresCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrMissingCookie.Error())
}

func TestProtectedRouteRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expired := signExpiredToken(t, token.TypeAccess, testAccessSecret)
	w := env.do(t, http.MethodGet, "/users/me", nil, &http.Cookie{
		Name:  cookie.AccessTokenName,
		Value: expired,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrTokenExpired.Error())
}

func TestProfileWithValidCookie(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t)

	w := env.do(t, http.MethodGet, "/users/me", nil, access)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSendMessageStub(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t)

	w := env.do(t, http.MethodPost, "/messages", map[string]string{
		"recipientId": uuid.NewString(),
		"content":     "hello there",
	}, access)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "hello there")
	assert.Contains(t, w.Body.String(), `"senderId"`)
}

func TestSendMessageValidatesRecipient(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.signup(t)

	w := env.do(t, http.MethodPost, "/messages", map[string]string{
		"recipientId": "not-a-uuid",
		"content":     "hello",
	}, access)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), handlers.ErrInvalidRequest.Error())
}

func assertCookiesCleared(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	access := findCookie(w, cookie.AccessTokenName)
	refresh := findCookie(w, cookie.RefreshTokenName)
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	for _, c := range []*http.Cookie{access, refresh} {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func signExpiredToken(t *testing.T, tokenType, secret string) string {
	t.Helper()

	now := time.Now()
	claims := token.Claims{
		UserID:    uuid.New(),
		Email:     "a@b.com",
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
