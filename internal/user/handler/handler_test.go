package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/user"
	"github.com/fekuna/omnipos-catalog-service/internal/user/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Authenticate(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*dto.LoginResult)
	return res, args.Error(1)
}

func (m *mockUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, input)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func newRouter(uc *mockUseCase, tm *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	NewAuthHandler(uc, logger.NewNop()).RegisterRoutes(r.Group("/api"), pass, auth.Require(tm))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	uc := &mockUseCase{}
	r := newRouter(uc, auth.NewTokenManager("s", time.Hour))

	uc.On("Authenticate", mock.Anything, &dto.LoginInput{Email: "a@example.com", Password: "pw"}).
		Return(&dto.LoginResult{Token: "tok", User: &model.User{ID: "u-1", Password: "hash"}}, nil)

	w := post(r, `{"email":"a@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "tok", body.Data["token"])
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestLoginFailures(t *testing.T) {
	uc := &mockUseCase{}
	r := newRouter(uc, auth.NewTokenManager("s", time.Hour))

	w := post(r, `{"email":"not-an-email","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email")

	uc.On("Authenticate", mock.Anything, mock.MatchedBy(func(in *dto.LoginInput) bool { return in.Password == "bad" })).
		Return(nil, user.ErrInvalidCredentials)
	w = post(r, `{"email":"a@example.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	uc.On("Authenticate", mock.Anything, mock.MatchedBy(func(in *dto.LoginInput) bool { return in.Password == "boom" })).
		Return(nil, errors.New("db down"))
	w = post(r, `{"email":"a@example.com","password":"boom"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	uc := &mockUseCase{}
	tm := auth.NewTokenManager("s", time.Hour)
	r := newRouter(uc, tm)
	token, _, err := tm.Issue("u-1")
	require.NoError(t, err)

	uc.On("GetUser", mock.Anything, "u-1").Return(&model.User{ID: "u-1", Name: "Admin"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Admin"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
