package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, input service.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *mockAuthService) Verify(ctx context.Context, input service.VerifyInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*service.LoginResult)
	return result, args.Error(1)
}

type mockUsersService struct {
	mock.Mock
}

func (m *mockUsersService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

type fakeTokenManager struct {
	id  uuid.UUID
	err error
}

func (f fakeTokenManager) NewJWT(uuid.UUID) (string, time.Duration, error) {
	return "token", time.Minute, nil
}

func (f fakeTokenManager) Parse(string) (uuid.UUID, error) {
	return f.id, f.err
}

type testAPI struct {
	router *gin.Engine
	auth   *mockAuthService
	users  *mockUsersService
}

func newTestAPI(t *testing.T, tokenManager auth.TokenManager) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		router: gin.New(),
		auth:   &mockAuthService{},
		users:  &mockUsersService{},
	}

	h := NewHandler(&service.Services{Auth: api.auth, Users: api.users}, tokenManager)
	h.Init(api.router.Group("/api"))

	return api
}

func (a *testAPI) do(method string, path string, body any, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorStruct {
	t.Helper()
	var out ErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var errBoom = errors.New("boom")
