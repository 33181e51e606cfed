package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/service"
	"github.com/vibe-gaming/gatekeeper/pkg/validator"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister_Created(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
		return in.Email == "a@x.com" && in.Password == "pw1" && in.Origin != ""
	})).Return(&domain.Account{Email: "a@x.com"}, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@x.com", "password": "pw1"}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())
	api.auth.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrDuplicateAccount)

	rec := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@x.com", "password": "pw2"}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrorCode(UserAlreadyExistsCode), decodeError(t, rec).ErrorCode)
}

func TestRegister_ValidationErrorListsFields(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})

	type input struct {
		Email string `json:"email" validate:"required,email"`
	}
	err := validator.New().Struct(input{Email: "nope"})
	var fields govalidator.ValidationErrors
	require.ErrorAs(t, err, &fields)

	api.auth.On("Register", mock.Anything, mock.Anything).Return(nil, &service.ValidationError{Fields: fields})

	rec := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "nope"}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var out ValidationErrorStruct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, ValidationErrorCode, out.ErrorCode)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "email", out.Errors[0].FieldKey)
	assert.Equal(t, "Неверный формат почты", out.Errors[0].ErrorMessage)
}

func TestRegister_RateLimited(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Register", mock.Anything, mock.Anything).Return(nil, &service.RateLimitedError{RetryAfter: 1500 * time.Millisecond})

	rec := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@x.com", "password": "pw"}, nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, ErrorCode(TooManyAttemptsCode), decodeError(t, rec).ErrorCode)
}

func TestRegister_MalformedBody(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})

	rec := api.do(http.MethodPost, "/api/v1/auth/register", "{", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrorCode(InvalidRequestBodyCode), decodeError(t, rec).ErrorCode)
	api.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_DependencyFailure(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Register", mock.Anything, mock.Anything).Return(nil, errBoom)

	rec := api.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "a@x.com", "password": "pw"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrorCode(UnknownErrorCode), decodeError(t, rec).ErrorCode)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestVerify_Post(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Verify", mock.Anything, mock.MatchedBy(func(in service.VerifyInput) bool {
		return in.Email == "a@x.com" && in.VerificationCode == "482913"
	})).Return(&domain.Account{Verified: true}, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/auth/verify", map[string]string{"email": "a@x.com", "verification_code": "482913"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User account verified successfully"}`, rec.Body.String())
}

func TestVerify_Link(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Verify", mock.Anything, mock.MatchedBy(func(in service.VerifyInput) bool {
		return in.Email == "a+b@x.com" && in.VerificationCode == "482913"
	})).Return(&domain.Account{Verified: true}, nil).Once()

	rec := api.do(http.MethodGet, "/api/v1/auth/verify?email=a%2Bb%40x.com&verification_code=482913", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	api.auth.AssertExpectations(t)
}

func TestVerify_Invalid(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	api.auth.On("Verify", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidVerification)

	rec := api.do(http.MethodPost, "/api/v1/auth/verify", map[string]string{"email": "a@x.com", "verification_code": "111111"}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrorCode(InvalidVerificationCode), decodeError(t, rec).ErrorCode)
}

func TestLogin_OK(t *testing.T) {
	api := newTestAPI(t, fakeTokenManager{})
	account := &domain.Account{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Password: "$2a$hash",
		Verified: true,
	}
	api.auth.On("Login", mock.Anything, mock.Anything).Return(&service.LoginResult{
		Account:     account,
		AccessToken: "token",
		AccessTTL:   15 * time.Minute,
	}, nil)

	rec := api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com", "password": "pw1"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var out loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "token", out.AccessToken)
	assert.Equal(t, int64(900), out.ExpiresIn)
	assert.Equal(t, "a@x.com", out.User.Email)
	assert.False(t, strings.Contains(rec.Body.String(), "$2a$hash"))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, InvalidCredentialsCode},
		{"not verified", service.ErrAccountNotVerified, http.StatusForbidden, UserNotVerifiedCode},
		{"rate limited", &service.RateLimitedError{RetryAfter: time.Minute}, http.StatusTooManyRequests, TooManyAttemptsCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(t, fakeTokenManager{})
			api.auth.On("Login", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := api.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com", "password": "pw"}, nil)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).ErrorCode)
		})
	}
}
