package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/config"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/ratelimit"
	"github.com/vibe-gaming/gatekeeper/internal/repository"
	"github.com/vibe-gaming/gatekeeper/pkg/auth"
	"github.com/vibe-gaming/gatekeeper/pkg/hash"
	"github.com/vibe-gaming/gatekeeper/pkg/logger"
	"github.com/vibe-gaming/gatekeeper/pkg/otp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dummyPassword is hashed once so unknown emails cost the same bcrypt work as known ones.
const dummyPassword = "gatekeeper-timing-equalizer"

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	Origin    string `json:"-" validate:"-"`
	UserAgent string `json:"-" validate:"-"`
}

type VerifyInput struct {
	Email            string `json:"email" validate:"required,email,max=255"`
	VerificationCode string `json:"verification_code" validate:"required,vcode"`
	Origin           string `json:"-" validate:"-"`
	UserAgent        string `json:"-" validate:"-"`
}

type LoginInput struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	Origin    string `json:"-" validate:"-"`
	UserAgent string `json:"-" validate:"-"`
}

type LoginResult struct {
	Account     *domain.Account
	AccessToken string
	AccessTTL   time.Duration
}

type authService struct {
	accountRepository  repository.Accounts
	auditLogRepository repository.AuditLog
	limiter            ratelimit.Limiter
	hasher             hash.PasswordHasher
	tokenManager       auth.TokenManager
	otpGenerator       otp.Generator
	notifier           VerificationNotifier
	validate           *validator.Validate
	rateLimitConfig    config.RateLimit
	authConfig         config.AuthConfig
	notificationConfig config.Notification
	dummyHash          string
}

func newAuthService(accountRepository repository.Accounts,
	auditLogRepository repository.AuditLog,
	limiter ratelimit.Limiter,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	notifier VerificationNotifier,
	validate *validator.Validate,
	config *config.Config,
) *authService {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Error("hash dummy password failed", zap.Error(err))
	}

	return &authService{
		accountRepository:  accountRepository,
		auditLogRepository: auditLogRepository,
		limiter:            limiter,
		hasher:             hasher,
		tokenManager:       tokenManager,
		otpGenerator:       otpGenerator,
		notifier:           notifier,
		validate:           validate,
		rateLimitConfig:    config.RateLimit,
		authConfig:         config.Auth,
		notificationConfig: config.Notification,
		dummyHash:          dummyHash,
	}
}

// Register creates an unverified account and schedules delivery of its verification code.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	key := ratelimit.Key(ratelimit.ActionRegister, input.Email, input.Origin)

	if err := s.ensureAttemptsNotExceeded(ctx, key, s.rateLimitConfig.RegisterMaxAttempts); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, newValidationError(err)
	}

	if _, err := s.limiter.Hit(ctx, key); err != nil {
		return nil, dependencyFailure("hit register attempts", err)
	}

	_, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, dependencyFailure("get account by email", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, dependencyFailure("hash password", err)
	}

	accountID, err := uuid.NewV7()
	if err != nil {
		return nil, dependencyFailure("generate account id", err)
	}

	account := &domain.Account{
		ID:       accountID,
		Email:    input.Email,
		Password: hashedPassword,
		VerificationCode: sql.NullString{
			String: s.otpGenerator.RandomCode(),
			Valid:  true,
		},
		CreatedAt: time.Now(),
	}

	if err := s.accountRepository.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrDuplicateAccount
		}
		return nil, dependencyFailure("create account", err)
	}

	// Delivery is best effort: the account exists whether or not the email goes out.
	if err := s.notifier.ScheduleVerificationEmail(ctx, account, s.notificationConfig.VerificationDelay); err != nil {
		logger.Error("schedule verification email failed", zap.Error(err), zap.Stringer("account_id", account.ID))
	}

	s.audit(ctx, account.ID, domain.AuditActionRegister, input.Origin, input.UserAgent)

	return account, nil
}

// Verify activates the account owning the email and code pair.
// Repeating it for a verified account succeeds without changing anything.
func (s *authService) Verify(ctx context.Context, input VerifyInput) (*domain.Account, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	key := ratelimit.Key(ratelimit.ActionVerify, input.Email, input.Origin)

	if err := s.ensureAttemptsNotExceeded(ctx, key, s.rateLimitConfig.VerifyMaxAttempts); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, newValidationError(err)
	}

	account, err := s.accountRepository.GetByEmailAndCode(ctx, input.Email, input.VerificationCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.failedAttempt(ctx, key, ErrInvalidVerification)
		}
		return nil, dependencyFailure("get account by email and code", err)
	}

	if account.Verified {
		s.clearAttempts(ctx, key)
		return account, nil
	}

	if err := s.accountRepository.MarkVerified(ctx, account.ID); err != nil {
		// a parallel request verified it first
		if errors.Is(err, domain.ErrNoRowsAffected) {
			account.Verified = true
			s.clearAttempts(ctx, key)
			return account, nil
		}
		return nil, dependencyFailure("mark account verified", err)
	}

	now := time.Now()
	account.Verified = true
	account.VerifiedAt = &now

	s.clearAttempts(ctx, key)
	s.audit(ctx, account.ID, domain.AuditActionVerify, input.Origin, input.UserAgent)

	return account, nil
}

// Login checks credentials and issues an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	key := ratelimit.Key(ratelimit.ActionLogin, input.Email, input.Origin)

	if err := s.ensureAttemptsNotExceeded(ctx, key, s.rateLimitConfig.LoginMaxAttempts); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, newValidationError(err)
	}

	account, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, dependencyFailure("get account by email", err)
		}
		_ = s.hasher.Compare(s.dummyHash, input.Password)
		return nil, s.failedAttempt(ctx, key, ErrUnauthorized)
	}

	if err := s.hasher.Compare(account.Password, input.Password); err != nil {
		if !errors.Is(err, hash.ErrMismatchedPassword) {
			return nil, dependencyFailure("compare password", err)
		}
		return nil, s.failedAttempt(ctx, key, ErrUnauthorized)
	}

	if s.authConfig.RequireVerified && !account.Verified {
		return nil, ErrAccountNotVerified
	}

	s.clearAttempts(ctx, key)

	accessToken, accessTTL, err := s.tokenManager.NewJWT(account.ID)
	if err != nil {
		return nil, dependencyFailure("issue access token", err)
	}

	s.audit(ctx, account.ID, domain.AuditActionLogin, input.Origin, input.UserAgent)

	return &LoginResult{
		Account:     account,
		AccessToken: accessToken,
		AccessTTL:   accessTTL,
	}, nil
}

func (s *authService) ensureAttemptsNotExceeded(ctx context.Context, key string, maxAttempts int) error {
	tooMany, err := s.limiter.TooManyAttempts(ctx, key, maxAttempts)
	if err != nil {
		return dependencyFailure("check attempts", err)
	}
	if !tooMany {
		return nil
	}

	retryAfter, err := s.limiter.AvailableIn(ctx, key)
	if err != nil {
		logger.Warn("get rate limit window failed", zap.Error(err))
	}

	return &RateLimitedError{RetryAfter: retryAfter}
}

// failedAttempt counts the attempt against key and returns cause.
func (s *authService) failedAttempt(ctx context.Context, key string, cause error) error {
	if _, err := s.limiter.Hit(ctx, key); err != nil {
		logger.Error("hit attempts failed", zap.Error(err), zap.String("key", key))
	}
	return cause
}

func (s *authService) clearAttempts(ctx context.Context, key string) {
	if err := s.limiter.Clear(ctx, key); err != nil {
		logger.Error("clear attempts failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *authService) audit(ctx context.Context, accountID uuid.UUID, action domain.AuditAction, ip string, userAgent string) {
	recordID, err := uuid.NewV7()
	if err != nil {
		logger.Error("generate audit record id failed", zap.Error(err))
		return
	}

	record := &domain.AuditRecord{
		ID:        recordID,
		AccountID: accountID,
		Action:    action,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}

	if err := s.auditLogRepository.Append(ctx, record); err != nil {
		logger.Error("append audit record failed",
			zap.Error(err),
			zap.String("action", string(action)),
			zap.Stringer("account_id", accountID),
		)
		return
	}

	logger.Info("audit",
		zap.String("action", string(action)),
		zap.Stringer("account_id", accountID),
		zap.String("ip", ip),
	)
}
