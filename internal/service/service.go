package service

import (
	"context"
	"time"

	"github.com/vibe-gaming/gatekeeper/internal/config"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/ratelimit"
	"github.com/vibe-gaming/gatekeeper/internal/repository"
	"github.com/vibe-gaming/gatekeeper/pkg/auth"
	"github.com/vibe-gaming/gatekeeper/pkg/hash"
	"github.com/vibe-gaming/gatekeeper/pkg/otp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Services struct {
	Auth  Auth
	Users Users
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Validator    *validator.Validate
	Limiter      ratelimit.Limiter
	Notifier     VerificationNotifier
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Auth: newAuthService(deps.Repos.Accounts,
			deps.Repos.AuditLog,
			deps.Limiter,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			deps.Notifier,
			deps.Validator,
			deps.Config,
		),
		Users: newUserService(deps.Repos.Accounts),
	}
}

// VerificationNotifier hands the verification code over for delivery after delay.
type VerificationNotifier interface {
	ScheduleVerificationEmail(ctx context.Context, account *domain.Account, delay time.Duration) error
}

type Auth interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Verify(ctx context.Context, input VerifyInput) (*domain.Account, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type Users interface {
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}
