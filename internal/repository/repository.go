package repository

import (
	"context"

	"github.com/vibe-gaming/gatekeeper/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Accounts Accounts
	AuditLog AuditLog
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Accounts: newAccountRepository(db),
		AuditLog: newAuditLogRepository(db),
	}
}

type Accounts interface {
	Create(ctx context.Context, account *domain.Account) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByEmailAndCode(ctx context.Context, email string, code string) (*domain.Account, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

type AuditLog interface {
	Append(ctx context.Context, record *domain.AuditRecord) error
}
