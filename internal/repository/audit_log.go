package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
)

type auditLogRepository struct {
	db *sqlx.DB
}

func newAuditLogRepository(db *sqlx.DB) *auditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

func (r *auditLogRepository) Append(ctx context.Context, record *domain.AuditRecord) error {
	const op = "repository.auditLog.Append"

	const query = `
    INSERT INTO audit_log (id, account_id, action, ip, user_agent, created_at)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:account_id), :action, :ip, :user_agent, :created_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("%s: insert audit record failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}
