package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
)

func TestAuditLogRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newAuditLogRepository(db)

	record := &domain.AuditRecord{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Action:    domain.AuditActionRegister,
		IP:        "10.0.0.1",
		UserAgent: "curl",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_log")).
		WithArgs(record.ID.String(), record.AccountID.String(), "register", "10.0.0.1", "curl", record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), record))
}

func TestAuditLogRepository_AppendError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newAuditLogRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_log")).
		WillReturnError(errors.New("db down"))

	err := repo.Append(context.Background(), &domain.AuditRecord{ID: uuid.New(), AccountID: uuid.New(), Action: domain.AuditActionLogin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository.auditLog.Append")
}
