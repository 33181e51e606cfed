package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionRegister AuditAction = "register"
	AuditActionVerify   AuditAction = "verify"
	AuditActionLogin    AuditAction = "login"
)

type AuditRecord struct {
	ID        uuid.UUID   `db:"id"`
	AccountID uuid.UUID   `db:"account_id"`
	Action    AuditAction `db:"action"`
	IP        string      `db:"ip"`
	UserAgent string      `db:"user_agent"`
	CreatedAt time.Time   `db:"created_at"`
}
