package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vibe-gaming/gatekeeper/internal/db"
	"github.com/vibe-gaming/gatekeeper/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const accountColumns = "id, email, password, verification_code, verified, verified_at, created_at, updated_at"

type accountRepository struct {
	db *sqlx.DB
}

func newAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const op = "repository.account.Create"

	const query = `
	INSERT INTO account (id, email, password, verification_code, verified, created_at)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Password,
		account.VerificationCode,
		account.Verified,
		account.CreatedAt,
	)
	if err != nil {
		var mysqlError *mysql.MySQLError
		if errors.As(err, &mysqlError) && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert account failed: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected failed: %w", op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *accountRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	const op = "repository.account.GetOneByID"

	const query = "SELECT " + accountColumns + " FROM account WHERE id = uuid_to_bin(?);"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select account failed: %w", op, err)
	}

	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const op = "repository.account.GetByEmail"

	const query = "SELECT " + accountColumns + " FROM account WHERE email = ?;"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select account failed: %w", op, err)
	}

	return &account, nil
}

// GetByEmailAndCode matches both columns in one lookup so a miss does not tell which one was wrong.
func (r *accountRepository) GetByEmailAndCode(ctx context.Context, email string, code string) (*domain.Account, error) {
	const op = "repository.account.GetByEmailAndCode"

	const query = "SELECT " + accountColumns + " FROM account WHERE email = ? AND verification_code = ?;"

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select account failed: %w", op, err)
	}

	return &account, nil
}

// MarkVerified returns domain.ErrNoRowsAffected when the account was already verified.
func (r *accountRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const op = "repository.account.MarkVerified"

	const query = `
	UPDATE account
	SET verified = ?, verified_at = ?, updated_at = ?
	WHERE id = uuid_to_bin(?) AND verified = ?;
	`

	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, true, now, now, id, false)
	if err != nil {
		return fmt.Errorf("%s: update account failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
