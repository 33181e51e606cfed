package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	getErr    error
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.accounts[account.Email]; ok {
		return domain.ErrDuplicateEntry
	}
	stored := *account
	f.accounts[account.Email] = &stored
	return nil
}

func (f *fakeAccountRepo) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAccountRepo) GetByEmailAndCode(_ context.Context, email string, code string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	if !ok || !a.VerificationCode.Valid || a.VerificationCode.String != code {
		return nil, domain.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAccountRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			if a.Verified {
				return domain.ErrNoRowsAffected
			}
			now := time.Now()
			a.Verified = true
			a.VerifiedAt = &now
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (f *fakeAccountRepo) get(email string) *domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[email]
}

type fakeAuditLog struct {
	mu      sync.Mutex
	records []domain.AuditRecord
	err     error
}

func (f *fakeAuditLog) Append(_ context.Context, record *domain.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAuditLog) actions() []domain.AuditAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r.Action)
	}
	return out
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) ScheduleVerificationEmail(ctx context.Context, account *domain.Account, delay time.Duration) error {
	args := m.Called(ctx, account, delay)
	return args.Error(0)
}

type fixedCode string

func (c fixedCode) RandomCode() string { return string(c) }
