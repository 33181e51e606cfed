package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vibe-gaming/gatekeeper/internal/domain"
	"github.com/vibe-gaming/gatekeeper/internal/repository"
)

type userService struct {
	accountRepository repository.Accounts
}

func newUserService(accountRepository repository.Accounts) *userService {
	return &userService{
		accountRepository: accountRepository,
	}
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, dependencyFailure("get account by id", err)
	}

	return account, nil
}
