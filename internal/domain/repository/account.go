package repository

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, username, passwordHash, firstName, lastName string) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	UpdateProfile(ctx context.Context, account *model.Account) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
