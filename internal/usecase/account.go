package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
	pkgAuth "github.com/servery/servery/internal/pkg/auth"
)

// AccountUseCase handles account lifecycle and session token management.
type AccountUseCase struct {
	store  repository.Store
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(store repository.Store, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AccountUseCase {
	return &AccountUseCase{store: store, hasher: hasher, tokens: strategy}
}

// Register creates a new account and returns a session token.
func (u *AccountUseCase) Register(ctx context.Context, username, password, firstName, lastName string) (*model.Account, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	account, err := u.store.Accounts().Create(ctx, username, hash, firstName, lastName)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(account.Username)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// Authenticate validates credentials and returns a session token.
func (u *AccountUseCase) Authenticate(ctx context.Context, username, password string) (*model.Account, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	account, err := u.store.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(account.Username)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

// ParseToken extracts the username from a session token.
func (u *AccountUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Get fetches an account by username.
func (u *AccountUseCase) Get(ctx context.Context, username string) (*model.Account, error) {
	return u.store.Accounts().GetByUsername(ctx, username)
}

// UpdateProfile overwrites name and billing fields. Orders paid before the
// update keep their snapshotted address and total.
func (u *AccountUseCase) UpdateProfile(ctx context.Context, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode string) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		account, err := repos.Accounts().GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		account.FirstName = firstName
		account.LastName = lastName
		account.Address = address
		account.CardNumber = cardNumber
		account.CardExpiry = cardExpiry
		account.CardCode = cardCode
		return repos.Accounts().UpdateProfile(ctx, account)
	})
}

// ChangePassword rehashes and stores a new password.
func (u *AccountUseCase) ChangePassword(ctx context.Context, username, password string) error {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	return u.store.Accounts().UpdatePassword(ctx, username, hash)
}
