package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
)

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, username, passwordHash, firstName, lastName string) (*model.Account, error) {
	const query = `INSERT INTO accounts (username, password_hash, first_name, last_name)
                   VALUES ($1, $2, $3, $4) RETURNING created_at`
	var a model.Account
	err := r.q.QueryRow(ctx, query, username, passwordHash, firstName, lastName).Scan(&a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Username = username
	a.PasswordHash = passwordHash
	a.FirstName = firstName
	a.LastName = lastName
	return &a, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	const query = `SELECT username, password_hash, first_name, last_name, address, card_number, card_expiry, card_code, created_at
                   FROM accounts WHERE username=$1`
	var a model.Account
	err := r.q.QueryRow(ctx, query, username).Scan(
		&a.Username, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.Address, &a.CardNumber, &a.CardExpiry, &a.CardCode, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, account *model.Account) error {
	const query = `UPDATE accounts
                   SET first_name=$2, last_name=$3, address=$4, card_number=$5, card_expiry=$6, card_code=$7
                   WHERE username=$1`
	tag, err := r.q.Exec(ctx, query,
		account.Username, account.FirstName, account.LastName,
		account.Address, account.CardNumber, account.CardExpiry, account.CardCode,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	const query = `UPDATE accounts SET password_hash=$2 WHERE username=$1`
	tag, err := r.q.Exec(ctx, query, username, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
