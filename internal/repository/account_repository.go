package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Account is a credential record in the identity store.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
}

// AccountRepository defines persistence access for credentials.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Delete(ctx context.Context, id string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *Account) error {
	const query = `
        INSERT INTO accounts (email, password_hash)
        VALUES ($1, $2)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
	).Scan(&account.ID)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `
        SELECT id, email, password_hash
        FROM accounts WHERE email=$1`

	var account Account
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
