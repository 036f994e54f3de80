package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/repository"
)

// PostgresProvider is the builtin identity implementation: credentials
// in Postgres, bcrypt hashing, stateless sessions (SignOut has nothing
// to revoke server-side and only logs).
type PostgresProvider struct {
	accounts   repository.AccountRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewPostgresProvider builds the provider.
func NewPostgresProvider(accounts repository.AccountRepository, bcryptCost int, logger *zap.Logger) *PostgresProvider {
	return &PostgresProvider{accounts: accounts, bcryptCost: bcryptCost, logger: logger}
}

// SignInWithPassword verifies credentials against the accounts table.
func (p *PostgresProvider) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	account, err := p.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := comparePassword(account.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return account.ID, nil
}

// SignUp creates a credential record and returns its id.
func (p *PostgresProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	hash, err := hashPassword(password, p.bcryptCost)
	if err != nil {
		return "", err
	}
	account := &repository.Account{Email: normalizeEmail(email), PasswordHash: hash}
	if err := p.accounts.Create(ctx, account); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return account.ID, nil
}

// SignOut revokes the session. Access tokens are stateless, so there is
// no server-side state to drop.
func (p *PostgresProvider) SignOut(_ context.Context, accountID string) error {
	p.logger.Debug("session revoked", zap.String("account_id", accountID))
	return nil
}

// DeleteAccount removes the credential record. Profile rows cascade.
func (p *PostgresProvider) DeleteAccount(ctx context.Context, accountID string) error {
	return p.accounts.Delete(ctx, accountID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
