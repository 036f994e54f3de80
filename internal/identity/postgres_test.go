package identity

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/relief-service/internal/repository"
)

type fakeAccounts struct {
	byEmail map[string]*repository.Account
	nextID  int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: map[string]*repository.Account{}, nextID: 1}
}

func (f *fakeAccounts) Create(_ context.Context, account *repository.Account) error {
	if _, ok := f.byEmail[account.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	account.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.nextID++
	f.byEmail[account.Email] = account
	return nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*repository.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	for email, account := range f.byEmail {
		if account.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func TestSignUpThenSignIn(t *testing.T) {
	provider := NewPostgresProvider(newFakeAccounts(), bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	accountID, err := provider.SignUp(ctx, "  Ada@Example.COM ", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, accountID)

	got, err := provider.SignInWithPassword(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, accountID, got)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	accounts := newFakeAccounts()
	provider := NewPostgresProvider(accounts, bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	_, err := provider.SignUp(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)

	_, err = provider.SignInWithPassword(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = provider.SignInWithPassword(ctx, "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	provider := NewPostgresProvider(newFakeAccounts(), bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	_, err := provider.SignUp(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)

	_, err = provider.SignUp(ctx, "ada@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteAccountRemovesCredential(t *testing.T) {
	accounts := newFakeAccounts()
	provider := NewPostgresProvider(accounts, bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	accountID, err := provider.SignUp(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, provider.DeleteAccount(ctx, accountID))
	_, err = provider.SignInWithPassword(ctx, "ada@example.com", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
