package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/relief-service/internal/domain"
)

type postgresProfileStore struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileStore returns a Postgres-backed ProfileStore.
func NewPostgresProfileStore(pool *pgxpool.Pool) ProfileStore {
	return &postgresProfileStore{pool: pool}
}

func (s *postgresProfileStore) Select(ctx context.Context, userID string) (*domain.UserProfile, error) {
	const query = `
        SELECT user_id, email, name, role, COALESCE(profile_image, ''), can_volunteer, is_active
        FROM profiles WHERE user_id=$1`

	var profile domain.UserProfile
	if err := s.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Name,
		&profile.Role,
		&profile.ProfileImage,
		&profile.CanVolunteer,
		&profile.IsActive,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *postgresProfileStore) Insert(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO profiles (user_id, email, name, role, profile_image, can_volunteer, is_active)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	_, err := s.pool.Exec(ctx, query,
		profile.ID,
		profile.Email,
		profile.Name,
		profile.Role,
		profile.ProfileImage,
		profile.CanVolunteer,
		profile.IsActive,
	)
	return err
}

func (s *postgresProfileStore) Update(ctx context.Context, userID string, patch ProfilePatch) (*domain.UserProfile, error) {
	const query = `
        UPDATE profiles SET
            name=COALESCE($1::text, name),
            role=COALESCE($2::text, role),
            profile_image=COALESCE($3::text, profile_image),
            can_volunteer=COALESCE($4::boolean, can_volunteer),
            updated_at=NOW()
        WHERE user_id=$5`

	cmd, err := s.pool.Exec(ctx, query,
		patch.Name,
		patch.Role,
		patch.ProfileImage,
		patch.CanVolunteer,
		userID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrProfileNotFound
	}
	return s.Select(ctx, userID)
}
