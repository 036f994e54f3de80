package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// DirectoryKey is the partition listing volunteers and NGOs.
const DirectoryKey = "users"

// DirectoryService maintains the volunteer/NGO directory partition.
type DirectoryService struct {
	kv         persistence.KV
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(kv persistence.KV, dispatcher events.Dispatcher, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{kv: kv, dispatcher: dispatcher, logger: logger}
}

// List returns the directory entries. A corrupt partition reads as
// empty.
func (s *DirectoryService) List(ctx context.Context) ([]domain.UserProfile, error) {
	raw, ok, err := s.kv.Get(ctx, DirectoryKey)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, nil
	}
	var users []domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warn("corrupt directory ignored", zap.Error(err))
		return nil, nil
	}
	return users, nil
}

// Lookup finds a directory entry by id.
func (s *DirectoryService) Lookup(ctx context.Context, userID string) (*domain.UserProfile, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Upsert replaces the entry with the same id, or appends a new one, and
// announces the directory change.
func (s *DirectoryService) Upsert(ctx context.Context, profile domain.UserProfile) error {
	users, err := s.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].ID == profile.ID {
			users[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, profile)
	}

	raw, err := json.Marshal(users)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.kv.Set(ctx, DirectoryKey, string(raw)); err != nil {
		return apperrors.MapError(err)
	}

	event := events.New(events.EventUsersUpdated, DirectoryKey, nil)
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish users-updated", zap.Error(err))
	}
	return nil
}
