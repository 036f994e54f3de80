package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
)

func TestBootstrapAcceptsValidSession(t *testing.T) {
	kv := persistence.NewMemoryKV()
	raw, err := json.Marshal(domain.UserProfile{ID: "u-1", Email: "a@b.c", Name: "Ana", Role: domain.RoleVolunteer, IsActive: true})
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), SessionKey, string(raw)))

	holder := NewSessionHolder(kv, events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, holder.Bootstrap(context.Background()))

	current := holder.Current()
	require.NotNil(t, current)
	require.Equal(t, "u-1", current.ID)
}

func TestBootstrapClearsSessionWithEmptyID(t *testing.T) {
	kv := persistence.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), SessionKey, `{"id": ""}`))

	holder := NewSessionHolder(kv, events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, holder.Bootstrap(context.Background()))

	require.Nil(t, holder.Current())
	_, ok, err := kv.Get(context.Background(), SessionKey)
	require.NoError(t, err)
	require.False(t, ok, "key should be cleared")
}

func TestBootstrapClearsCorruptSession(t *testing.T) {
	kv := persistence.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), SessionKey, "{{{"))

	holder := NewSessionHolder(kv, events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, holder.Bootstrap(context.Background()))

	require.Nil(t, holder.Current())
	_, ok, err := kv.Get(context.Background(), SessionKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBootstrapWithNoStoredSession(t *testing.T) {
	holder := NewSessionHolder(persistence.NewMemoryKV(), events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, holder.Bootstrap(context.Background()))
	require.Nil(t, holder.Current())
}

func TestSetAndClearBroadcastAuthState(t *testing.T) {
	kv := persistence.NewMemoryKV()
	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.Event
	dispatcher.Subscribe(events.EventAuthStateChanged, func(_ context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})

	holder := NewSessionHolder(kv, dispatcher, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, holder.Set(ctx, domain.UserProfile{ID: "u-1", Name: "Ana", Role: domain.RoleNGO, IsActive: true}))
	require.NotNil(t, holder.Current())

	raw, ok, err := kv.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	var stored domain.UserProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, "u-1", stored.ID)

	require.NoError(t, holder.Clear(ctx))
	require.Nil(t, holder.Current())
	_, ok, err = kv.Get(ctx, SessionKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.Len(t, seen, 2)
}
