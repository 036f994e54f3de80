package auth

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
)

// SessionKey is the partition holding the current session profile.
const SessionKey = "authUser"

// SessionHolder provides the single current-session value, derived from
// durable storage and kept in sync after mutations. Bootstrap fails
// closed: anything unparseable or missing an id clears the stored key
// and yields no session.
type SessionHolder struct {
	kv         persistence.KV
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu      sync.RWMutex
	current *domain.UserProfile
}

// NewSessionHolder builds a holder over the given partition backend.
func NewSessionHolder(kv persistence.KV, dispatcher events.Dispatcher, logger *zap.Logger) *SessionHolder {
	return &SessionHolder{kv: kv, dispatcher: dispatcher, logger: logger}
}

// Bootstrap reads the stored session. Only a parsed value with a
// non-empty id is accepted; everything else clears the key.
func (h *SessionHolder) Bootstrap(ctx context.Context) error {
	raw, ok, err := h.kv.Get(ctx, SessionKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		h.logger.Warn("corrupt session cleared", zap.Error(err))
		return h.kv.Delete(ctx, SessionKey)
	}
	if profile.ID == "" {
		h.logger.Warn("stored session missing id; cleared")
		return h.kv.Delete(ctx, SessionKey)
	}

	h.mu.Lock()
	h.current = &profile
	h.mu.Unlock()
	return nil
}

// Current returns a copy of the held session, or nil when signed out.
func (h *SessionHolder) Current() *domain.UserProfile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	cp := *h.current
	return &cp
}

// Set persists the profile as the current session and broadcasts the
// change.
func (h *SessionHolder) Set(ctx context.Context, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := h.kv.Set(ctx, SessionKey, string(raw)); err != nil {
		return err
	}

	h.mu.Lock()
	h.current = &profile
	h.mu.Unlock()

	h.broadcast(ctx, profile.ID, "session-set")
	return nil
}

// Clear drops the session from storage and memory and broadcasts the
// change.
func (h *SessionHolder) Clear(ctx context.Context) error {
	if err := h.kv.Delete(ctx, SessionKey); err != nil {
		return err
	}

	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()

	h.broadcast(ctx, "", "session-cleared")
	return nil
}

func (h *SessionHolder) broadcast(ctx context.Context, userID, reason string) {
	if h.dispatcher == nil {
		return
	}
	event := events.New(events.EventAuthStateChanged, SessionKey, events.AuthStateChangedPayload{
		UserID: userID,
		Reason: reason,
	})
	if err := h.dispatcher.Publish(ctx, event); err != nil {
		h.logger.Warn("broadcast auth state", zap.Error(err))
	}
}
