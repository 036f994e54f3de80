package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/persistence"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// ChatKeyPrefix prefixes per-contact conversation partitions.
const ChatKeyPrefix = "chat_"

// ChatService stores per-contact conversations. Contacts must exist in
// the directory; messaging an unknown contact is a user-visible error,
// not a silent drop.
type ChatService struct {
	kv        persistence.KV
	directory *DirectoryService
	logger    *zap.Logger
	now       func() int64
}

// NewChatService constructs the service.
func NewChatService(kv persistence.KV, directory *DirectoryService, logger *zap.Logger) *ChatService {
	return &ChatService{kv: kv, directory: directory, logger: logger, now: nowMillis}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// ChatKey returns the partition key for a contact's conversation.
func ChatKey(contactID string) string {
	return ChatKeyPrefix + contactID
}

// Send appends a message to the conversation with the given contact.
func (s *ChatService) Send(ctx context.Context, contactID, senderID, text string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	contact, err := s.directory.Lookup(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.NewNotFound("contact", map[string]any{"contact_id": contactID})
	}

	history, err := s.History(ctx, contactID)
	if err != nil {
		return nil, err
	}

	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		CreatedAt: s.now(),
	}
	history = append(history, msg)

	raw, err := json.Marshal(history)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.kv.Set(ctx, ChatKey(contactID), string(raw)); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &msg, nil
}

// History returns the conversation with the given contact in
// chronological order. A corrupt partition reads as empty.
func (s *ChatService) History(ctx context.Context, contactID string) ([]domain.ChatMessage, error) {
	raw, ok, err := s.kv.Get(ctx, ChatKey(contactID))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !ok {
		return nil, nil
	}
	var history []domain.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("corrupt conversation ignored", zap.String("contact_id", contactID), zap.Error(err))
		return nil, nil
	}
	return history, nil
}
