package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/relief-service/internal/api/dto"
	"github.com/spec-kit/relief-service/internal/auth"
	"github.com/spec-kit/relief-service/internal/service"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// ChatHandler manages per-contact conversation endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send POST /chat/:contactId/messages.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	msg, err := h.chat.Send(c.Context(), c.Params("contactId"), principal.Profile.ID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": msg})
}

// History GET /chat/:contactId/messages.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	history, err := h.chat.History(c.Context(), c.Params("contactId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": history})
}
