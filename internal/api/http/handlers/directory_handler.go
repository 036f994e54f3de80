package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/service"
)

// DirectoryHandler serves the volunteer/NGO directory.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List GET /directory.
func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	users, err := h.directory.List(c.Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.UserProfile{}
	}
	return c.JSON(fiber.Map{"data": users})
}
