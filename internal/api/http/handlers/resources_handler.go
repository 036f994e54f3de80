package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/relief-service/internal/api/dto"
	"github.com/spec-kit/relief-service/internal/auth"
	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/service"
	"github.com/spec-kit/relief-service/internal/store"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// ResourcesHandler manages resource and response endpoints.
type ResourcesHandler struct {
	service *service.ResourceService
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler(resourceService *service.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{service: resourceService}
}

// ListTemplates GET /resources/templates.
func (h *ResourcesHandler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": service.Templates()})
}

// Create POST /resources.
func (h *ResourcesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ResourceCreateInput{
		Type:           req.Type,
		Category:       req.Category,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		LocationDetail: req.LocationDetail,
		Contact:        req.Contact,
		Urgent:         req.Urgent,
		PeopleAffected: req.PeopleAffected,
		Items:          req.Items,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Profile != nil {
		input.UserID = principal.Profile.ID
		input.UserName = principal.Profile.Name
	}

	created, err := h.service.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": created})
}

// CreateFromTemplate POST /resources/from-template.
func (h *ResourcesHandler) CreateFromTemplate(c *fiber.Ctx) error {
	var req dto.CreateFromTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TemplateID == "" || req.Location == "" {
		return apperrors.NewValidationError("template_id and location required", nil)
	}

	var userID, userName string
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Profile != nil {
		userID = principal.Profile.ID
		userName = principal.Profile.Name
	}

	created, err := h.service.CreateFromTemplate(c.Context(), req.TemplateID, req.Location, userID, userName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": created})
}

// List GET /resources.
func (h *ResourcesHandler) List(c *fiber.Ctx) error {
	filter := service.ResourceFilter{
		Type:       domain.ResourceType(c.Query("type")),
		Category:   domain.ResourceCategory(c.Query("category")),
		Status:     domain.ResourceStatus(c.Query("status")),
		UrgentOnly: c.QueryBool("urgent"),
	}
	return c.JSON(fiber.Map{"data": h.service.List(c.Context(), filter)})
}

// UpdateStatus PATCH /resources/:id/status.
func (h *ResourcesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateResourceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": updated})
}

// Respond POST /resources/:id/responses.
func (h *ResourcesHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.service.Respond(c.Context(), principal.Profile.ID, domain.ResourceResponse{
		RequestID: c.Params("id"),
		Type:      req.Type,
		Category:  req.Category,
		Title:     req.Title,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": created})
}

// ListResponses GET /responses.
func (h *ResourcesHandler) ListResponses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Responses(c.Context())})
}

// UpdateResponse PATCH /responses/:id.
func (h *ResourcesHandler) UpdateResponse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.service.UpdateResponse(c.Context(), principal.Profile.ID, c.Params("id"), store.ResponsePatch{
		Type:     req.Type,
		Category: req.Category,
		Title:    req.Title,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": updated})
}
