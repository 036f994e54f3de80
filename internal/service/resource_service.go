package service

import (
	"context"
	"strings"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/store"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

// ResourceService coordinates resource and response workflows over the
// partition-backed store.
type ResourceService struct {
	store *store.Store
}

// NewResourceService constructs the service.
func NewResourceService(st *store.Store) *ResourceService {
	return &ResourceService{store: st}
}

// ResourceCreateInput describes a resource posting.
type ResourceCreateInput struct {
	Type           domain.ResourceType
	Category       domain.ResourceCategory
	Title          string
	Description    string
	Location       string
	LocationDetail string
	Contact        string
	Urgent         bool
	PeopleAffected int
	UserID         string
	UserName       string
	Items          []domain.ResourceItem
}

// ResourceFilter narrows the merged resource view.
type ResourceFilter struct {
	Type       domain.ResourceType
	Category   domain.ResourceCategory
	Status     domain.ResourceStatus
	UrgentOnly bool
}

// Create validates and persists a custom resource posting.
func (s *ResourceService) Create(ctx context.Context, input ResourceCreateInput) (*domain.Resource, error) {
	if err := validateResourceInput(input); err != nil {
		return nil, err
	}

	created, err := s.store.AddResource(ctx, domain.Resource{
		Type:           input.Type,
		Category:       input.Category,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Location:       strings.TrimSpace(input.Location),
		LocationDetail: input.LocationDetail,
		Contact:        input.Contact,
		Urgent:         input.Urgent,
		Status:         domain.ResourceStatusPending,
		PeopleAffected: input.PeopleAffected,
		UserID:         input.UserID,
		UserName:       input.UserName,
		Items:          input.Items,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &created, nil
}

// CreateFromTemplate instantiates a canned need/offer template at the
// given location.
func (s *ResourceService) CreateFromTemplate(ctx context.Context, templateID, location, userID, userName string) (*domain.Resource, error) {
	tpl, ok := TemplateByID(templateID)
	if !ok {
		return nil, apperrors.NewNotFound("template", map[string]any{"template_id": templateID})
	}
	return s.Create(ctx, ResourceCreateInput{
		Type:        tpl.Type,
		Category:    tpl.Category,
		Title:       tpl.Title,
		Description: tpl.Description,
		Location:    location,
		Urgent:      tpl.Urgent,
		Items:       tpl.Items,
		UserID:      userID,
		UserName:    userName,
	})
}

// List returns the merged resource view, optionally filtered.
func (s *ResourceService) List(_ context.Context, filter ResourceFilter) []domain.Resource {
	all := s.store.Resources()
	out := make([]domain.Resource, 0, len(all))
	for _, res := range all {
		if filter.Type != "" && res.Type != filter.Type {
			continue
		}
		if filter.Category != "" && res.Category != filter.Category {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		if filter.UrgentOnly && !res.Urgent {
			continue
		}
		out = append(out, res)
	}
	return out
}

// UpdateStatus sets a new handling status for the resource.
func (s *ResourceService) UpdateStatus(ctx context.Context, id string, status domain.ResourceStatus) (*domain.Resource, error) {
	if !validResourceStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	updated, err := s.store.UpdateResourceStatus(ctx, id, status)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("resource", map[string]any{"resource_id": id})
	}
	return updated, nil
}

// Respond records a user's reply to a resource request.
func (s *ResourceService) Respond(ctx context.Context, userID string, input domain.ResourceResponse) (*domain.ResourceResponse, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if input.RequestID == "" || strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("request id and title required", nil)
	}
	if input.Status == "" {
		input.Status = domain.ResponseStatusPending
	}
	created, err := s.store.AddResponse(ctx, userID, input)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &created, nil
}

// Responses returns the flattened response view across all users.
func (s *ResourceService) Responses(_ context.Context) []domain.ResourceResponse {
	return s.store.Responses()
}

// UpdateResponse patches a user's response record.
func (s *ResourceService) UpdateResponse(ctx context.Context, userID, responseID string, patch store.ResponsePatch) (*domain.ResourceResponse, error) {
	if patch.Status != nil && !validResponseStatus(*patch.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *patch.Status})
	}
	updated, err := s.store.UpdateResponse(ctx, userID, responseID, patch)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("response", map[string]any{"response_id": responseID})
	}
	return updated, nil
}

func validateResourceInput(input ResourceCreateInput) error {
	details := map[string]any{}
	if input.Type != domain.ResourceTypeNeed && input.Type != domain.ResourceTypeOffer {
		details["type"] = input.Type
	}
	if !validCategory(input.Category) {
		details["category"] = input.Category
	}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Location) == "" {
		details["location"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid resource", details)
	}
	return nil
}

func validCategory(category domain.ResourceCategory) bool {
	switch category {
	case domain.CategoryWater, domain.CategoryShelter, domain.CategoryFood,
		domain.CategorySupplies, domain.CategoryMedical, domain.CategorySafety:
		return true
	}
	return false
}

func validResourceStatus(status domain.ResourceStatus) bool {
	switch status {
	case domain.ResourceStatusPending, domain.ResourceStatusAddressing, domain.ResourceStatusResolved:
		return true
	}
	return false
}

func validResponseStatus(status domain.ResponseStatus) bool {
	switch status {
	case domain.ResponseStatusPending, domain.ResponseStatusAccepted, domain.ResponseStatusRejected:
		return true
	}
	return false
}
