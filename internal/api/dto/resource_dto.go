package dto

import "github.com/spec-kit/relief-service/internal/domain"

// CreateResourceRequest posts a need or offer.
type CreateResourceRequest struct {
	Type           domain.ResourceType     `json:"type"`
	Category       domain.ResourceCategory `json:"category"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Location       string                  `json:"location"`
	LocationDetail string                  `json:"locationDetail,omitempty"`
	Contact        string                  `json:"contact,omitempty"`
	Urgent         bool                    `json:"urgent,omitempty"`
	PeopleAffected int                     `json:"people,omitempty"`
	Items          []domain.ResourceItem   `json:"items,omitempty"`
}

// CreateFromTemplateRequest instantiates a canned posting.
type CreateFromTemplateRequest struct {
	TemplateID string `json:"template_id"`
	Location   string `json:"location"`
}

// UpdateResourceStatusRequest sets a new handling status.
type UpdateResourceStatusRequest struct {
	Status domain.ResourceStatus `json:"status"`
}

// CreateResponseRequest replies to a resource request.
type CreateResponseRequest struct {
	RequestID string                  `json:"requestId"`
	Type      domain.ResponseType     `json:"type"`
	Category  domain.ResourceCategory `json:"category"`
	Title     string                  `json:"title"`
}

// UpdateResponseRequest patches a response record. Omitted fields are
// left unchanged.
type UpdateResponseRequest struct {
	Type     *domain.ResponseType     `json:"type,omitempty"`
	Category *domain.ResourceCategory `json:"category,omitempty"`
	Title    *string                  `json:"title,omitempty"`
	Status   *domain.ResponseStatus   `json:"status,omitempty"`
}
