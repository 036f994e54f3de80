package domain

// ResourceType distinguishes needs from offers.
type ResourceType string

const (
	ResourceTypeNeed  ResourceType = "need"
	ResourceTypeOffer ResourceType = "offer"
)

// ResourceCategory enumerates aid categories.
type ResourceCategory string

const (
	CategoryWater    ResourceCategory = "water"
	CategoryShelter  ResourceCategory = "shelter"
	CategoryFood     ResourceCategory = "food"
	CategorySupplies ResourceCategory = "supplies"
	CategoryMedical  ResourceCategory = "medical"
	CategorySafety   ResourceCategory = "safety"
)

// ResourceStatus enumerates handling states for a posted resource.
// Transitions are free-form; any value may be set at any time.
type ResourceStatus string

const (
	ResourceStatusPending    ResourceStatus = "pending"
	ResourceStatusAddressing ResourceStatus = "addressing"
	ResourceStatusResolved   ResourceStatus = "resolved"
)

// ResourceItem is a named quantity attached to a resource posting.
type ResourceItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Resource is a posted need-for or offer-of aid. CreatedAt is epoch
// milliseconds and immutable after creation; the id is unique within
// the combined persisted collection.
type Resource struct {
	ID             string           `json:"id"`
	Type           ResourceType     `json:"type"`
	Category       ResourceCategory `json:"category"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	LocationDetail string           `json:"locationDetail,omitempty"`
	Contact        string           `json:"contact,omitempty"`
	Urgent         bool             `json:"urgent,omitempty"`
	CreatedAt      int64            `json:"timestamp"`
	Status         ResourceStatus   `json:"status,omitempty"`
	AssignedTo     string           `json:"assignedTo,omitempty"`
	PeopleAffected int              `json:"people,omitempty"`
	UserID         string           `json:"userId,omitempty"`
	UserName       string           `json:"userName,omitempty"`
	Items          []ResourceItem   `json:"items,omitempty"`
}
