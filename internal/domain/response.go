package domain

// ResponseType distinguishes an offer of help from a request for it.
type ResponseType string

const (
	ResponseTypeOffer   ResponseType = "offer"
	ResponseTypeRequest ResponseType = "request"
)

// ResponseStatus enumerates acceptance states for a response.
type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusAccepted ResponseStatus = "accepted"
	ResponseStatusRejected ResponseStatus = "rejected"
)

// ResourceResponse links a responding user to a resource request. It is
// stored under a per-user partition; the id is unique within that
// partition. CreatedAt is epoch milliseconds.
type ResourceResponse struct {
	ID        string           `json:"id"`
	RequestID string           `json:"requestId"`
	Type      ResponseType     `json:"type"`
	Category  ResourceCategory `json:"category"`
	Title     string           `json:"title"`
	CreatedAt int64            `json:"time"`
	Status    ResponseStatus   `json:"status"`
}
