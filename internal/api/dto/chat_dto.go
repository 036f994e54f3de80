package dto

// SendMessageRequest posts a chat message to a contact's conversation.
type SendMessageRequest struct {
	Text string `json:"text"`
}
