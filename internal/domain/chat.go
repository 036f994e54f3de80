package domain

// ChatMessage is one entry in a per-contact conversation partition.
// CreatedAt is epoch milliseconds.
type ChatMessage struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"time"`
}
