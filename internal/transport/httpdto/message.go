package httpdto

import (
	"time"

	"bilim-chat/internal/domain/message"

	"github.com/google/uuid"
)

// CreateMessageRequest is used for POST /messages/:chatId. Role and content
// are checked by the service after chat ownership, so they carry no binding tags.
type CreateMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromMessage(m message.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func FromMessages(messages []message.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, FromMessage(m))
	}
	return out
}
