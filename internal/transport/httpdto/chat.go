package httpdto

import (
	"time"

	"bilim-chat/internal/domain/chat"

	"github.com/google/uuid"
)

// CreateChatRequest is used for POST /chats. The body may be omitted.
type CreateChatRequest struct {
	Title *string `json:"title"`
}

type ChatDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromChat(c chat.Chat) ChatDTO {
	return ChatDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func FromChats(chats []chat.Chat) []ChatDTO {
	out := make([]ChatDTO, 0, len(chats))
	for _, c := range chats {
		out = append(out, FromChat(c))
	}
	return out
}
