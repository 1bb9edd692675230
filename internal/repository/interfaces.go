package repository

import (
	"context"

	"github.com/google/uuid"

	"bilim-chat/internal/domain/chat"
	"bilim-chat/internal/domain/message"
	"bilim-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

type ChatRepository interface {
	Create(ctx context.Context, c *chat.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error)
	DeleteChatMessages(ctx context.Context, chatID uuid.UUID) (int64, error)
}
