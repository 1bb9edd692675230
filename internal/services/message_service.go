package services

import (
	"context"
	"errors"
	"time"

	"bilim-chat/internal/domain/message"
	"bilim-chat/internal/repository"
	apperrors "bilim-chat/pkg/errors"

	"github.com/google/uuid"
)

var errRoleContentRequired = apperrors.New(apperrors.ErrInvalidInput, "role and content required")

type MessageService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	events   *EventPublisher
	now      func() time.Time
}

func NewMessageService(chats repository.ChatRepository, messages repository.MessageRepository, events *EventPublisher) *MessageService {
	return &MessageService{chats: chats, messages: messages, events: events, now: time.Now}
}

type CreateMessageInput struct {
	Role    string
	Content string
}

// Owned reports errChatNotFound unless ownerID owns chatID.
func (s *MessageService) Owned(ctx context.Context, ownerID, chatID uuid.UUID) error {
	_, err := ownedChat(ctx, s.chats, ownerID, chatID)
	return err
}

// WithClock replaces the timestamp source for created messages.
func (s *MessageService) WithClock(now func() time.Time) *MessageService {
	s.now = now
	return s
}

// List returns the messages of a chat the caller owns, oldest first.
func (s *MessageService) List(ctx context.Context, ownerID, chatID uuid.UUID) ([]message.Message, error) {
	if _, err := ownedChat(ctx, s.chats, ownerID, chatID); err != nil {
		return nil, err
	}
	return s.messages.GetChatMessages(ctx, chatID)
}

// Create appends a message to a chat the caller owns. Ownership is checked
// before the body so a foreign chat never reveals validation details.
func (s *MessageService) Create(ctx context.Context, ownerID, chatID uuid.UUID, in CreateMessageInput) (message.Message, error) {
	if _, err := ownedChat(ctx, s.chats, ownerID, chatID); err != nil {
		return message.Message{}, err
	}
	if in.Role == "" || in.Content == "" {
		return message.Message{}, errRoleContentRequired
	}

	m := message.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		Role:      in.Role,
		Content:   in.Content,
		CreatedAt: s.now(),
	}
	if err := s.messages.Create(ctx, &m); err != nil {
		// the chat was deleted between the ownership check and the insert
		if errors.Is(err, apperrors.ErrNotFound) {
			return message.Message{}, errChatNotFound
		}
		return message.Message{}, err
	}

	s.events.MessageCreated(ctx, ownerID, m)
	return m, nil
}
