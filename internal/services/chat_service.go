package services

import (
	"context"
	"errors"
	"time"

	"bilim-chat/internal/domain/chat"
	"bilim-chat/internal/repository"
	apperrors "bilim-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errChatNotFound covers both a missing chat and one owned by someone else.
var errChatNotFound = apperrors.New(apperrors.ErrNotFound, "Not found")

type ChatService struct {
	db       *gorm.DB
	repo     repository.ChatRepository
	messages repository.MessageRepository
	events   *EventPublisher
	now      func() time.Time
}

// NewChatService wires the chat operations. When db is non-nil, Delete runs
// its ownership check and both deletes in one transaction.
func NewChatService(db *gorm.DB, repo repository.ChatRepository, messages repository.MessageRepository, events *EventPublisher) *ChatService {
	return &ChatService{db: db, repo: repo, messages: messages, events: events, now: time.Now}
}

// WithClock replaces the timestamp source for created chats.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

func (s *ChatService) List(ctx context.Context, ownerID uuid.UUID) ([]chat.Chat, error) {
	return s.repo.GetUserChats(ctx, ownerID)
}

func (s *ChatService) Create(ctx context.Context, ownerID uuid.UUID, title *string) (chat.Chat, error) {
	c := chat.Chat{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     title,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return chat.Chat{}, err
	}

	s.events.ChatCreated(ctx, c)
	return c, nil
}

// Delete removes the caller's chat: messages first, then the chat row.
func (s *ChatService) Delete(ctx context.Context, ownerID, chatID uuid.UUID) error {
	var (
		deleted chat.Chat
		count   int64
	)
	run := func(chats repository.ChatRepository, messages repository.MessageRepository) error {
		c, err := ownedChat(ctx, chats, ownerID, chatID)
		if err != nil {
			return err
		}
		n, err := messages.DeleteChatMessages(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := chats.Delete(ctx, c.ID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return errChatNotFound
			}
			return err
		}
		deleted, count = c, n
		return nil
	}

	var err error
	if s.db == nil {
		err = run(s.repo, s.messages)
	} else {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return run(repository.NewChatRepository(tx), repository.NewMessageRepository(tx))
		})
	}
	if err != nil {
		return err
	}

	s.events.ChatDeleted(ctx, deleted, count)
	return nil
}

// ownedChat loads chatID and checks that ownerID owns it.
func ownedChat(ctx context.Context, chats repository.ChatRepository, ownerID, chatID uuid.UUID) (chat.Chat, error) {
	c, err := chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return chat.Chat{}, errChatNotFound
		}
		return chat.Chat{}, err
	}
	if !c.OwnedBy(ownerID) {
		return chat.Chat{}, errChatNotFound
	}
	return c, nil
}
