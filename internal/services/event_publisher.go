package services

import (
	"context"
	"encoding/json"
	"time"

	"bilim-chat/internal/domain/chat"
	"bilim-chat/internal/domain/message"
	"bilim-chat/internal/events"
	"bilim-chat/internal/metrics"
	"bilim-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher pushes change notifications to the owner's channel.
// Delivery is best effort: failures are logged and never reach the caller.
// A nil *EventPublisher is valid and publishes nothing.
type EventPublisher struct {
	publisher events.Publisher
	logger    *logger.Logger
}

func NewEventPublisher(publisher events.Publisher, l *logger.Logger) *EventPublisher {
	return &EventPublisher{publisher: publisher, logger: l}
}

type chatPayload struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type messagePayload struct {
	ID        uuid.UUID `json:"id"`
	ChatID    uuid.UUID `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *EventPublisher) ChatCreated(ctx context.Context, c chat.Chat) {
	p.publish(ctx, c.UserID, events.EventTypeChatCreated, events.AggregateTypeChat, c.ID, chatPayload{
		ID: c.ID, UserID: c.UserID, Title: c.Title, CreatedAt: c.CreatedAt,
	})
}

func (p *EventPublisher) ChatDeleted(ctx context.Context, c chat.Chat, deletedMessages int64) {
	p.publish(ctx, c.UserID, events.EventTypeChatDeleted, events.AggregateTypeChat, c.ID, map[string]any{
		"id":              c.ID,
		"deletedMessages": deletedMessages,
	})
}

func (p *EventPublisher) MessageCreated(ctx context.Context, ownerID uuid.UUID, m message.Message) {
	p.publish(ctx, ownerID, events.EventTypeMessageCreated, events.AggregateTypeMessage, m.ID, messagePayload{
		ID: m.ID, ChatID: m.ChatID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt,
	})
}

func (p *EventPublisher) publish(ctx context.Context, ownerID uuid.UUID, eventType, aggregateType string, aggregateID uuid.UUID, payload any) {
	if p == nil || p.publisher == nil {
		return
	}

	env, err := events.NewEnvelope(eventType, aggregateType, aggregateID.String(), time.Now().UTC(), payload)
	if err != nil {
		p.logError(ctx, eventType, err)
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		p.logError(ctx, eventType, err)
		return
	}

	err = p.publisher.Publish(ctx, events.UserChannel(ownerID.String()), data)
	metrics.RecordEvent(eventType, err)
	if err != nil {
		p.logError(ctx, eventType, err)
	}
}

func (p *EventPublisher) logError(ctx context.Context, eventType string, err error) {
	if p.logger == nil {
		return
	}
	p.logger.WithContext(ctx).Warn("event publish failed", zap.String("event_type", eventType), zap.Error(err))
}
