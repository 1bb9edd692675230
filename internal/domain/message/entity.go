package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_chat_created,priority:1"`
	Role      string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_messages_chat_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}
