package chat

import (
	"time"

	"github.com/google/uuid"
)

// Chat represents the chats table. UserID is the owner and never changes.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_chats_user_created,priority:1"`
	Title     *string
	CreatedAt time.Time `gorm:"index:idx_chats_user_created,priority:2"`
}

func (Chat) TableName() string {
	return "chats"
}

func (c Chat) OwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}
