package repository

import (
	"context"

	"bilim-chat/internal/domain/message"
	apperrors "bilim-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Create inserts m. A foreign key violation means the parent chat is gone.
func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return apperrors.ErrNotFound
		}
		return res.Error
	}
	return nil
}

// GetChatMessages returns a chat's messages, oldest first.
func (r *PostgresMessageRepository) GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error) {
	messages := make([]message.Message, 0)
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) DeleteChatMessages(ctx context.Context, chatID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&message.Message{}, "chat_id = ?", chatID)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
