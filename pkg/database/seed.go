package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bilim-chat/internal/domain/chat"
	"bilim-chat/internal/domain/message"
	"bilim-chat/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password string
	Users    []SeedUser
}

type SeedUser struct {
	Email       string
	DisplayName string
	ChatTitles  []string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password: "pw123456",
		Users: []SeedUser{
			{Email: "alice@example.com", DisplayName: "Alice", ChatTitles: []string{"trip", "reading list"}},
			{Email: "bob@example.com", DisplayName: "Bob", ChatTitles: []string{"groceries"}},
		},
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []*user.User
	Chats    []*chat.Chat
	Messages []*message.Message
}

// Seed creates the configured users, each with a few chats and a short
// exchange per chat. Users that already exist are left untouched.
func Seed(ctx context.Context, db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result := &SeedResult{}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := time.Now().UTC()
		for _, su := range cfg.Users {
			var existing user.User
			err := tx.Where("email = ?", su.Email).First(&existing).Error
			if err == nil {
				log.Printf("User %s already exists, skipping", su.Email)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			displayName := su.DisplayName
			u := &user.User{
				ID:           uuid.New(),
				Email:        su.Email,
				PasswordHash: string(hash),
				DisplayName:  &displayName,
				CreatedAt:    base,
				UpdatedAt:    base,
			}
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
			}
			result.Users = append(result.Users, u)

			for i, title := range su.ChatTitles {
				title := title
				created := base.Add(time.Duration(i) * time.Minute)
				c := &chat.Chat{ID: uuid.New(), UserID: u.ID, Title: &title, CreatedAt: created}
				if err := tx.Create(c).Error; err != nil {
					return fmt.Errorf("failed to seed chat %q: %w", title, err)
				}
				result.Chats = append(result.Chats, c)

				turns := []message.Message{
					{Role: "user", Content: "Let's talk about " + title + "."},
					{Role: "assistant", Content: "Sure, what would you like to know about " + title + "?"},
				}
				for j := range turns {
					m := turns[j]
					m.ID = uuid.New()
					m.ChatID = c.ID
					m.CreatedAt = created.Add(time.Duration(j+1) * time.Second)
					if err := tx.Create(&m).Error; err != nil {
						return fmt.Errorf("failed to seed message: %w", err)
					}
					result.Messages = append(result.Messages, &m)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Seeded %d users, %d chats, %d messages", len(result.Users), len(result.Chats), len(result.Messages))
	return result, nil
}

// SeedDevelopment seeds with the default development data set.
func SeedDevelopment(ctx context.Context, db *gorm.DB) (*SeedResult, error) {
	return Seed(ctx, db, DefaultSeedConfig())
}
