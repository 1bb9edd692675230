package server

import (
	"time"

	"bilim-chat/config"
	"bilim-chat/internal/events"
	"bilim-chat/internal/handler"
	"bilim-chat/internal/repository"
	"bilim-chat/internal/services"
	"bilim-chat/internal/websocket"
	"bilim-chat/pkg/logger"

	"gorm.io/gorm"
)

// Dependencies are the long-lived resources built by main.
type Dependencies struct {
	DB *gorm.DB
	// Publisher receives realtime events. Nil disables them.
	Publisher events.Publisher
	// Hub serves /ws when non-nil.
	Hub *websocket.Hub
	// Now stamps new chats and messages. Defaults to time.Now.
	Now func() time.Time
}

// NewHandlers builds repositories, services and handlers over deps.
func NewHandlers(cfg *config.Config, l *logger.Logger, deps Dependencies) (*Handlers, *services.TokenService) {
	userRepo := repository.NewUserRepository(deps.DB)
	chatRepo := repository.NewChatRepository(deps.DB)
	messageRepo := repository.NewMessageRepository(deps.DB)

	var publisher *services.EventPublisher
	if deps.Publisher != nil {
		publisher = services.NewEventPublisher(deps.Publisher, l)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	chatService := services.NewChatService(deps.DB, chatRepo, messageRepo, publisher)
	messageService := services.NewMessageService(chatRepo, messageRepo, publisher)
	if deps.Now != nil {
		chatService.WithClock(deps.Now)
		messageService.WithClock(deps.Now)
	}

	handlers := &Handlers{
		Health:  handler.NewHealthHandler(deps.DB),
		Auth:    handler.NewAuthHandler(authService),
		Chat:    handler.NewChatHandler(chatService),
		Message: handler.NewMessageHandler(messageService),
	}
	if deps.Hub != nil {
		handlers.WebSocket = websocket.NewHandler(tokens, deps.Hub, cfg.CORSOrigin, l)
	}
	return handlers, tokens
}
