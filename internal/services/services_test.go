package services

import (
	"context"
	"sync"
	"testing"

	"bilim-chat/internal/repository"
	"bilim-chat/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	channel string
	payload []byte
}

// memoryPublisher records everything published to it.
type memoryPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *memoryPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{channel: channel, payload: payload})
	return nil
}

func (p *memoryPublisher) recorded() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

type fixture struct {
	db        *gorm.DB
	auth      *AuthService
	tokens    *TokenService
	chats     *ChatService
	messages  *MessageService
	published *memoryPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	clock := testutil.NewClock()
	pub := &memoryPublisher{}
	events := NewEventPublisher(pub, nil)

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	tokens := NewTokenService("test-secret", TokenTTL)
	auth := NewAuthService(userRepo, tokens)
	chats := NewChatService(db, chatRepo, messageRepo, events)
	chats.now = clock.Now
	messages := NewMessageService(chatRepo, messageRepo, events)
	messages.now = clock.Now

	return &fixture{db: db, auth: auth, tokens: tokens, chats: chats, messages: messages, published: pub}
}

func (f *fixture) register(t *testing.T, email string) AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Password: "pw123456"})
	require.NoError(t, err)
	return res
}
