package websocket

import (
	"context"

	"bilim-chat/internal/events"
)

// RedisBridge feeds envelopes published on any user channel into the local hub.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.ChannelPrefixUser + "*"}, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
