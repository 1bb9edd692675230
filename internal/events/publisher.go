package events

import "context"

// Publisher delivers an encoded envelope to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Subscriber blocks delivering payloads from channels matching the patterns until ctx ends.
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}
