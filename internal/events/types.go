package events

// Event type constants. These follow the format: domain.action
const (
	EventTypeChatCreated    = "chat.created"
	EventTypeChatDeleted    = "chat.deleted"
	EventTypeMessageCreated = "message.created"
)

const (
	AggregateTypeChat    = "chat"
	AggregateTypeMessage = "message"
)

// ChannelPrefixUser prefixes the per-owner channel every event is routed to.
const ChannelPrefixUser = "channel:user:"

// UserChannel is the channel that carries events for resources owned by userID.
func UserChannel(userID string) string {
	return ChannelPrefixUser + userID
}
