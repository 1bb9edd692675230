package websocket

import (
	"context"
	"sync"
)

type requestKind int

const (
	registerClient requestKind = iota
	unregisterClient
	subscribeClient
	unsubscribeClient
)

// hubRequest is one change to the hub's membership. Requests go through a
// single queue so a client's register, subscribe and unregister apply in order.
type hubRequest struct {
	kind    requestKind
	client  *Client
	channel string
}

// Hub manages WebSocket client connections and channel subscriptions.
// It also implements events.Publisher for single-node deployments without Redis.
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// channels maps channel name to set of clients subscribed to it
	channels map[string]map[*Client]struct{}

	requests chan hubRequest
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		channels: make(map[string]map[*Client]struct{}),
		requests: make(chan hubRequest, 512),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-h.requests:
			switch req.kind {
			case registerClient:
				h.addClient(req.client)
			case unregisterClient:
				h.removeClient(req.client)
			case subscribeClient:
				h.subscribeToChannel(req.client, req.channel)
			case unsubscribeClient:
				h.unsubscribeFromChannel(req.client, req.channel)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.requests <- hubRequest{kind: registerClient, client: client}
}

func (h *Hub) Unregister(client *Client) {
	h.requests <- hubRequest{kind: unregisterClient, client: client}
}

func (h *Hub) Subscribe(client *Client, channel string) {
	h.requests <- hubRequest{kind: subscribeClient, client: client, channel: channel}
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.requests <- hubRequest{kind: unsubscribeClient, client: client, channel: channel}
}

// Broadcast sends a message to all clients subscribed to a channel
func (h *Hub) Broadcast(channel string, payload []byte) {
	h.mu.RLock()
	for c := range h.channels[channel] {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// Publish delivers payload to local subscribers of channel. It never fails.
func (h *Hub) Publish(_ context.Context, channel string, payload []byte) error {
	h.Broadcast(channel, payload)
	return nil
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelSubscriberCount returns the number of subscribers for a channel
func (h *Hub) GetChannelSubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

// removeClient drops a client and its subscriptions, then closes its send channel.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for _, channel := range client.GetChannels() {
		if subscribers, ok := h.channels[channel]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.channels, channel)
			}
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) subscribeToChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// the client may already be gone
	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]struct{})
	}
	h.channels[channel][client] = struct{}{}
	client.Subscribe(channel)
}

func (h *Hub) unsubscribeFromChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscribers, ok := h.channels[channel]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.channels, channel)
		}
	}
	client.Unsubscribe(channel)
}
