package websocket

import (
	"context"
	"net/http"

	"bilim-chat/internal/events"
	"bilim-chat/internal/handler"
	"bilim-chat/internal/metrics"
	"bilim-chat/internal/middleware"
	apperrors "bilim-chat/pkg/errors"
	"bilim-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var errUnauthorized = apperrors.New(apperrors.ErrUnauthorized, "Unauthorized")

// Handler upgrades authenticated requests and streams the caller's events.
type Handler struct {
	tokens   middleware.TokenVerifier
	hub      *Hub
	log      *connLogger
	upgrader websocket.Upgrader
}

// NewHandler accepts connections from allowedOrigin, or from anywhere when it is "*".
func NewHandler(tokens middleware.TokenVerifier, hub *Hub, allowedOrigin string, l *logger.Logger) *Handler {
	return &Handler{
		tokens: tokens,
		hub:    hub,
		log:    newConnLogger(l),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Connect takes the token from the Authorization header or, for browsers
// that cannot set headers on a websocket, the token query parameter.
func (h *Handler) Connect(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		token = c.Query("token")
	}
	if token == "" {
		handler.WriteError(c, errUnauthorized)
		return
	}

	identity, err := middleware.Authenticate(h.tokens, token)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID := identity.UserID.String()
	client := NewClient(conn, userID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	h.hub.Register(client)
	h.hub.Subscribe(client, events.UserChannel(userID))
	h.log.Info("connected", client)
	go client.WriteLoop(ctx)

	err = client.ReadLoop()
	h.hub.Unregister(client)
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.log.Warn("disconnected", client, err)
		return
	}
	h.log.Info("disconnected", client)
}
