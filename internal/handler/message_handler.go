package handler

import (
	"net/http"

	"bilim-chat/internal/services"
	"bilim-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		WriteError(c, errUnauthorized)
		return
	}

	chatID, err := pathUUID(c, "chatId")
	if err != nil {
		WriteError(c, err)
		return
	}

	messages, err := h.service.List(c.Request.Context(), userID, chatID)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.FromMessages(messages))
}

// Create resolves the chat before decoding the body, so a foreign chat is
// a 404 even when the body is incomplete or malformed.
func (h *MessageHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		WriteError(c, errUnauthorized)
		return
	}

	chatID, err := pathUUID(c, "chatId")
	if err != nil {
		WriteError(c, err)
		return
	}

	if err := h.service.Owned(c.Request.Context(), userID, chatID); err != nil {
		WriteError(c, err)
		return
	}

	var req httpdto.CreateMessageRequest
	if err := bindJSON(c, &req, nil); err != nil {
		WriteError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, chatID, services.CreateMessageInput{
		Role:    req.Role,
		Content: req.Content,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.FromMessage(created))
}
