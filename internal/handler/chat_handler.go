package handler

import (
	"net/http"

	"bilim-chat/internal/services"
	"bilim-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		WriteError(c, errUnauthorized)
		return
	}

	chats, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.FromChats(chats))
}

func (h *ChatHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		WriteError(c, errUnauthorized)
		return
	}

	var req httpdto.CreateChatRequest
	if err := bindJSON(c, &req, nil); err != nil {
		WriteError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req.Title)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.FromChat(created))
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		WriteError(c, errUnauthorized)
		return
	}

	chatID, err := pathUUID(c, "id")
	if err != nil {
		WriteError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, chatID); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.OKResponse{OK: true})
}
