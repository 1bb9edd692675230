// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"bilim-chat/internal/services"
	"bilim-chat/internal/transport/httpdto"
	apperrors "bilim-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

var errCredentialsRequired = apperrors.New(apperrors.ErrInvalidInput, "email and password required")

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := bindJSON(c, &req, errCredentialsRequired); err != nil {
		WriteError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Token: res.Token,
		User:  httpdto.FromUser(res.User),
	})
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := bindJSON(c, &req, errCredentialsRequired); err != nil {
		WriteError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Token: res.Token,
		User:  httpdto.FromUser(res.User),
	})
}
