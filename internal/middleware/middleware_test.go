package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bilim-chat/internal/domain/user"
	"bilim-chat/internal/services"
	"bilim-chat/internal/transport/httpdto"
	"bilim-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedEngine(tokens *services.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := services.IdentityFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		userID, _ := c.Request.Context().Value(logger.UserIdKey).(string)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID.String(), "email": id.Email, "logged": userID})
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httpdto.ErrorResponse {
	t.Helper()
	var body httpdto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	other := services.NewTokenService("other-secret", time.Hour)
	foreign, err := other.Issue(user.User{ID: uuid.New(), Email: "a@example.com"})
	require.NoError(t, err)
	badSubject, err := tokens.Issue(user.User{Email: "a@example.com"})
	require.NoError(t, err)
	issued := time.Now().Add(-8 * 24 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(services.TokenTTL)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "Unauthorized"},
		{"lowercase scheme", "bearer abc", "Unauthorized"},
		{"basic scheme", "Basic abc", "Unauthorized"},
		{"empty token", "Bearer ", "Unauthorized"},
		{"garbage token", "Bearer abc", "Invalid token"},
		{"wrong secret", "Bearer " + foreign, "Invalid token"},
		{"nil subject", "Bearer " + badSubject, "Invalid token"},
		{"expired token", "Bearer " + expired, "Invalid token"},
	}

	r := newGuardedEngine(tokens)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.want, decodeError(t, w).Error)
		})
	}
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	u := user.User{ID: uuid.New(), Email: "alice@example.com"}
	token, err := tokens.Issue(u)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newGuardedEngine(tokens).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+u.ID.String()+`","email":"alice@example.com","logged":"`+u.ID.String()+`"}`, w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(logger.RequestIdKey).(string)
		c.String(http.StatusOK, id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 32)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestBodyLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimitMiddleware(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this is far too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecoveryWritesErrorBody(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Code)
}

func TestErrorHandlerFillsUnwrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNop()))
	r.GET("/", func(c *gin.Context) { _ = c.Error(io.ErrUnexpectedEOF) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Code)
}

func TestCORSMiddleware(t *testing.T) {
	preflight := func(origin, allowed string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(CORSMiddleware(allowed))
		r.GET("/chats", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/chats", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("http://app.example.com", "*")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight("http://app.example.com", "http://app.example.com")
	assert.Equal(t, "http://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
