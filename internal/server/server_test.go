package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bilim-chat/config"
	"bilim-chat/internal/testutil"
	"bilim-chat/internal/transport/httpdto"
	"bilim-chat/internal/websocket"
	"bilim-chat/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:        "0",
		AppMode:        config.TestMode,
		CORSOrigin:     "*",
		BodyLimitBytes: 1 << 20,
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	l := logger.NewNop()
	hub := websocket.NewHub()
	handlers, tokens := NewHandlers(cfg, l, Dependencies{
		DB:        testutil.NewTestDB(t),
		Publisher: hub,
		Hub:       hub,
		Now:       testutil.NewClock().Now,
	})
	srv := New(cfg, l)
	srv.SetupRoutes(handlers, tokens)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func register(t *testing.T, h http.Handler, email string) httpdto.AuthResponse {
	t.Helper()
	w := do(t, h, http.MethodPost, "/auth/register", "", `{"email":"`+email+`","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[httpdto.AuthResponse](t, w)
}

func TestChatLifecycle(t *testing.T) {
	h := newTestServer(t, testConfig())

	w := do(t, h, http.MethodPost, "/auth/register", "", `{"email":"alice@example.com","password":"pw123456","displayName":"Alice"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	alice := decode[httpdto.AuthResponse](t, w)
	require.NotNil(t, alice.User.DisplayName)
	assert.Equal(t, "Alice", *alice.User.DisplayName)

	w = do(t, h, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[httpdto.AuthResponse](t, w)
	assert.Equal(t, alice.User.ID, login.User.ID)
	token := login.Token

	w = do(t, h, http.MethodPost, "/chats", token, `{"title":"trip"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	trip := decode[httpdto.ChatDTO](t, w)
	assert.Equal(t, alice.User.ID, trip.UserID)
	require.NotNil(t, trip.Title)
	assert.Equal(t, "trip", *trip.Title)

	w = do(t, h, http.MethodPost, "/chats", token, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	untitled := decode[httpdto.ChatDTO](t, w)
	assert.Nil(t, untitled.Title)
	assert.Contains(t, w.Body.String(), `"title":null`)

	w = do(t, h, http.MethodGet, "/chats", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	chats := decode[[]httpdto.ChatDTO](t, w)
	require.Len(t, chats, 2)
	assert.Equal(t, untitled.ID, chats[0].ID)
	assert.Equal(t, trip.ID, chats[1].ID)
	assert.True(t, chats[0].CreatedAt.After(chats[1].CreatedAt))

	path := "/messages/" + trip.ID.String()
	w = do(t, h, http.MethodPost, path, token, `{"role":"user","content":"hi"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode[httpdto.MessageDTO](t, w)
	assert.Equal(t, trip.ID, msg.ChatID)

	w = do(t, h, http.MethodPost, path, token, `{"role":"user"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "role and content required", decode[httpdto.ErrorResponse](t, w).Error)

	w = do(t, h, http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	messages := decode[[]httpdto.MessageDTO](t, w)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)

	w = do(t, h, http.MethodDelete, "/chats/"+trip.ID.String(), token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(t, h, http.MethodGet, path, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/chats", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]httpdto.ChatDTO](t, w), 1)
}

func TestOtherUsersChatsAreNotFound(t *testing.T) {
	h := newTestServer(t, testConfig())
	alice := register(t, h, "alice@example.com")
	bob := register(t, h, "bob@example.com")

	w := do(t, h, http.MethodPost, "/chats", alice.Token, `{"title":"private"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	chat := decode[httpdto.ChatDTO](t, w)

	w = do(t, h, http.MethodGet, "/chats", bob.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/messages/" + chat.ID.String(), ""},
		{http.MethodPost, "/messages/" + chat.ID.String(), `{}`},
		{http.MethodPost, "/messages/" + chat.ID.String(), `{"role":"u","content":"c","extra":1}`},
		{http.MethodPost, "/messages/" + chat.ID.String(), `{"role":1}`},
		{http.MethodDelete, "/chats/" + chat.ID.String(), ""},
		{http.MethodDelete, "/chats/not-a-uuid", ""},
		{http.MethodGet, "/messages/not-a-uuid", ""},
	} {
		w := do(t, h, tc.method, tc.path, bob.Token, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.path)
		assert.Equal(t, "Not found", decode[httpdto.ErrorResponse](t, w).Error)
	}

	w = do(t, h, http.MethodGet, "/messages/"+chat.ID.String(), alice.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/messages/"+chat.ID.String(), alice.Token, `{"role":"u","content":"c","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decode[httpdto.ErrorResponse](t, w).Error)
}

func TestAuthErrors(t *testing.T) {
	h := newTestServer(t, testConfig())
	register(t, h, "alice@example.com")

	w := do(t, h, http.MethodPost, "/auth/register", "", `{"email":"alice@example.com","password":"another"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already used","code":"CONFLICT"}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/auth/register", "", `{"email":"carol@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and password required", decode[httpdto.ErrorResponse](t, w).Error)

	w = do(t, h, http.MethodPost, "/auth/login", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"pw123456","admin":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decode[httpdto.ErrorResponse](t, w).Error)

	unknown := do(t, h, http.MethodPost, "/auth/login", "", `{"email":"nobody@example.com","password":"pw123456"}`)
	wrong := do(t, h, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestServer(t, testConfig())

	for _, tc := range []struct{ header, want string }{
		{"", "Unauthorized"},
		{"Token abc", "Unauthorized"},
		{"Bearer not-a-jwt", "Invalid token"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/chats", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, tc.want, decode[httpdto.ErrorResponse](t, w).Error)
	}
}

func TestUnmatchedRouteIsNotFound(t *testing.T) {
	h := newTestServer(t, testConfig())

	w := do(t, h, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found","code":"NOT_FOUND"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	token := register(t, h, "alice@example.com").Token
	w = do(t, h, http.MethodGet, "/chats/", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.JSONEq(t, `{"error":"Not found","code":"NOT_FOUND"}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, testConfig())

	w := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestOversizedBodyIsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.BodyLimitBytes = 64
	h := newTestServer(t, cfg)

	body := `{"email":"` + strings.Repeat("a", 100) + `@example.com","password":"pw123456"}`
	w := do(t, h, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
