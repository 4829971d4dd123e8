package server

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/config"
	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/storage"
	"github.com/pageza/habyx/backend/internal/testhelpers"
	"github.com/pageza/habyx/backend/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                config.Test,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		CORSOrigins:        []string{"http://localhost:5173"},
		JWTSecret:          "server-test-secret-server-test-secret",
		JWTIssuer:          "habyx-test",
		TokenTTL:           config.DefaultTokenTTL,
		MaxUploadBytes:     1 << 20,
		RateLimitPerMinute: 1000,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	srv, err := New(context.Background(), cfg, Deps{
		DB:     testhelpers.SetupTestDatabase(t),
		Redis:  client,
		Images: storage.NewLocalStore(t.TempDir()),
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)
	return srv
}

func register(t *testing.T, h http.Handler, email, first string) (uint, string) {
	t.Helper()
	w := testhelpers.PerformRequest(t, h, http.MethodPost, "/api/auth/register", types.RegisterRequest{
		Email: email, Password: "Password1!", FirstName: first, LastName: "Test",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user models.User
	testhelpers.DecodeJSON(t, w, &user)

	w = testhelpers.PerformRequest(t, h, http.MethodPost, "/api/auth/login", types.LoginRequest{
		Email: email, Password: "Password1!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login types.LoginResponse
	testhelpers.DecodeJSON(t, w, &login)
	return user.ID, login.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := testhelpers.PerformRequest(t, srv.Handler(), http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/api/friends", "/api/messages/unread", "/api/profiles"} {
		w := testhelpers.PerformRequest(t, srv.Handler(), http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestFriendAndMessageFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())
	h := srv.Handler()

	aliceID, aliceToken := register(t, h, "alice@example.com", "Alice")
	bobID, bobToken := register(t, h, "bob@example.com", "Bob")

	w := testhelpers.PerformRequest(t, h, http.MethodPost, "/api/auth/register", types.RegisterRequest{
		Email: "alice@example.com", Password: "Password1!", FirstName: "Again", LastName: "Test",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.PerformRequest(t, h, http.MethodPost, fmt.Sprintf("/api/friends/send-request/%d", bobID), nil, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var request models.Friendship
	testhelpers.DecodeJSON(t, w, &request)

	w = testhelpers.PerformRequest(t, h, http.MethodPost, fmt.Sprintf("/api/friends/send-request/%d", aliceID), nil, bobToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.PerformRequest(t, h, http.MethodGet, "/api/friends/pending", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.Friendship
	testhelpers.DecodeJSON(t, w, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "Alice", pending[0].Requester.FirstName)

	respondPath := fmt.Sprintf("/api/friends/respond/%d", request.ID)
	w = testhelpers.PerformRequest(t, h, http.MethodPut, respondPath, map[string]string{"status": "accepted"}, aliceToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = testhelpers.PerformRequest(t, h, http.MethodPut, respondPath, map[string]string{"status": "accepted"}, bobToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testhelpers.PerformRequest(t, h, http.MethodGet, "/api/friends", nil, aliceToken)
	var friends []models.Friendship
	testhelpers.DecodeJSON(t, w, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, models.FriendStatusAccepted, friends[0].Status)

	w = testhelpers.PerformRequest(t, h, http.MethodPost, "/api/messages", map[string]interface{}{"receiverId": bobID, "content": "hello bob"}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var message models.Message
	testhelpers.DecodeJSON(t, w, &message)
	assert.Equal(t, aliceID, message.SenderID)

	w = testhelpers.PerformRequest(t, h, http.MethodGet, "/api/messages/unread", nil, bobToken)
	var unread []models.Message
	testhelpers.DecodeJSON(t, w, &unread)
	require.Len(t, unread, 1)

	markPath := fmt.Sprintf("/api/messages/markRead/%d", message.ID)
	assert.Equal(t, http.StatusForbidden, testhelpers.PerformRequest(t, h, http.MethodPut, markPath, nil, aliceToken).Code)
	assert.Equal(t, http.StatusNoContent, testhelpers.PerformRequest(t, h, http.MethodPut, markPath, nil, bobToken).Code)
	assert.Equal(t, http.StatusNoContent, testhelpers.PerformRequest(t, h, http.MethodPut, markPath, nil, bobToken).Code)

	w = testhelpers.PerformRequest(t, h, http.MethodGet, fmt.Sprintf("/api/messages/conversation/%d", aliceID), nil, bobToken)
	var conversation []models.Message
	testhelpers.DecodeJSON(t, w, &conversation)
	require.Len(t, conversation, 1)
	assert.True(t, conversation[0].IsRead)

	w = testhelpers.PerformRequest(t, h, http.MethodDelete, fmt.Sprintf("/api/friends/%d", request.ID), nil, aliceToken)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProfileImageIsServed(t *testing.T) {
	srv := newTestServer(t, testConfig())
	h := srv.Handler()
	_, token := register(t, h, "carol@example.com", "Carol")

	image := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profiles/upload-image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var upload types.UploadImageResponse
	testhelpers.DecodeJSON(t, w, &upload)

	w = testhelpers.PerformRequest(t, h, http.MethodGet, upload.Path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, image, w.Body.Bytes())
}

func TestResponsesAreCompressed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRateLimitedLogin(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	srv := newTestServer(t, cfg)

	var last int
	for i := 0; i < 3; i++ {
		w := testhelpers.PerformRequest(t, srv.Handler(), http.MethodPost, "/api/auth/login", types.LoginRequest{Email: "x@example.com", Password: "nope"}, "")
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
