package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/habyx/backend/internal/mocks"
	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/testhelpers"
)

func TestSendMessageUsesCallerAsSender(t *testing.T) {
	messageService := new(mocks.MockMessageService)
	router := newProtectedRouter(t, 1, NewMessageHandler(messageService, nopLogger()))

	messageService.On("Send", mock.Anything, uint(1), uint(2), "hi").
		Return(&models.Message{ID: 3, SenderID: 1, ReceiverID: 2, Content: "hi"}, nil)

	body := map[string]interface{}{"senderId": 99, "receiverId": 2, "content": "hi"}
	w := testhelpers.PerformRequest(t, router, http.MethodPost, "/api/messages", body, testToken)

	assert.Equal(t, http.StatusCreated, w.Code)
	var msg models.Message
	testhelpers.DecodeJSON(t, w, &msg)
	assert.Equal(t, uint(1), msg.SenderID)
	messageService.AssertExpectations(t)
}

func TestSendMessageErrors(t *testing.T) {
	messageService := new(mocks.MockMessageService)
	router := newProtectedRouter(t, 1, NewMessageHandler(messageService, nopLogger()))

	messageService.On("Send", mock.Anything, uint(1), uint(2), "").
		Return(nil, fmt.Errorf("%w: message content is required", service.ErrValidation))
	messageService.On("Send", mock.Anything, uint(1), uint(8), "hi").
		Return(nil, fmt.Errorf("user 8 %w", service.ErrNotFound))

	w := testhelpers.PerformRequest(t, router, http.MethodPost, "/api/messages", map[string]interface{}{"receiverId": 2, "content": ""}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.PerformRequest(t, router, http.MethodPost, "/api/messages", map[string]interface{}{"receiverId": 8, "content": "hi"}, testToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testhelpers.PerformRequest(t, router, http.MethodPost, "/api/messages", map[string]interface{}{"content": "hi"}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.PerformRequest(t, router, http.MethodPost, "/api/messages", map[string]interface{}{"receiverId": 2, "content": "hi"}, "expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConversationAndUnread(t *testing.T) {
	messageService := new(mocks.MockMessageService)
	router := newProtectedRouter(t, 1, NewMessageHandler(messageService, nopLogger()))

	messageService.On("GetConversation", mock.Anything, uint(1), uint(2)).Return([]models.Message{
		{ID: 1, SenderID: 1, ReceiverID: 2, Content: "first"},
		{ID: 2, SenderID: 2, ReceiverID: 1, Content: "second"},
	}, nil)
	messageService.On("GetUnread", mock.Anything, uint(1)).Return(nil, errors.New("database is locked"))

	w := testhelpers.PerformRequest(t, router, http.MethodGet, "/api/messages/conversation/2", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
	var msgs []models.Message
	testhelpers.DecodeJSON(t, w, &msgs)
	assert.Len(t, msgs, 2)

	w = testhelpers.PerformRequest(t, router, http.MethodGet, "/api/messages/unread", nil, testToken)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestMarkRead(t *testing.T) {
	messageService := new(mocks.MockMessageService)
	router := newProtectedRouter(t, 2, NewMessageHandler(messageService, nopLogger()))

	messageService.On("MarkRead", mock.Anything, uint(5), uint(2)).Return(nil)
	messageService.On("MarkRead", mock.Anything, uint(6), uint(2)).Return(service.ErrForbidden)
	messageService.On("MarkRead", mock.Anything, uint(7), uint(2)).Return(service.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, testhelpers.PerformRequest(t, router, http.MethodPut, "/api/messages/markRead/5", nil, testToken).Code)
	assert.Equal(t, http.StatusForbidden, testhelpers.PerformRequest(t, router, http.MethodPut, "/api/messages/markRead/6", nil, testToken).Code)
	assert.Equal(t, http.StatusNotFound, testhelpers.PerformRequest(t, router, http.MethodPut, "/api/messages/markRead/7", nil, testToken).Code)
	assert.Equal(t, http.StatusBadRequest, testhelpers.PerformRequest(t, router, http.MethodPut, "/api/messages/markRead/x", nil, testToken).Code)
}
