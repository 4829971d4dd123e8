package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/types"
)

type MessageHandler struct {
	messageService service.IMessageService
	log            *zap.Logger
}

func NewMessageHandler(messageService service.IMessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		log:            log,
	}
}

func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages")
	{
		messages.POST("", h.Send)
		messages.GET("/conversation/:userId", h.GetConversation)
		messages.GET("/unread", h.GetUnread)
		messages.PUT("/markRead/:id", h.MarkRead)
	}
}

// Send stores a message from the caller. Any sender in the body is ignored.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req types.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	messages, err := h.messageService.GetConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) GetUnread(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	messages, err := h.messageService.GetUnread(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkRead(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}
