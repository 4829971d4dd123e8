package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/internal/models"
	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/types"
)

type FriendHandler struct {
	friendService service.IFriendService
	log           *zap.Logger
}

func NewFriendHandler(friendService service.IFriendService, log *zap.Logger) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		log:           log,
	}
}

func (h *FriendHandler) RegisterRoutes(router *gin.RouterGroup) {
	friends := router.Group("/friends")
	{
		friends.GET("", h.ListFriends)
		friends.GET("/pending", h.ListPending)
		friends.POST("/send-request/:userId", h.SendRequest)
		friends.PUT("/respond/:requestId", h.Respond)
		friends.DELETE("/:friendId", h.Remove)
	}
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) ListPending(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	pending, err := h.friendService.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	addresseeID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	friendship, err := h.friendService.SendRequest(c.Request.Context(), userID, addresseeID)
	if err != nil {
		// an existing request or friendship is reported as a bad request
		respondError(c, h.log, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, friendship)
}

func (h *FriendHandler) Respond(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	var req types.RespondFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	status := models.FriendStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))

	if err := h.friendService.Respond(c.Request.Context(), requestID, userID, status); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FriendHandler) Remove(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	friendshipID, ok := pathID(c, "friendId")
	if !ok {
		return
	}

	if err := h.friendService.Remove(c.Request.Context(), friendshipID, userID); err != nil {
		respondError(c, h.log, err, http.StatusConflict)
		return
	}
	c.Status(http.StatusNoContent)
}
