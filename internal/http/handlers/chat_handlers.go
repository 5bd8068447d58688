package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// ChatHandlers proxies assistant messages to the completion API
type ChatHandlers struct {
	chatSvc domain.ChatService
}

// NewChatHandlers creates new chat handlers
func NewChatHandlers(chatSvc domain.ChatService) *ChatHandlers {
	return &ChatHandlers{chatSvc: chatSvc}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Ask forwards the user's message and returns the assistant reply.
func (h *ChatHandlers) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Message is required"})
		return
	}

	reply, err := h.chatSvc.Ask(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChatNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Assistant is not configured"})
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Assistant is temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Chat failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}
