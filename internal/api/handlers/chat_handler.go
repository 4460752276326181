package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/services"
	"github.com/greenpass/greenpass-support/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type OpenChatRequest struct {
	Language string `json:"language"` // "en" | "vi", defaults to "en"
}

func (h *ChatHandler) Open(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req OpenChatRequest
	// body is optional; ignore bind errors on an empty body
	_ = c.ShouldBindJSON(&req)

	session, err := h.svc.Open(c.Request.Context(), user, models.Language(req.Language))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Send", "invalid request body", err))
		return
	}

	turn, err := h.svc.Send(c.Request.Context(), user, req.ConversationID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, turn)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	conversationID := c.Param("conversation_id")

	limit := int64(100)
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := h.svc.History(c.Request.Context(), user, conversationID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"messages":        rows,
	})
}

func (h *ChatHandler) QuickActions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":          user.Role,
		"quick_actions": models.QuickActionsFor(user.Role),
	})
}
