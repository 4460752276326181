package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenpass/greenpass-support/internal/services"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// AdminHandler backs the support desk: escalation queue, agent replies, and
// the administrative reopen that the chat pipeline itself never performs.
type AdminHandler struct {
	svc services.SupportService
}

func NewAdminHandler(svc services.SupportService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Escalations(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	rows, err := h.svc.Queue(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"escalations": rows})
}

func (h *AdminHandler) Reopen(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	conv, err := h.svc.Reopen(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

type SupportReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *AdminHandler) Reply(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req SupportReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.Reply", "invalid request body", err))
		return
	}

	msg, err := h.svc.Reply(c.Request.Context(), user, c.Param("conversation_id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}
