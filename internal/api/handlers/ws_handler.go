package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/services"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// WSHandler drives the widget's live channel: inbound frames are chat sends,
// outbound frames are typing indicators and transcript messages. The same
// pipeline (and the same per-conversation guard) as the HTTP send endpoint.
type WSHandler struct {
	chat     services.ChatService
	upgrader websocket.Upgrader
}

func NewWSHandler(chat services.ChatService) *WSHandler {
	return &WSHandler{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // "send"
	Text string `json:"text"`
}

type wsServerMsg struct {
	Type    string          `json:"type"` // typing|message|error
	Message *models.Message `json:"message,omitempty"`
	Code    utils.Code      `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (h *WSHandler) ChatWS(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	conversationID := c.Param("conversation_id")
	if conversationID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.ChatWS", "missing conversation_id", nil))
		return
	}

	// ownership check before upgrading
	if _, err := h.chat.History(c.Request.Context(), user, conversationID, 1); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: utils.CodeInvalidArgument, Error: "invalid json"})
			continue
		}

		if msg.Type != "send" {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: utils.CodeInvalidArgument, Error: "unknown message type"})
			continue
		}

		// typing clears when the pipeline resolves, success or not
		_ = wc.writeJSON(wsServerMsg{Type: "typing"})

		turn, err := h.chat.Send(ctx, user, conversationID, msg.Text)
		if err != nil {
			code, safe := utils.CodeInternal, "internal error"
			var ae *utils.AppError
			if errors.As(err, &ae) {
				code, safe = ae.Code, ae.Message
			}
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: code, Error: safe})
			continue
		}

		_ = wc.writeJSON(wsServerMsg{Type: "message", Message: turn.UserMessage})
		_ = wc.writeJSON(wsServerMsg{Type: "message", Message: turn.Reply})
	}
}
