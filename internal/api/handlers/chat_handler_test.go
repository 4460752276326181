package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/services"
	"github.com/greenpass/greenpass-support/internal/utils"
)

type stubChatService struct {
	openFn    func(ctx context.Context, user models.User, lang models.Language) (*services.ChatSession, error)
	sendFn    func(ctx context.Context, user models.User, conversationID, text string) (*services.TurnResult, error)
	historyFn func(ctx context.Context, user models.User, conversationID string, limit int64) ([]models.Message, error)
}

func (s *stubChatService) Open(ctx context.Context, user models.User, lang models.Language) (*services.ChatSession, error) {
	return s.openFn(ctx, user, lang)
}

func (s *stubChatService) Send(ctx context.Context, user models.User, conversationID, text string) (*services.TurnResult, error) {
	return s.sendFn(ctx, user, conversationID, text)
}

func (s *stubChatService) History(ctx context.Context, user models.User, conversationID string, limit int64) ([]models.Message, error) {
	return s.historyFn(ctx, user, conversationID, limit)
}

func chatRouter(svc services.ChatService, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", "u1")
			c.Set("role", "student")
			c.Next()
		})
	}
	h := NewChatHandler(svc)
	r.POST("/chat/send", h.Send)
	r.GET("/chat/quick-actions", h.QuickActions)
	return r
}

func TestChatSend_OK(t *testing.T) {
	svc := &stubChatService{
		sendFn: func(_ context.Context, user models.User, conversationID, text string) (*services.TurnResult, error) {
			assert.Equal(t, "u1", user.ID)
			assert.Equal(t, "c1", conversationID)
			assert.Equal(t, "hello", text)
			return &services.TurnResult{
				Reply: &models.Message{Sender: models.SenderAI, Text: "hi!"},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/send",
		strings.NewReader(`{"conversation_id":"c1","text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(svc, true).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Reply *models.Message `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Reply)
	assert.Equal(t, "hi!", body.Reply.Text)
}

func TestChatSend_InvalidBody(t *testing.T) {
	svc := &stubChatService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/send", strings.NewReader(`{"text":""}`))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(svc, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatSend_ConflictWhileTyping(t *testing.T) {
	svc := &stubChatService{
		sendFn: func(context.Context, models.User, string, string) (*services.TurnResult, error) {
			return nil, utils.E(utils.CodeConflict, "ChatService.Send", "a reply is already being prepared for this conversation", nil)
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/send",
		strings.NewReader(`{"conversation_id":"c1","text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(svc, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, utils.CodeConflict, apiErr.Code)
}

func TestChatSend_Unauthorized(t *testing.T) {
	svc := &stubChatService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/send",
		strings.NewReader(`{"conversation_id":"c1","text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	chatRouter(svc, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuickActions_RoleSpecific(t *testing.T) {
	svc := &stubChatService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/quick-actions", nil)
	chatRouter(svc, true).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Role         models.Role          `json:"role"`
		QuickActions []models.QuickAction `json:"quick_actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.RoleStudent, body.Role)
	assert.NotEmpty(t, body.QuickActions)
}
