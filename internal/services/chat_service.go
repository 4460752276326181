package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greenpass/greenpass-support/internal/models"
	mongorepo "github.com/greenpass/greenpass-support/internal/repositories/mongo"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// escalationPhrases hand the conversation to a human regardless of whatever
// else the utterance contains. Checked after language switches, before FAQ.
var escalationPhrases = []string{
	"talk to human",
	"speak to agent",
	"human support",
	"complaint",
	"refund",
	"payment failed",
	"visa rejected",
}

type ChatSession struct {
	Conversation *models.Conversation `json:"conversation"`
	Messages     []models.Message     `json:"messages"`
	QuickActions []models.QuickAction `json:"quick_actions"`
}

type TurnResult struct {
	Conversation *models.Conversation `json:"conversation"`
	UserMessage  *models.Message      `json:"user_message"`
	Reply        *models.Message      `json:"reply"`
}

type ChatService interface {
	// Open loads the caller's current support session, creating a fresh
	// conversation with a welcome message when none is open.
	Open(ctx context.Context, user models.User, lang models.Language) (*ChatSession, error)
	// Send runs one turn of the support pipeline: append the user message,
	// route the intent, and append exactly one system reply.
	Send(ctx context.Context, user models.User, conversationID, text string) (*TurnResult, error)
	History(ctx context.Context, user models.User, conversationID string, limit int64) ([]models.Message, error)
}

type chatService struct {
	convos     pgrepo.ConversationRepo
	msgs       mongorepo.MessageRepository
	faq        FAQService
	responder  ResponderService
	escalation EscalationService
	log        *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewChatService(
	convos pgrepo.ConversationRepo,
	msgs mongorepo.MessageRepository,
	faq FAQService,
	responder ResponderService,
	escalation EscalationService,
	log *logrus.Logger,
) ChatService {
	return &chatService{
		convos:     convos,
		msgs:       msgs,
		faq:        faq,
		responder:  responder,
		escalation: escalation,
		log:        log,
		inflight:   make(map[string]struct{}),
	}
}

func (s *chatService) Open(ctx context.Context, user models.User, lang models.Language) (*ChatSession, error) {
	const op = "ChatService.Open"

	if user.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user id is required", nil)
	}
	if lang != models.LangVI {
		lang = models.LangEN
	}

	conv, err := s.convos.LatestOpenByUser(ctx, user.ID)
	switch {
	case err == nil:
		// reuse the open conversation; no second welcome
	case errors.Is(err, utils.ErrNotFound):
		conv, err = s.bootstrap(ctx, user, lang)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to start conversation", err)
		}
	default:
		return nil, utils.E(utils.CodeInternal, op, "failed to look up conversation", err)
	}

	messages, err := s.msgs.ListByConversation(ctx, conv.ID, 100)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}

	return &ChatSession{
		Conversation: conv,
		Messages:     messages,
		QuickActions: models.QuickActionsFor(user.Role),
	}, nil
}

func (s *chatService) bootstrap(ctx context.Context, user models.User, lang models.Language) (*models.Conversation, error) {
	now := time.Now().UTC()
	conv := &models.Conversation{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		UserRole:     user.Role,
		Language:     lang,
		Channel:      models.ChannelInApp,
		Status:       models.StatusOpen,
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := s.convos.Create(ctx, conv); err != nil {
		return nil, err
	}
	if _, err := appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI, welcomeText(lang), nil, nil); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *chatService) Send(ctx context.Context, user models.User, conversationID, text string) (*TurnResult, error) {
	const op = "ChatService.Send"

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message text is required", nil)
	}
	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}

	conv, err := s.convos.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}
	if conv.UserID != user.ID {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}

	if !s.acquire(conv.ID) {
		return nil, utils.E(utils.CodeConflict, op, "a reply is already being prepared for this conversation", nil)
	}
	defer s.release(conv.ID)

	userMsg, err := appendToTranscript(ctx, s.msgs, conv.ID, models.SenderUser, text, nil, nil)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record message", err)
	}

	reply, err := s.route(ctx, conv, text)
	if err != nil {
		// Outer safety net: the user gets an apology, never a raw error.
		s.log.WithError(err).WithFields(logrus.Fields{
			"op":              op,
			"conversation_id": conv.ID,
		}).Error("send pipeline failed, serving degraded reply")
		reply = s.bestEffortApology(ctx, conv, userMsg.Seq+1)
	}

	if err := s.convos.TouchActivity(ctx, conv.ID, time.Now().UTC()); err != nil {
		s.log.WithError(err).WithField("op", op).Warn("failed to touch last_activity")
	}

	return &TurnResult{Conversation: conv, UserMessage: userMsg, Reply: reply}, nil
}

// route classifies the utterance and produces exactly one system message.
// Priority is fixed: language switch, escalation, FAQ, AI fallback.
func (s *chatService) route(ctx context.Context, conv *models.Conversation, text string) (*models.Message, error) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "vietnamese") || strings.Contains(lower, "tiếng việt") {
		return s.switchLanguage(ctx, conv, models.LangVI)
	}
	if strings.Contains(lower, "english") {
		return s.switchLanguage(ctx, conv, models.LangEN)
	}

	for _, phrase := range escalationPhrases {
		if strings.Contains(lower, phrase) {
			return s.escalation.Escalate(ctx, conv, text)
		}
	}

	if m := s.faq.Match(ctx, text, conv.Language); m != nil {
		return appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI, m.Answer,
			&models.MessageMeta{Confidence: m.Confidence, AnswerType: models.AnswerFAQ},
			m.Actions,
		)
	}

	r := s.responder.Respond(ctx, text, conv.UserRole, conv.Language)
	return appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI, r.Text,
		&models.MessageMeta{Confidence: r.Confidence, AnswerType: models.AnswerAI},
		r.Actions,
	)
}

// switchLanguage re-confirms even when the requested language is already
// active; the switch is a no-op on state but not rejected.
func (s *chatService) switchLanguage(ctx context.Context, conv *models.Conversation, lang models.Language) (*models.Message, error) {
	if err := s.convos.SetLanguage(ctx, conv.ID, lang); err != nil {
		return nil, err
	}
	conv.Language = lang
	return appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI, languageSwitchText(lang), nil, nil)
}

// bestEffortApology builds the degraded reply for a failed pipeline. The
// append is best effort: if persistence is down the caller still gets the
// apology in the response payload.
func (s *chatService) bestEffortApology(ctx context.Context, conv *models.Conversation, seq int64) *models.Message {
	actions := []models.MessageAction{escalateAction(conv.Language)}
	if msg, err := appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI, sendFailureText(), nil, actions); err == nil {
		return msg
	}
	return &models.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conv.ID,
		Sender:         models.SenderAI,
		Text:           sendFailureText(),
		Actions:        actions,
		Seq:            seq,
		Timestamp:      time.Now().UTC(),
	}
}

func (s *chatService) History(ctx context.Context, user models.User, conversationID string, limit int64) ([]models.Message, error) {
	const op = "ChatService.History"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}

	conv, err := s.convos.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}
	if conv.UserID != user.ID && user.Role != models.RoleAdmin && user.Role != models.RoleSupport {
		return nil, utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}

	rows, err := s.msgs.ListByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}
	return rows, nil
}

func (s *chatService) acquire(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[conversationID]; busy {
		return false
	}
	s.inflight[conversationID] = struct{}{}
	return true
}

func (s *chatService) release(conversationID string) {
	s.mu.Lock()
	delete(s.inflight, conversationID)
	s.mu.Unlock()
}
