package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/greenpass/greenpass-support/internal/models"
	mongorepo "github.com/greenpass/greenpass-support/internal/repositories/mongo"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// SupportService is the human side of the desk: the escalation queue and the
// administrative actions the chat core deliberately does not own.
type SupportService interface {
	Queue(ctx context.Context, limit int) ([]models.Conversation, error)
	// Reopen returns a handed-off conversation to the AI pipeline.
	Reopen(ctx context.Context, conversationID string) (*models.Conversation, error)
	// Reply appends a support-sender message from a human agent.
	Reply(ctx context.Context, agent models.User, conversationID, text string) (*models.Message, error)
}

type supportService struct {
	convos pgrepo.ConversationRepo
	msgs   mongorepo.MessageRepository
	log    *logrus.Logger
}

func NewSupportService(convos pgrepo.ConversationRepo, msgs mongorepo.MessageRepository, log *logrus.Logger) SupportService {
	return &supportService{convos: convos, msgs: msgs, log: log}
}

func (s *supportService) Queue(ctx context.Context, limit int) ([]models.Conversation, error) {
	const op = "SupportService.Queue"

	rows, err := s.convos.ListByStatus(ctx, models.StatusHandedOff, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list escalations", err)
	}
	return rows, nil
}

func (s *supportService) Reopen(ctx context.Context, conversationID string) (*models.Conversation, error) {
	const op = "SupportService.Reopen"

	conv, err := s.convos.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}
	if conv.Status != models.StatusHandedOff {
		return nil, utils.E(utils.CodeConflict, op, "conversation is not handed off", nil)
	}

	if err := s.convos.SetStatus(ctx, conversationID, models.StatusOpen); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reopen conversation", err)
	}
	conv.Status = models.StatusOpen

	s.log.WithFields(logrus.Fields{"op": op, "conversation_id": conversationID}).Info("conversation reopened")
	return conv, nil
}

func (s *supportService) Reply(ctx context.Context, agent models.User, conversationID, text string) (*models.Message, error) {
	const op = "SupportService.Reply"

	text = strings.TrimSpace(text)
	if conversationID == "" || text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id and text are required", nil)
	}

	if _, err := s.convos.GetByID(ctx, conversationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}

	msg, err := appendToTranscript(ctx, s.msgs, conversationID, models.SenderSupport, text, nil, nil)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to append reply", err)
	}
	return msg, nil
}
