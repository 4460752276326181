package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greenpass/greenpass-support/internal/models"
	mongorepo "github.com/greenpass/greenpass-support/internal/repositories/mongo"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
	"github.com/greenpass/greenpass-support/internal/utils"
)

const ticketPrefix = "GP-"

type EscalationService interface {
	// Escalate hands the conversation to human support: appends exactly one
	// ai-sender handoff message with a ticket reference, flips the status to
	// handed_off and bumps escalation_count. The passed conversation is
	// updated in place to reflect the new state.
	Escalate(ctx context.Context, conv *models.Conversation, triggeringUtterance string) (*models.Message, error)
}

type escalationService struct {
	convos pgrepo.ConversationRepo
	msgs   mongorepo.MessageRepository
	log    *logrus.Logger
}

func NewEscalationService(convos pgrepo.ConversationRepo, msgs mongorepo.MessageRepository, log *logrus.Logger) EscalationService {
	return &escalationService{convos: convos, msgs: msgs, log: log}
}

// NewTicketID builds a human-readable ticket reference. Millisecond
// timestamps are display-grade only; two escalations in the same millisecond
// would collide, which is acceptable for a support queue.
func NewTicketID() string {
	return fmt.Sprintf("%s%d", ticketPrefix, time.Now().UnixMilli())
}

func (s *escalationService) Escalate(ctx context.Context, conv *models.Conversation, triggeringUtterance string) (*models.Message, error) {
	const op = "EscalationService.Escalate"

	if conv == nil || conv.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation is required", nil)
	}

	ticketID := NewTicketID()

	// Status flips before the announcement is appended: if either step fails,
	// the turn ends with at most one system message (the caller's degraded
	// apology), never a handoff announcement plus an apology.
	if err := s.convos.MarkHandedOff(ctx, conv.ID); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to mark conversation handed off", err)
	}

	conv.Status = models.StatusHandedOff
	conv.EscalationCount++
	conv.LastActivity = time.Now().UTC()

	msg, err := appendToTranscript(ctx, s.msgs, conv.ID, models.SenderAI,
		escalationText(conv.Language, ticketID),
		&models.MessageMeta{Confidence: 1.0},
		nil,
	)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to append handoff message", err)
	}

	s.log.WithFields(logrus.Fields{
		"op":              op,
		"conversation_id": conv.ID,
		"ticket_id":       ticketID,
		"trigger":         triggeringUtterance,
	}).Info("conversation escalated")

	return msg, nil
}
