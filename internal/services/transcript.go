package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/greenpass/greenpass-support/internal/models"
	mongorepo "github.com/greenpass/greenpass-support/internal/repositories/mongo"
)

// appendToTranscript assigns the next seq and inserts one message. Only one
// pipeline runs per conversation at a time, so count-then-insert cannot race
// within a conversation.
func appendToTranscript(ctx context.Context, msgs mongorepo.MessageRepository, conversationID string, sender models.Sender, text string, meta *models.MessageMeta, actions []models.MessageAction) (*models.Message, error) {
	seq, err := msgs.CountByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	m := &models.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		Meta:           meta,
		Actions:        actions,
		Seq:            seq,
		Timestamp:      time.Now().UTC(),
	}
	if err := msgs.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
