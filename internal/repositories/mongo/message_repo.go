package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenpass/greenpass-support/internal/models"
)

type MessageRepository interface {
	Append(ctx context.Context, m *models.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int64) ([]models.Message, error)
	CountByConversation(ctx context.Context, conversationID string) (int64, error)
}

type messageRepo struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepository {
	return &messageRepo{col: db.Collection("messages")}
}

func (r *messageRepo) Append(ctx context.Context, m *models.Message) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListByConversation returns the transcript in display order (seq ascending).
func (r *messageRepo) ListByConversation(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "timestamp", Value: 1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.Message
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *messageRepo) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"conversation_id": conversationID})
}
