package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/utils"
)

type ConversationRepo interface {
	Create(ctx context.Context, c *models.Conversation) error
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	LatestOpenByUser(ctx context.Context, userID string) (*models.Conversation, error)
	ListByStatus(ctx context.Context, status models.ConversationStatus, limit int) ([]models.Conversation, error)
	SetLanguage(ctx context.Context, id string, lang models.Language) error
	SetStatus(ctx context.Context, id string, status models.ConversationStatus) error
	MarkHandedOff(ctx context.Context, id string) error
	TouchActivity(ctx context.Context, id string, at time.Time) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *conversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var row models.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *conversationRepo) LatestOpenByUser(ctx context.Context, userID string) (*models.Conversation, error) {
	var row models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusOpen).
		Order("last_activity DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *conversationRepo) ListByStatus(ctx context.Context, status models.ConversationStatus, limit int) ([]models.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Conversation
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("last_activity DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *conversationRepo) SetLanguage(ctx context.Context, id string, lang models.Language) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"language":      lang,
			"last_activity": time.Now().UTC(),
		}).Error
}

func (r *conversationRepo) SetStatus(ctx context.Context, id string, status models.ConversationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"last_activity": time.Now().UTC(),
		}).Error
}

// MarkHandedOff flips the conversation to handed_off and bumps the escalation
// counter in one UPDATE, so concurrent escalations never lose an increment.
func (r *conversationRepo) MarkHandedOff(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           models.StatusHandedOff,
			"escalation_count": gorm.Expr("escalation_count + 1"),
			"last_activity":    time.Now().UTC(),
		}).Error
}

func (r *conversationRepo) TouchActivity(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("last_activity", at.UTC()).Error
}
