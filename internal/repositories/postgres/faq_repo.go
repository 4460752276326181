package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/greenpass/greenpass-support/internal/cache"
	"github.com/greenpass/greenpass-support/internal/models"
)

type FAQRepo interface {
	ListByLang(ctx context.Context, lang models.Language) ([]models.FAQEntry, error)
}

const faqCacheTTL = 10 * time.Minute

// faqRepo reads the FAQ knowledge base. Entries change rarely, so the
// per-language list is cached.
type faqRepo struct {
	db *gorm.DB
	c  cache.Cache
}

func NewFAQRepo(db *gorm.DB, c cache.Cache) FAQRepo {
	return &faqRepo{db: db, c: c}
}

func faqCacheKey(lang models.Language) string {
	return cache.Key("faq", "lang", string(lang))
}

func (r *faqRepo) ListByLang(ctx context.Context, lang models.Language) ([]models.FAQEntry, error) {
	key := faqCacheKey(lang)

	var cached []models.FAQEntry
	if r.c != nil {
		if hit, err := r.c.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	var rows []models.FAQEntry
	err := r.db.WithContext(ctx).
		Where("lang = ?", lang).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	if r.c != nil {
		// best effort; a cold cache just means another DB read
		_ = r.c.SetJSON(ctx, key, rows, faqCacheTTL)
	}
	return rows, nil
}
