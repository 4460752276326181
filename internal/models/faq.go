package models

import (
	"time"

	"github.com/lib/pq"
)

// FAQEntry is reference data maintained by the content team; the chat core
// only ever reads it.
type FAQEntry struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Lang      Language       `gorm:"column:lang;type:text;index" json:"lang"`
	Title     string         `gorm:"column:title;type:text" json:"title"`
	Body      string         `gorm:"column:body;type:text" json:"body"`
	Tags      pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	Category  string         `gorm:"column:category;type:text" json:"category"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (FAQEntry) TableName() string { return "faq_entries" }

// FAQ categories that carry contextual link actions.
const (
	CategoryReservations = "reservations"
	CategoryPayments     = "payments"
)
