package models

import (
	"time"

	"gorm.io/datatypes"
)

type ConversationStatus string

const (
	StatusOpen      ConversationStatus = "open"
	StatusHandedOff ConversationStatus = "handed_off"
)

type Language string

const (
	LangEN Language = "en"
	LangVI Language = "vi"
)

const ChannelInApp = "in_app"

type Conversation struct {
	ID              string             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID          string             `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	UserRole        Role               `gorm:"column:user_role;type:text" json:"user_role"`
	Language        Language           `gorm:"column:language;type:text" json:"language"` // "en" | "vi"
	Channel         string             `gorm:"column:channel;type:text" json:"channel"`
	Status          ConversationStatus `gorm:"column:status;type:text;index" json:"status"`
	EscalationCount int                `gorm:"column:escalation_count;not null;default:0" json:"escalation_count"`
	LastActivity    time.Time          `gorm:"column:last_activity;type:timestamptz;index" json:"last_activity"`
	Metadata        datatypes.JSON     `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time          `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Conversation) TableName() string { return "conversations" }
