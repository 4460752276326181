package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sender string

const (
	SenderUser    Sender = "user"
	SenderAI      Sender = "ai"
	SenderSupport Sender = "support"
)

type AnswerType string

const (
	AnswerFAQ AnswerType = "faq"
	AnswerAI  AnswerType = "ai"
)

type ActionType string

const (
	ActionLink     ActionType = "link"
	ActionEscalate ActionType = "escalate"
)

// MessageAction is a tappable shortcut rendered under a message.
type MessageAction struct {
	Type  ActionType `bson:"type" json:"type"`
	Label string     `bson:"label" json:"label"`
	URL   string     `bson:"url,omitempty" json:"url,omitempty"`
}

// MessageMeta carries routing metadata for ai-sender messages.
type MessageMeta struct {
	Confidence float64    `bson:"confidence" json:"confidence"`
	AnswerType AnswerType `bson:"answer_type,omitempty" json:"answer_type,omitempty"`
}

// Message is one turn in a conversation transcript. The transcript is
// append-only; (seq, timestamp) ascending is the display order.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MessageID      string             `bson:"message_id" json:"id"` // uuid v4
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	Sender         Sender             `bson:"sender" json:"sender"` // user|ai|support
	Text           string             `bson:"text" json:"text"`
	Meta           *MessageMeta       `bson:"meta,omitempty" json:"meta,omitempty"`
	Actions        []MessageAction    `bson:"actions,omitempty" json:"actions,omitempty"`
	Seq            int64              `bson:"seq" json:"seq"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}
