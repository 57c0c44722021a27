package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationStatus string

const (
	ConversationStatusOpen       ConversationStatus = "OPEN"
	ConversationStatusContracted ConversationStatus = "CONTRACTED"
	ConversationStatusBlocked    ConversationStatus = "BLOCKED"
)

type MessageStatus string

const (
	MessageStatusSent MessageStatus = "SENT"
	MessageStatusRead MessageStatus = "READ"
)

// Conversation is a client-trainer messaging thread.
// Status transitions: OPEN -> CONTRACTED (trainer declares a contract with a
// future valid-until), OPEN -> BLOCKED (client exhausts the free quota).
type Conversation struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	TrainerID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Status             ConversationStatus `gorm:"type:varchar(16);not null;default:OPEN" json:"status"`
	ContractValidUntil *time.Time         `json:"contract_valid_until,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (Conversation) TableName() string { return "conversations" }

func (c *Conversation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// MessageQuota tracks the client's free-message counter per conversation.
type MessageQuota struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"conversation_id"`
	UsedCount      int       `gorm:"not null;default:0" json:"used_count"`
	FreeLimit      int       `gorm:"not null" json:"free_limit"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MessageQuota) TableName() string { return "message_quotas" }

func (q *MessageQuota) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderUserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"sender_user_id"`
	Body           string         `gorm:"type:text;not null" json:"body"`
	Status         MessageStatus  `gorm:"type:varchar(8);not null;default:SENT" json:"status"`
	ReadAt         *time.Time     `json:"read_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
