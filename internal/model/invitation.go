package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "PENDING"
	InvitationStatusAccepted  InvitationStatus = "ACCEPTED"
	InvitationStatusCancelled InvitationStatus = "CANCELLED"
	InvitationStatusExpired   InvitationStatus = "EXPIRED"
)

// Invitation is a referral token from a paying client to a prospective
// member. Time-limited, single-use, cancelable only while PENDING.
type Invitation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	InviterID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"inviter_id"`
	InviteeEmail string           `gorm:"type:varchar(320);not null" json:"invitee_email"`
	Token        string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Status       InvitationStatus `gorm:"type:varchar(16);not null;default:PENDING" json:"status"`
	ExpiresAt    time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
