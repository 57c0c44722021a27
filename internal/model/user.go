package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

// User is an authentication identity. Accounts are created either by the
// identity-provider webhook (ExternalSubject set) or by staff provisioning
// flows (PasswordHash set, temporary password mailed out).
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"type:varchar(320);not null" json:"email"`
	ExternalSubject string         `gorm:"type:varchar(255)" json:"external_subject,omitempty"`
	PasswordHash    string         `gorm:"type:varchar(255)" json:"-"`
	Status          UserStatus     `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Roles []RoleAssignment `gorm:"foreignKey:UserID" json:"roles,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
