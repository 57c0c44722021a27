package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentTypeNationalID DocumentType = "NATIONAL_ID"
	DocumentTypePassport   DocumentType = "PASSPORT"
	DocumentTypeDriverLic  DocumentType = "DRIVER_LICENSE"
)

// Person is the human profile behind a user account. Uniqueness of
// (document_type, document_number) is enforced by a partial index, see migrate.go.
type Person struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	FirstName      string         `gorm:"type:varchar(128);not null" json:"first_name"`
	LastName       string         `gorm:"type:varchar(128);not null" json:"last_name"`
	DocumentType   DocumentType   `gorm:"type:varchar(32);not null" json:"document_type"`
	DocumentNumber string         `gorm:"type:varchar(64);not null" json:"document_number"`
	Phone          string         `gorm:"type:varchar(32)" json:"phone,omitempty"`
	BirthDate      *time.Time     `json:"birth_date,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Person) TableName() string { return "persons" }

func (p *Person) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
