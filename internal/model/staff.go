package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "ACTIVE"
	StaffStatusInactive StaffStatus = "INACTIVE"
)

// Admin links a person to at most one branch. The soft 1:1 invariant
// (one active admin per branch, one active admin row per person) is backed
// by partial unique indexes, see migrate.go.
type Admin struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PersonID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"person_id"`
	BranchID  *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	AdminCode string         `gorm:"type:varchar(16);uniqueIndex;not null" json:"admin_code"`
	Status    StaffStatus    `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Trainer provides coaching services, scoped to a branch.
type Trainer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PersonID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"person_id"`
	BranchID     *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	EmployeeCode string         `gorm:"type:varchar(16);uniqueIndex;not null" json:"employee_code"`
	Specialties  JSONMap        `gorm:"type:jsonb" json:"specialties,omitempty"`
	Schedule     JSONMap        `gorm:"type:jsonb" json:"schedule,omitempty"`
	Status       StaffStatus    `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Person Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (Trainer) TableName() string { return "trainers" }

func (t *Trainer) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
