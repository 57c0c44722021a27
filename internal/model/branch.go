package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchStatus string

const (
	BranchStatusActive      BranchStatus = "ACTIVE"
	BranchStatusInactive    BranchStatus = "INACTIVE"
	BranchStatusMaintenance BranchStatus = "MAINTENANCE"
)

// JSONMap is a JSON blob stored in a jsonb column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("JSONMap.Scan: unsupported source type")
	}
	return json.Unmarshal(bytes, m)
}

type City struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(128);not null" json:"name"`
	State     string         `gorm:"type:varchar(128);not null" json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (City) TableName() string { return "cities" }

func (c *City) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CityID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"city_id"`
	Street     string         `gorm:"type:varchar(255);not null" json:"street"`
	Number     string         `gorm:"type:varchar(32);not null" json:"number"`
	PostalCode string         `gorm:"type:varchar(32)" json:"postal_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	City City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Address) TableName() string { return "addresses" }

func (a *Address) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Branch is a physical gym location.
type Branch struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(128);not null" json:"name"`
	AddressID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"address_id"`
	Capacity     int            `gorm:"not null;default:0" json:"capacity"`
	OpeningHour  string         `gorm:"type:varchar(8)" json:"opening_hour,omitempty"`
	ClosingHour  string         `gorm:"type:varchar(8)" json:"closing_hour,omitempty"`
	Status       BranchStatus   `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	Amenities    JSONMap        `gorm:"type:jsonb" json:"amenities,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Address Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

func (Branch) TableName() string { return "branches" }

func (b *Branch) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
