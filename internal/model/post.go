package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is trainer-authored social content. LikesCount is denormalized and
// kept in sync with post_likes inside a single transaction.
type Post struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TrainerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	ImageKey   string         `gorm:"type:varchar(255)" json:"image_key,omitempty"`
	LikesCount int            `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PostLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_post_likes_post_user,unique" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_post_likes_post_user,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

func (pl *PostLike) BeforeCreate(*gorm.DB) error {
	if pl.ID == uuid.Nil {
		pl.ID = uuid.New()
	}
	return nil
}
