package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Newsletter struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	IsActive       bool       `gorm:"not null" json:"isActive"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (Newsletter) TableName() string {
	return "newsletter_subscriptions"
}
