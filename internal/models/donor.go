package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donor is the public projection of a supporter, used by the donor listing
// and the leaderboard.
type Donor struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`
	DisplayName   string     `gorm:"size:255;not null" json:"displayName"`
	TotalDonated  float64    `gorm:"type:decimal(12,2);not null;default:0" json:"totalDonated"`
	DonationCount int        `gorm:"not null;default:0" json:"donationCount"`
	IsActive      bool       `gorm:"not null;index" json:"isActive"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (d *Donor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
