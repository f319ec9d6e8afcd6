package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DonationTypeMonetary = "MONETARY"
	DonationTypeItem     = "ITEM"
)

const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"
)

type Donation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Amount           float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type             string    `gorm:"size:20;not null;index" json:"type"`
	Status           string    `gorm:"size:20;not null;index" json:"status"`
	RedirectURL      string    `gorm:"type:text" json:"redirectUrl"`
	Notes            string    `gorm:"type:text" json:"notes"`
	PaymentReference string    `gorm:"size:255" json:"paymentReference,omitempty"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	User             User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (d *Donation) IsAnonymous() bool {
	return d.UserID == AnonymousUserID
}
