package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is an in-kind item the organization can hand out.
// Only rows with IsActive and IsAvailable set are listed publicly.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Condition   string    `gorm:"size:50;index" json:"condition"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	ImageURL    string    `gorm:"type:text" json:"imageUrl"`
	IsActive    bool      `gorm:"not null;index" json:"isActive"`
	IsAvailable bool      `gorm:"not null;index" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
