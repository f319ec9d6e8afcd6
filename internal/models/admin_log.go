package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UnknownActor is recorded as AdminID when a privileged request could not
// be tied to an admin.
const UnknownActor = "unknown"

const (
	ActionCreateEvent       = "CREATE_EVENT"
	ActionDeleteEvent       = "DELETE_EVENT"
	ActionDeleteEventDenied = "DELETE_EVENT_DENIED"
)

const ResourceEvent = "EVENT"

// AdminLog is the append-only audit trail of privileged actions.
type AdminLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID    string         `gorm:"size:36;not null;index" json:"adminId"`
	Action     string         `gorm:"size:50;not null;index" json:"action"`
	Resource   string         `gorm:"size:50;not null" json:"resource"`
	ResourceID string         `gorm:"size:36;index" json:"resourceId"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	IPAddress  string         `gorm:"size:64" json:"ipAddress"`
	UserAgent  string         `gorm:"type:text" json:"userAgent"`
	Success    bool           `gorm:"not null" json:"success"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
