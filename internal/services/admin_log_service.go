package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminLogEntry struct {
	AdminID    string
	Action     string
	Resource   string
	ResourceID string
	Metadata   map[string]interface{}
	IPAddress  string
	UserAgent  string
	Success    bool
}

// AdminLogger writes the audit trail. A failed write is logged and dropped:
// it never changes the outcome of the request being audited.
type AdminLogger struct {
	db *gorm.DB
}

func NewAdminLogger(db *gorm.DB) *AdminLogger {
	return &AdminLogger{db: db}
}

func (l *AdminLogger) Log(ctx context.Context, entry AdminLogEntry) {
	if entry.AdminID == "" {
		entry.AdminID = models.UnknownActor
	}

	record := models.AdminLog{
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Success:    entry.Success,
	}
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			slog.Warn("admin log metadata not serializable", "action", entry.Action, "error", err)
		} else {
			record.Metadata = datatypes.JSON(b)
		}
	}

	// The request may already be finished; the audit write must not be
	// cancelled with it.
	if err := l.db.WithContext(context.WithoutCancel(ctx)).Create(&record).Error; err != nil {
		slog.Error("failed to write admin log",
			"action", entry.Action,
			"admin_id", entry.AdminID,
			"resource_id", entry.ResourceID,
			"error", err,
		)
	}
}

func (l *AdminLogger) List(ctx context.Context, limit, offset int) ([]models.AdminLog, int64, error) {
	logs := []models.AdminLog{}
	var total int64

	db := l.db.WithContext(ctx)
	if err := db.Model(&models.AdminLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
