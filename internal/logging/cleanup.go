package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/gorm"
)

// PruneSystemLogs deletes system_logs older than retention and returns the
// number of rows removed.
func PruneSystemLogs(db *gorm.DB, retention time.Duration, now time.Time) (int64, error) {
	result := db.Where("timestamp < ?", now.Add(-retention)).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup prunes system_logs once a day until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	if retentionDays <= 0 {
		return
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PruneSystemLogs(db, retention, time.Now())
				if err != nil {
					slog.Warn("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
