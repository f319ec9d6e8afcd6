package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONHandler_ProductionSuppressesDebug(t *testing.T) {
	ctx := context.Background()

	prod := logging.NewJSONHandler(&bytes.Buffer{}, true)
	assert.False(t, prod.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prod.Enabled(ctx, slog.LevelInfo))

	dev := logging.NewJSONHandler(&bytes.Buffer{}, false)
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))
}

func TestDBHandler_PersistsErrorsOnStop(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := logging.NewDBHandler(db)

	var stdout bytes.Buffer
	logger := slog.New(logging.NewMultiHandler(logging.NewJSONHandler(&stdout, false), h)).
		With("request_id", "req-1")

	logger.Info("donation created", "amount", 10)
	logger.Error("event delete failed", "error", "boom", "path", "/api/admin/events/1", "event_id", "1")

	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR", logs[0].Level)
	assert.Equal(t, "event delete failed", logs[0].Message)
	assert.Equal(t, "req-1", logs[0].RequestID)
	assert.Equal(t, "boom", logs[0].Error)
	assert.Equal(t, "/api/admin/events/1", logs[0].Path)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(logs[0].Extra, &extra))
	assert.Equal(t, "1", extra["event_id"])

	// both records reach stdout
	assert.Equal(t, 2, bytes.Count(stdout.Bytes(), []byte("\n")))
}

func TestDBHandler_StopIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := logging.NewDBHandler(db)
	h.Stop()
	h.Stop()
}

func TestDBHandler_DropsRecordsAfterStop(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := logging.NewDBHandler(db)
	logger := slog.New(h)

	logger.Error("before stop")
	h.Stop()

	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
	record := slog.NewRecord(time.Now(), slog.LevelError, "after stop", 0)
	require.NoError(t, h.Handle(context.Background(), record))
	logger.Error("also after stop")
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "before stop", logs[0].Message)
}

func TestDBHandler_StopWaitsForBatchFlush(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := logging.NewDBHandler(db)
	logger := slog.New(h)

	// 120 records trigger two size-based flushes and leave a partial batch.
	for i := 0; i < 120; i++ {
		logger.Error("payment webhook failed", "attempt", i)
	}
	h.Stop()

	var count int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&count).Error)
	assert.EqualValues(t, 120, count)
}

func TestPruneSystemLogs(t *testing.T) {
	db := testutil.NewTestDB(t)
	now := time.Now().UTC()

	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now.Add(-time.Hour), Level: "ERROR", Message: "recent"},
	}).Error)

	deleted, err := logging.PruneSystemLogs(db, 30*24*time.Hour, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}
