package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	dbBatchSize     = 50
	dbFlushInterval = 5 * time.Second
)

// dbSink is shared by a DBHandler and all handlers derived from it.
type dbSink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	closed   bool
	inflight sync.WaitGroup
	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	sink  *dbSink
	attrs []slog.Attr
}

func NewDBHandler(db *gorm.DB) *DBHandler {
	return newDBHandler(db, dbFlushInterval)
}

func newDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	sink := &dbSink{
		db:      db,
		buffer:  make([]models.SystemLog, 0, dbBatchSize),
		ticker:  time.NewTicker(interval),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go sink.flushLoop()
	return &DBHandler{sink: sink}
}

func (s *dbSink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *dbSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, dbBatchSize)
	s.mu.Unlock()

	// Logged at WARN so the failure does not loop back into this sink.
	if err := s.db.CreateInBatches(batch, dbBatchSize).Error; err != nil {
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes pending records and waits for the background loop and any
// size-triggered flush to finish. Records handled after Stop are dropped.
func (h *DBHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.mu.Lock()
		h.sink.closed = true
		h.sink.mu.Unlock()
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	<-h.sink.stopped
	h.sink.inflight.Wait()
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < slog.LevelError {
		return false
	}
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return !h.sink.closed
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "method":
			entry.Method = a.Value.String()
		case "path":
			entry.Path = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	if h.sink.closed {
		h.sink.mu.Unlock()
		return nil
	}
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= dbBatchSize
	if needFlush {
		h.sink.inflight.Add(1)
	}
	h.sink.mu.Unlock()

	if needFlush {
		go func() {
			defer h.sink.inflight.Done()
			h.sink.flush()
		}()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op: system_logs has a flat layout.
func (h *DBHandler) WithGroup(string) slog.Handler {
	return h
}
