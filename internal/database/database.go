package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide handle. It is opened once by Connect and shared by
// every request for the lifetime of the process.
var DB *gorm.DB

var connectOnce sync.Once

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var err error
	connectOnce.Do(func() {
		DB, err = Open(cfg)
	})
	if err != nil {
		return nil, err
	}
	if DB == nil {
		return nil, errors.New("database connection was not initialized")
	}
	return DB, nil
}

// Open builds a new pool for the configured driver. Prefer Connect outside
// of tests.
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: cfg.DSN()}
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate creates the schema and the reserved anonymous donor row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Comment{},
		&models.Like{},
		&models.Donation{},
		&models.InventoryItem{},
		&models.Donor{},
		&models.Newsletter{},
		&models.AdminLog{},
		&models.SystemLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureAnonymousUser(db)
}

func EnsureAnonymousUser(db *gorm.DB) error {
	anon := models.User{
		ID:       models.AnonymousUserID,
		Email:    models.AnonymousUserEmail,
		Name:     "Anonymous",
		Role:     models.RoleUser,
		IsActive: false,
	}
	if err := db.Where("id = ?", models.AnonymousUserID).FirstOrCreate(&anon).Error; err != nil {
		return fmt.Errorf("ensure anonymous user: %w", err)
	}
	return nil
}

// Ping runs a trivial round-trip query.
func Ping(ctx context.Context, db *gorm.DB) error {
	var one int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
