package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "correct-horse-battery"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, email, role string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test " + role,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createEvent(t *testing.T, db *gorm.DB, title string, startsAt time.Time) *models.Event {
	t.Helper()
	event := &models.Event{Title: title, StartsAt: startsAt.UTC(), EndsAt: startsAt.Add(2 * time.Hour).UTC()}
	require.NoError(t, db.Create(event).Error)
	return event
}

func ptr[T any](v T) *T {
	return &v
}
