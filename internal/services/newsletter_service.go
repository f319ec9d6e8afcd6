package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/gorm"
)

type NewsletterService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNewsletterService(db *gorm.DB) *NewsletterService {
	return &NewsletterService{db: db, now: time.Now}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Subscribe adds email to the mailing list. Subscribing an address that is
// already on the list re-activates it and is otherwise a no-op.
func (s *NewsletterService) Subscribe(ctx context.Context, raw string) (*models.Newsletter, error) {
	email, err := normalizeEmail(raw)
	if err != nil {
		return nil, err
	}

	var sub models.Newsletter
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sub = models.Newsletter{Email: email, IsActive: true, SubscribedAt: s.now().UTC()}
			return tx.Create(&sub).Error
		}
		if err != nil {
			return err
		}
		if sub.IsActive {
			return nil
		}

		sub.IsActive = true
		sub.SubscribedAt = s.now().UTC()
		sub.UnsubscribedAt = nil
		return tx.Model(&sub).Updates(map[string]interface{}{
			"is_active":       true,
			"subscribed_at":   sub.SubscribedAt,
			"unsubscribed_at": nil,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return &sub, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, raw string) error {
	email, err := normalizeEmail(raw)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.Newsletter{}).
		Where("email = ? AND is_active = ?", email, true).
		Updates(map[string]interface{}{
			"is_active":       false,
			"unsubscribed_at": s.now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}
