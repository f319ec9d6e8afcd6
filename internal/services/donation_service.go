package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationService struct {
	db                 *gorm.DB
	defaultRedirectURL string
}

func NewDonationService(db *gorm.DB, defaultRedirectURL string) *DonationService {
	return &DonationService{db: db, defaultRedirectURL: defaultRedirectURL}
}

// maxAmountCents is the largest value a decimal(10,2) amount column holds,
// in cents.
const maxAmountCents = 9999999999

// validateAmount rounds to cents the way the amount column stores it, then
// requires the stored value to be positive and to fit the column.
func validateAmount(amount *float64) (float64, error) {
	if amount == nil || math.IsNaN(*amount) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(*amount * 100)
	if !(cents > 0) {
		return 0, ErrInvalidAmount
	}
	if cents > maxAmountCents {
		return 0, ErrAmountTooLarge
	}
	return cents / 100, nil
}

func validateRedirectURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidRedirectURL
	}
	return nil
}

// RecordIntent stores a pending monetary donation for userID before the
// donor is redirected to the payment page. When req.DonationID names an
// open monetary donation of the same user it is overwritten; otherwise a new
// donation is created.
func (s *DonationService) RecordIntent(ctx context.Context, userID uuid.UUID, req *dto.DonationIntentRequest) (*models.Donation, error) {
	amount, err := validateAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	redirectURL := strings.TrimSpace(req.RedirectURL)
	if redirectURL == "" {
		redirectURL = s.defaultRedirectURL
	} else if err := validateRedirectURL(redirectURL); err != nil {
		return nil, err
	}

	var donation models.Donation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.DonationID != nil {
			err := tx.Where("id = ? AND user_id = ? AND type = ? AND status IN ?",
				*req.DonationID, userID, models.DonationTypeMonetary,
				[]string{models.DonationStatusPending, models.DonationStatusFailed}).
				First(&donation).Error
			if err == nil {
				donation.Amount = amount
				donation.Status = models.DonationStatusPending
				donation.RedirectURL = redirectURL
				donation.Notes = req.Notes
				return tx.Model(&donation).Updates(map[string]interface{}{
					"amount":       donation.Amount,
					"status":       donation.Status,
					"redirect_url": donation.RedirectURL,
					"notes":        donation.Notes,
				}).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		donation = models.Donation{
			UserID:      userID,
			Amount:      amount,
			Type:        models.DonationTypeMonetary,
			Status:      models.DonationStatusPending,
			RedirectURL: redirectURL,
			Notes:       req.Notes,
		}
		return tx.Create(&donation).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record donation intent: %w", err)
	}
	return &donation, nil
}

// CreateMonetary always inserts a new pending donation. A nil userID records
// it against the anonymous placeholder user.
func (s *DonationService) CreateMonetary(ctx context.Context, userID *uuid.UUID, req *dto.MonetaryDonationRequest) (*models.Donation, error) {
	amount, err := validateAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	donation := models.Donation{
		UserID: ownerOrAnonymous(userID),
		Amount: amount,
		Type:   models.DonationTypeMonetary,
		Status: models.DonationStatusPending,
		Notes:  req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return &donation, nil
}

// CreateItem records an in-kind donation valued at req.EstimatedValue.
func (s *DonationService) CreateItem(ctx context.Context, userID *uuid.UUID, req *dto.ItemDonationRequest) (*models.Donation, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return nil, invalidArgument("itemName is required")
	}
	if req.Quantity < 1 {
		return nil, invalidArgument("quantity must be at least 1")
	}
	amount, err := validateAmount(req.EstimatedValue)
	if errors.Is(err, ErrAmountTooLarge) {
		return nil, invalidArgument("estimatedValue must not exceed 99999999.99")
	}
	if err != nil {
		return nil, invalidArgument("estimatedValue must be greater than 0")
	}

	notes := fmt.Sprintf("%d x %s", req.Quantity, name)
	if desc := strings.TrimSpace(req.Description); desc != "" {
		notes += ": " + desc
	}

	donation := models.Donation{
		UserID: ownerOrAnonymous(userID),
		Amount: amount,
		Type:   models.DonationTypeItem,
		Status: models.DonationStatusPending,
		Notes:  notes,
	}
	if err := s.db.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create item donation: %w", err)
	}
	return &donation, nil
}

// ConfirmPayment applies the payment processor's verdict to a pending
// donation. A completed donation of a registered user is added to that
// user's donor totals in the same transaction.
func (s *DonationService) ConfirmPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*models.Donation, error) {
	if req.Status != models.DonationStatusCompleted && req.Status != models.DonationStatusFailed {
		return nil, ErrInvalidPaymentState
	}

	var donation models.Donation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&donation, "id = ?", req.DonationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDonationNotFound
			}
			return err
		}
		if donation.Status != models.DonationStatusPending {
			return ErrDonationNotPending
		}

		donation.Status = req.Status
		donation.PaymentReference = req.Reference
		if err := tx.Model(&donation).Updates(map[string]interface{}{
			"status":            donation.Status,
			"payment_reference": donation.PaymentReference,
		}).Error; err != nil {
			return err
		}

		if donation.Status == models.DonationStatusCompleted && !donation.IsAnonymous() {
			return creditDonor(tx, donation.UserID, donation.Amount)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDonationNotFound) || errors.Is(err, ErrDonationNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	slog.Info("donation payment confirmed", "donation_id", donation.ID, "status", donation.Status)
	return &donation, nil
}

func creditDonor(tx *gorm.DB, userID uuid.UUID, amount float64) error {
	var donor models.Donor
	err := tx.Where("user_id = ?", userID).First(&donor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("donor user not found: %w", err)
		}
		donor = models.Donor{
			UserID:        &userID,
			DisplayName:   displayName(&user),
			TotalDonated:  amount,
			DonationCount: 1,
			IsActive:      true,
		}
		return tx.Create(&donor).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&donor).Updates(map[string]interface{}{
		"total_donated":  gorm.Expr("total_donated + ?", amount),
		"donation_count": gorm.Expr("donation_count + ?", 1),
	}).Error
}

func displayName(user *models.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(user.Email, "@")
	return local
}

func ownerOrAnonymous(userID *uuid.UUID) uuid.UUID {
	if userID == nil {
		return models.AnonymousUserID
	}
	return *userID
}
