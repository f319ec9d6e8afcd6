package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

type DonorService struct {
	db *gorm.DB
}

func NewDonorService(db *gorm.DB) *DonorService {
	return &DonorService{db: db}
}

func (s *DonorService) List(ctx context.Context) ([]models.Donor, error) {
	donors := []models.Donor{}
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&donors).Error; err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	return donors, nil
}

// Leaderboard returns the top active donors by total donated. limit is
// clamped to [1, MaxLeaderboardSize]; zero or less selects the default.
func (s *DonorService) Leaderboard(ctx context.Context, limit int) ([]models.Donor, error) {
	switch {
	case limit <= 0:
		limit = DefaultLeaderboardSize
	case limit > MaxLeaderboardSize:
		limit = MaxLeaderboardSize
	}

	donors := []models.Donor{}
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("total_donated DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&donors).Error; err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return donors, nil
}
