package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"gorm.io/gorm"
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// listable restricts a query to items that may be shown publicly.
func listable(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ? AND is_available = ?", true, true)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *InventoryService) List(ctx context.Context, f dto.InventoryFilter) ([]models.InventoryItem, error) {
	query := s.db.WithContext(ctx).Scopes(listable)

	if category := strings.TrimSpace(f.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if condition := strings.TrimSpace(f.Condition); condition != "" {
		query = query.Where("condition = ?", condition)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	items := []models.InventoryItem{}
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// Filters returns the distinct categories and conditions of listable items.
func (s *InventoryService) Filters(ctx context.Context) (*dto.InventoryFiltersResponse, error) {
	db := s.db.WithContext(ctx)

	var categories, conditions []string
	if err := db.Model(&models.InventoryItem{}).Scopes(listable).Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if err := db.Model(&models.InventoryItem{}).Scopes(listable).Pluck("condition", &conditions).Error; err != nil {
		return nil, fmt.Errorf("failed to load conditions: %w", err)
	}

	return &dto.InventoryFiltersResponse{
		Categories: distinctSorted(categories),
		Conditions: distinctSorted(conditions),
	}, nil
}

func distinctSorted(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
