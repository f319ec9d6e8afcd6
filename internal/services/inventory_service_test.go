package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedInventory(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.InventoryItem{
		{Name: "Winter coat", Description: "Warm wool coat", Category: "Clothing", Condition: "Good", IsActive: true, IsAvailable: true},
		{Name: "Desk lamp", Description: "LED, 100% working", Category: "Furniture", Condition: "Like New", IsActive: true, IsAvailable: true},
		{Name: "Children's books", Description: "Box of picture books", Category: "Books", Condition: "Good", IsActive: true, IsAvailable: true},
		{Name: "Old sofa", Description: "Reserved for pickup", Category: "Furniture", Condition: "Fair", IsActive: true, IsAvailable: false},
		{Name: "Retired coat", Description: "Hidden", Category: "Archive", Condition: "Poor", IsActive: false, IsAvailable: true},
		{Name: "Uncategorized", IsActive: true, IsAvailable: true},
		{Name: "Écharpe en laine", Description: "Tricotée À LA MAIN", Category: "Clothing", Condition: "Good", IsActive: true, IsAvailable: true},
	}
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func TestInventoryList(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedInventory(t, db)
	svc := NewInventoryService(db)
	ctx := context.Background()

	names := func(items []models.InventoryItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name
		}
		return out
	}

	tests := []struct {
		name   string
		filter dto.InventoryFilter
		want   []string
	}{
		{"all listable newest first", dto.InventoryFilter{}, []string{"Écharpe en laine", "Uncategorized", "Children's books", "Desk lamp", "Winter coat"}},
		{"category", dto.InventoryFilter{Category: "Furniture"}, []string{"Desk lamp"}},
		{"condition", dto.InventoryFilter{Condition: "Good"}, []string{"Écharpe en laine", "Children's books", "Winter coat"}},
		{"search folds non-ascii case in name", dto.InventoryFilter{Search: "écharpe"}, []string{"Écharpe en laine"}},
		{"search folds non-ascii case in description", dto.InventoryFilter{Search: "à la main"}, []string{"Écharpe en laine"}},
		{"search name case-insensitive", dto.InventoryFilter{Search: "COAT"}, []string{"Winter coat"}},
		{"search description", dto.InventoryFilter{Search: "picture"}, []string{"Children's books"}},
		{"search treats percent literally", dto.InventoryFilter{Search: "100%"}, []string{"Desk lamp"}},
		{"search underscore literal", dto.InventoryFilter{Search: "_"}, []string{}},
		{"combined", dto.InventoryFilter{Category: "Clothing", Condition: "Fair"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestInventoryFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedInventory(t, db)

	filters, err := NewInventoryService(db).Filters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Clothing", "Furniture"}, filters.Categories)
	assert.Equal(t, []string{"Good", "Like New"}, filters.Conditions)
}

func TestInventoryFilters_Empty(t *testing.T) {
	filters, err := NewInventoryService(testutil.NewTestDB(t)).Filters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, filters.Categories)
	assert.NotNil(t, filters.Categories)
}
