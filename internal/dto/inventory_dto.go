package dto

import "github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"

type InventoryFilter struct {
	Category  string
	Condition string
	Search    string
}

type InventoryListResponse struct {
	Items []models.InventoryItem `json:"items"`
	Count int                    `json:"count"`
}

type InventoryFiltersResponse struct {
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
}

type DonorListResponse struct {
	Donors []models.Donor `json:"donors"`
	Count  int            `json:"count"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}
