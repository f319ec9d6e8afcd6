package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DonorHandler struct {
	donors *services.DonorService
}

func NewDonorHandler(donors *services.DonorService) *DonorHandler {
	return &DonorHandler{donors: donors}
}

func (h *DonorHandler) List(c *fiber.Ctx) error {
	donors, err := h.donors.List(c.UserContext())
	if err != nil {
		return internalError(c, err, "failed to list donors")
	}
	return c.JSON(dto.DonorListResponse{Donors: donors, Count: len(donors)})
}

func (h *DonorHandler) Leaderboard(c *fiber.Ctx) error {
	donors, err := h.donors.Leaderboard(c.UserContext(), c.QueryInt("limit", services.DefaultLeaderboardSize))
	if err != nil {
		return internalError(c, err, "failed to load donor leaderboard")
	}
	return c.JSON(dto.DonorListResponse{Donors: donors, Count: len(donors)})
}
