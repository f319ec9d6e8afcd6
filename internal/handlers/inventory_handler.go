package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	inventory *services.InventoryService
}

func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.inventory.List(c.UserContext(), dto.InventoryFilter{
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Search:    c.Query("search"),
	})
	if err != nil {
		return internalError(c, err, "failed to list inventory")
	}
	return c.JSON(dto.InventoryListResponse{Items: items, Count: len(items)})
}

func (h *InventoryHandler) Filters(c *fiber.Ctx) error {
	filters, err := h.inventory.Filters(c.UserContext())
	if err != nil {
		return internalError(c, err, "failed to load inventory filters")
	}
	return c.JSON(filters)
}
