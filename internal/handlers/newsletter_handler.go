package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NewsletterHandler struct {
	newsletter *services.NewsletterService
}

func NewNewsletterHandler(newsletter *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.newsletter.Subscribe(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, "newsletter subscribe failed")
	}
	return c.JSON(dto.MessageResponse{Message: "Subscribed successfully"})
}

func (h *NewsletterHandler) Unsubscribe(c *fiber.Ctx) error {
	var req dto.NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.newsletter.Unsubscribe(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, "newsletter unsubscribe failed")
	}
	return c.JSON(dto.MessageResponse{Message: "Unsubscribed successfully"})
}
