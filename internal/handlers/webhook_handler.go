package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	donations *services.DonationService
	secret    string
}

func NewWebhookHandler(donations *services.DonationService, secret string) *WebhookHandler {
	return &WebhookHandler{donations: donations, secret: secret}
}

// HandlePayment receives the payment processor's verdict on a pending
// donation. The Authorization header must equal the shared secret.
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	if h.secret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Payment webhooks are not configured",
		})
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.secret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req dto.PaymentWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	donation, err := h.donations.ConfirmPayment(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "failed to process payment webhook")
	}

	slog.Info("payment webhook processed", "donation_id", donation.ID, "status", donation.Status)
	return c.JSON(fiber.Map{"received": true})
}
