package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TokenVerifier resolves a bearer token to the id of an active user.
type TokenVerifier interface {
	VerifyUser(ctx context.Context, token string) (uuid.UUID, error)
}

type DonationHandler struct {
	donations *services.DonationService
	auth      TokenVerifier
}

func NewDonationHandler(donations *services.DonationService, auth TokenVerifier) *DonationHandler {
	return &DonationHandler{donations: donations, auth: auth}
}

// optionalUser returns nil when the request carries no Authorization header.
// A header that is present but does not verify is an error.
func (h *DonationHandler) optionalUser(c *fiber.Ctx) (*uuid.UUID, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, nil
	}
	userID, err := h.auth.VerifyUser(c.UserContext(), services.BearerToken(header))
	if err != nil {
		return nil, err
	}
	return &userID, nil
}

func (h *DonationHandler) RecordIntent(c *fiber.Ctx) error {
	userID, err := h.auth.VerifyUser(c.UserContext(), services.BearerToken(c.Get(fiber.HeaderAuthorization)))
	if err != nil {
		return respondError(c, err, "donation intent auth failed")
	}

	var req dto.DonationIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	donation, err := h.donations.RecordIntent(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "failed to record donation intent")
	}

	return c.JSON(dto.DonationResponse{
		Success:     true,
		DonationID:  donation.ID,
		RedirectURL: donation.RedirectURL,
		Message:     "Donation intent recorded",
	})
}

func (h *DonationHandler) CreateMonetary(c *fiber.Ctx) error {
	userID, err := h.optionalUser(c)
	if err != nil {
		return respondError(c, err, "monetary donation auth failed")
	}

	var req dto.MonetaryDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	donation, err := h.donations.CreateMonetary(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "failed to create monetary donation")
	}

	return c.JSON(dto.DonationResponse{
		Success:    true,
		DonationID: donation.ID,
		Message:    "Thank you for your donation",
	})
}

func (h *DonationHandler) CreateItem(c *fiber.Ctx) error {
	userID, err := h.optionalUser(c)
	if err != nil {
		return respondError(c, err, "item donation auth failed")
	}

	var req dto.ItemDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	donation, err := h.donations.CreateItem(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "failed to create item donation")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.DonationResponse{
		Success:    true,
		DonationID: donation.ID,
		Message:    "Thank you, we will contact you about the drop-off",
	})
}
