package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func eventID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.events.List(c.UserContext(), c.QueryBool("upcoming", false))
	if err != nil {
		return internalError(c, err, "failed to list events")
	}
	return c.JSON(dto.EventListResponse{Events: events, Count: len(events)})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, ok := eventID(c)
	if !ok {
		return respondError(c, services.ErrEventNotFound, "")
	}

	detail, err := h.events.Detail(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "failed to load event")
	}
	return c.JSON(detail)
}

func (h *EventHandler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return respondError(c, services.ErrInvalidToken, "")
	}
	id, ok := eventID(c)
	if !ok {
		return respondError(c, services.ErrEventNotFound, "")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.events.AddComment(c.UserContext(), id, userID, req.Content)
	if err != nil {
		return respondError(c, err, "failed to add comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *EventHandler) ToggleLike(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return respondError(c, services.ErrInvalidToken, "")
	}
	id, ok := eventID(c)
	if !ok {
		return respondError(c, services.ErrEventNotFound, "")
	}

	liked, likes, err := h.events.ToggleLike(c.UserContext(), id, userID)
	if err != nil {
		return respondError(c, err, "failed to toggle like")
	}
	return c.JSON(dto.LikeResponse{Liked: liked, Likes: likes})
}
