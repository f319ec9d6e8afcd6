package handlers

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 100
)

type AdminHandler struct {
	events   *services.EventService
	audit    *services.AdminLogger
	verifier middleware.AdminVerifier
}

func NewAdminHandler(events *services.EventService, audit *services.AdminLogger, verifier middleware.AdminVerifier) *AdminHandler {
	return &AdminHandler{events: events, audit: audit, verifier: verifier}
}

func (h *AdminHandler) entry(c *fiber.Ctx, action, resourceID string) services.AdminLogEntry {
	return services.AdminLogEntry{
		Action:     action,
		Resource:   models.ResourceEvent,
		ResourceID: resourceID,
		IPAddress:  c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	}
}

// DeleteEvent verifies the caller itself rather than relying on
// AdminRequired, so that denied attempts are written to the audit log.
func (h *AdminHandler) DeleteEvent(c *fiber.Ctx) error {
	rawID := strings.TrimSpace(c.Params("id"))
	if rawID == "" {
		return badRequest(c, "Event ID is required")
	}

	ctx := c.UserContext()
	admin := h.verifier.VerifyAdminFromRequest(c)
	if admin == nil {
		denied := h.entry(c, models.ActionDeleteEventDenied, rawID)
		h.audit.Log(ctx, denied)
		slog.Warn("admin event deletion denied", "event_id", rawID, "ip", denied.IPAddress)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Forbidden"})
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return respondError(c, services.ErrEventNotFound, "")
	}

	event, err := h.events.Get(ctx, id)
	if err != nil {
		return respondError(c, err, "failed to load event")
	}
	if err := h.events.Delete(ctx, id); err != nil {
		return respondError(c, err, "failed to delete event")
	}

	deleted := h.entry(c, models.ActionDeleteEvent, id.String())
	deleted.AdminID = admin.UserID.String()
	deleted.Success = true
	deleted.Metadata = map[string]interface{}{"eventId": id.String(), "title": event.Title}
	h.audit.Log(ctx, deleted)

	slog.Info("event deleted", "event_id", id, "admin_id", admin.UserID)
	return c.JSON(dto.MessageResponse{Message: "Event deleted successfully"})
}

func (h *AdminHandler) CreateEvent(c *fiber.Ctx) error {
	admin := middleware.Admin(c)
	if admin == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Admin access required"})
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	event, err := h.events.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "failed to create event")
	}

	created := h.entry(c, models.ActionCreateEvent, event.ID.String())
	created.AdminID = admin.UserID.String()
	created.Success = true
	created.Metadata = map[string]interface{}{"eventId": event.ID.String(), "title": event.Title}
	h.audit.Log(c.UserContext(), created)

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLogPageSize)
	switch {
	case limit <= 0:
		limit = defaultLogPageSize
	case limit > maxLogPageSize:
		limit = maxLogPageSize
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	logs, total, err := h.audit.List(c.UserContext(), limit, offset)
	if err != nil {
		return internalError(c, err, "failed to list admin logs")
	}

	return c.JSON(dto.AdminLogListResponse{Logs: logs, Total: total, Limit: limit, Offset: offset})
}
