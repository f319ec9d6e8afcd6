package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
)

func TestDeleteEvent_SuperAdmin(t *testing.T) {
	s := newTestServer(t)
	admin, token := s.user(t, "root@example.org", models.RoleSuperAdmin)
	member, _ := s.user(t, "member@example.org", models.RoleUser)
	event := s.event(t, "Annual gala")
	require.NoError(t, s.db.Create(&models.Comment{EventID: event.ID, UserID: member.ID, Content: "See you"}).Error)
	require.NoError(t, s.db.Create(&models.Like{EventID: event.ID, UserID: member.ID}).Error)

	resp, body := s.do(t, request{method: http.MethodDelete, path: "/api/admin/events/" + event.ID.String(), token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"message":"Event deleted successfully"}`, string(body))
	assert.Equal(t, "no-store, max-age=0", resp.Header.Get("Cache-Control"))

	assert.Zero(t, s.count(t, &models.Event{}, "id = ?", event.ID))
	assert.Zero(t, s.count(t, &models.Comment{}, ""))
	assert.Zero(t, s.count(t, &models.Like{}, ""))

	var logs []models.AdminLog
	require.NoError(t, s.db.Where("action = ?", models.ActionDeleteEvent).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID.String(), logs[0].AdminID)
	assert.Equal(t, models.ResourceEvent, logs[0].Resource)
	assert.Equal(t, event.ID.String(), logs[0].ResourceID)
	assert.True(t, logs[0].Success)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(logs[0].Metadata, &meta))
	assert.Equal(t, event.ID.String(), meta["eventId"])
	assert.Equal(t, "Annual gala", meta["title"])

	resp, body = s.do(t, request{method: http.MethodGet, path: "/api/events/" + event.ID.String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "event not found", errorMessage(t, body))
}

func TestDeleteEvent_Denied(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.user(t, "member@example.org", models.RoleUser)
	event := s.event(t, "Volunteer training")

	for name, token := range map[string]string{"non-admin": memberToken, "no token": "", "bad token": "garbage"} {
		t.Run(name, func(t *testing.T) {
			resp, body := s.do(t, request{method: http.MethodDelete, path: "/api/admin/events/" + event.ID.String(), token: token})
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.NotEmpty(t, errorMessage(t, body))
			assert.Equal(t, "noindex, nofollow", resp.Header.Get("X-Robots-Tag"))
		})
	}

	assert.Equal(t, int64(1), s.count(t, &models.Event{}, "id = ?", event.ID))
	assert.Zero(t, s.count(t, &models.AdminLog{}, "action = ?", models.ActionDeleteEvent))

	var denied []models.AdminLog
	require.NoError(t, s.db.Where("action = ?", models.ActionDeleteEventDenied).Find(&denied).Error)
	require.Len(t, denied, 3)
	for _, d := range denied {
		assert.Equal(t, models.UnknownActor, d.AdminID)
		assert.False(t, d.Success)
		assert.Equal(t, event.ID.String(), d.ResourceID)
	}
}

func TestDeleteEvent_NotFoundAndMissingID(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "admin@example.org", models.RoleAdmin)

	resp, body := s.do(t, request{method: http.MethodDelete, path: "/api/admin/events/" + uuid.NewString(), token: token})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "event not found", errorMessage(t, body))

	resp, _ = s.do(t, request{method: http.MethodDelete, path: "/api/admin/events/evt_123", token: token})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, request{method: http.MethodDelete, path: "/api/admin/events", token: token})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Event ID is required", errorMessage(t, body))

	assert.Zero(t, s.count(t, &models.AdminLog{}, ""))
}

func TestCreateEvent(t *testing.T) {
	s := newTestServer(t)
	admin, adminToken := s.user(t, "admin@example.org", models.RoleAdmin)
	_, memberToken := s.user(t, "member@example.org", models.RoleUser)

	start := time.Date(2026, 12, 5, 17, 0, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"title":    "Holiday toy drive",
		"location": "Community hall",
		"startsAt": start.Format(time.RFC3339),
		"endsAt":   start.Add(3 * time.Hour).Format(time.RFC3339),
	}

	resp, _ := s.do(t, request{method: http.MethodPost, path: "/api/admin/events", body: payload, token: memberToken})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, request{method: http.MethodPost, path: "/api/admin/events", body: payload, token: adminToken})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	event := decode[models.Event](t, body)
	assert.Equal(t, "Holiday toy drive", event.Title)
	assert.True(t, event.StartsAt.Equal(start))

	assert.Equal(t, int64(1), s.count(t, &models.AdminLog{}, "action = ? AND admin_id = ?", models.ActionCreateEvent, admin.ID.String()))

	resp, body = s.do(t, request{method: http.MethodPost, path: "/api/admin/events", body: map[string]string{"title": "No date"}, token: adminToken})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "startsAt is required", errorMessage(t, body))
}

func TestListAdminLogs(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "admin@example.org", models.RoleAdmin)
	for i := 0; i < 3; i++ {
		e := s.event(t, "Event")
		resp, _ := s.do(t, request{method: http.MethodDelete, path: "/api/admin/events/" + e.ID.String(), token: token})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := s.do(t, request{method: http.MethodGet, path: "/api/admin/logs?limit=2", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.AdminLogListResponse](t, body)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Logs, 2)
	assert.Equal(t, 2, page.Limit)

	resp, _ = s.do(t, request{method: http.MethodGet, path: "/api/admin/logs"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
