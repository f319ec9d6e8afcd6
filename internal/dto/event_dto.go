package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
)

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"imageUrl"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
	Count  int            `json:"count"`
}

type EventDetailResponse struct {
	models.Event
	Comments []models.Comment `json:"comments"`
	Likes    int64            `json:"likes"`
}

type LikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type AdminLogListResponse struct {
	Logs   []models.AdminLog `json:"logs"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
