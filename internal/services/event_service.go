package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLength = 1000

type EventService struct {
	db     *gorm.DB
	filter *ContentFilter
	now    func() time.Time
}

func NewEventService(db *gorm.DB, filter *ContentFilter) *EventService {
	return &EventService{db: db, filter: filter, now: time.Now}
}

func (s *EventService) List(ctx context.Context, upcomingOnly bool) ([]models.Event, error) {
	events := []models.Event{}
	query := s.db.WithContext(ctx).Order("starts_at ASC")
	if upcomingOnly {
		query = query.Where("starts_at >= ?", s.now().UTC())
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Detail(ctx context.Context, id uuid.UUID) (*dto.EventDetailResponse, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	comments := []models.Comment{}
	if err := db.Where("event_id = ?", id).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	var likes int64
	if err := db.Model(&models.Like{}).Where("event_id = ?", id).Count(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &dto.EventDetailResponse{Event: *event, Comments: comments, Likes: likes}, nil
}

func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*models.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalidArgument("title is required")
	}
	if req.StartsAt == nil {
		return nil, invalidArgument("startsAt is required")
	}
	endsAt := *req.StartsAt
	if req.EndsAt != nil {
		if req.EndsAt.Before(*req.StartsAt) {
			return nil, invalidArgument("endsAt must not be before startsAt")
		}
		endsAt = *req.EndsAt
	}

	event := models.Event{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      endsAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// Delete removes the event. Its comments and likes go with it through the
// foreign keys' ON DELETE CASCADE.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (s *EventService) AddComment(ctx context.Context, eventID, userID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidArgument("content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, invalidArgument(fmt.Sprintf("content must be at most %d characters", maxCommentLength))
	}
	if ok, reason := s.filter.Check(content); !ok {
		return nil, invalidArgument(RejectionMessage(reason))
	}

	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	comment := models.Comment{EventID: eventID, UserID: userID, Content: content}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// ToggleLike likes the event for userID, or removes an existing like.
func (s *EventService) ToggleLike(ctx context.Context, eventID, userID uuid.UUID) (bool, int64, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return false, 0, err
	}

	var liked bool
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(&models.Like{EventID: eventID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&models.Like{}).Where("event_id = ?", eventID).Count(&count).Error
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}
	return liked, count, nil
}
