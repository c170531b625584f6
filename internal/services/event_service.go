package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"theater-backend/internal/cache"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

type EventService struct {
	Repo         *repositories.EventRepository
	ShowRepo     *repositories.ShowRepository
	Reservations *ReservationService
	AuditService *AuditService
}

func NewEventService(repo *repositories.EventRepository, showRepo *repositories.ShowRepository, reservations *ReservationService, auditService *AuditService) *EventService {
	return &EventService{Repo: repo, ShowRepo: showRepo, Reservations: reservations, AuditService: auditService}
}

func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest, actor string) (*models.Event, error) {
	if _, err := s.ShowRepo.Get(ctx, req.ShowID); err != nil {
		return nil, fmt.Errorf("show not found: %w", err)
	}

	event := &models.Event{
		ShowID:         req.ShowID,
		Date:           req.Date,
		Type:           req.Type,
		DoorsOpen:      req.DoorsOpen,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Capacity:       req.Capacity,
		BookingOpensAt: req.BookingOpensAt,
		BookingCutoff:  req.BookingCutoff,
		WaitlistActive: req.WaitlistActive,
		IsActive:       true,
	}

	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, err
	}

	cache.InvalidateEventCaches(ctx)
	s.AuditService.Record(ctx, actor, "event.created", "event", event.ID,
		fmt.Sprintf("%s, capacity %d", event.Date.Format(timeutil.DateLayout), event.Capacity))

	return event, nil
}

// duplicateFrom copies an event's configuration onto a new date. The
// booking window shifts along with the date, the waitlist starts closed.
func duplicateFrom(src *models.Event, newDate time.Time) *models.Event {
	shift := newDate.Sub(src.Date)
	dup := &models.Event{
		ShowID:         src.ShowID,
		Date:           newDate,
		Type:           src.Type,
		DoorsOpen:      src.DoorsOpen,
		StartsAt:       src.StartsAt,
		EndsAt:         src.EndsAt,
		Capacity:       src.Capacity,
		WaitlistActive: false,
		IsActive:       true,
	}
	if src.BookingOpensAt != nil {
		t := src.BookingOpensAt.Add(shift)
		dup.BookingOpensAt = &t
	}
	if src.BookingCutoff != nil {
		t := src.BookingCutoff.Add(shift)
		dup.BookingCutoff = &t
	}
	return dup
}

// Duplicate creates a copy of an existing event on a new date. Reservations
// and waitlist entries stay with the source event.
func (s *EventService) Duplicate(ctx context.Context, id int, newDate time.Time, actor string) (*models.Event, error) {
	src, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	event := duplicateFrom(src, newDate)
	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, err
	}

	cache.InvalidateEventCaches(ctx)
	s.AuditService.Record(ctx, actor, "event.duplicated", "event", event.ID,
		fmt.Sprintf("copy of event %d onto %s", src.ID, newDate.Format(timeutil.DateLayout)))

	return event, nil
}

func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EventService) List(ctx context.Context, from, to *time.Time) ([]*models.Event, error) {
	if from == nil && to == nil {
		if data, ok := cache.GetCached(ctx, cache.EventListKey); ok {
			var events []*models.Event
			if err := json.Unmarshal(data, &events); err == nil {
				return events, nil
			}
		}
	}

	events, err := s.Repo.List(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if from == nil && to == nil {
		if data, err := json.Marshal(events); err == nil {
			cache.SetCached(ctx, cache.EventListKey, data, 5*time.Minute)
		}
	}
	return events, nil
}

func (s *EventService) Update(ctx context.Context, id int, req *models.UpdateEventRequest, actor string) (*models.Event, error) {
	event, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	var changes []models.FieldChange
	if req.Type != nil && *req.Type != event.Type {
		changes = append(changes, models.FieldChange{Field: "type", OldValue: string(event.Type), NewValue: string(*req.Type)})
		event.Type = *req.Type
	}
	if req.DoorsOpen != nil {
		event.DoorsOpen = *req.DoorsOpen
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Capacity != nil && *req.Capacity != event.Capacity {
		changes = append(changes, models.FieldChange{Field: "capacity", OldValue: fmt.Sprint(event.Capacity), NewValue: fmt.Sprint(*req.Capacity)})
		event.Capacity = *req.Capacity
	}
	if req.BookingOpensAt != nil {
		event.BookingOpensAt = req.BookingOpensAt
	}
	if req.BookingCutoff != nil {
		event.BookingCutoff = req.BookingCutoff
	}
	if req.WaitlistActive != nil && *req.WaitlistActive != event.WaitlistActive {
		changes = append(changes, models.FieldChange{Field: "waitlist_active", OldValue: fmt.Sprint(event.WaitlistActive), NewValue: fmt.Sprint(*req.WaitlistActive)})
		event.WaitlistActive = *req.WaitlistActive
	}
	if req.IsActive != nil && *req.IsActive != event.IsActive {
		changes = append(changes, models.FieldChange{Field: "is_active", OldValue: fmt.Sprint(event.IsActive), NewValue: fmt.Sprint(*req.IsActive)})
		event.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(ctx, event); err != nil {
		return nil, err
	}

	cache.InvalidateEventCaches(ctx)
	s.AuditService.RecordChanges(ctx, actor, "event.updated", "event", id, changes)

	return event, nil
}

// Occupancy delegates to the reservation service so every caller uses the
// same counting policy.
func (s *EventService) Occupancy(ctx context.Context, eventID int) (*models.EventOccupancy, error) {
	return s.Reservations.Occupancy(ctx, eventID)
}
