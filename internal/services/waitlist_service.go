package services

import (
	"context"
	"fmt"
	"strings"

	"theater-backend/internal/booking"
	"theater-backend/internal/cache"
	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

type WaitlistService struct {
	Repo         *repositories.WaitlistRepository
	EventRepo    *repositories.EventRepository
	Reservations *ReservationService
	AuditService *AuditService
}

func NewWaitlistService(repo *repositories.WaitlistRepository, eventRepo *repositories.EventRepository, reservations *ReservationService, auditService *AuditService) *WaitlistService {
	return &WaitlistService{Repo: repo, EventRepo: eventRepo, Reservations: reservations, AuditService: auditService}
}

// Add places a new entry on an event's waitlist. Waitlist entries never
// carry price or arrangement data.
func (s *WaitlistService) Add(ctx context.Context, req *models.CreateWaitlistEntryRequest, actor string) (*models.WaitlistEntry, error) {
	event, err := s.EventRepo.Get(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	// A full event takes entries even with the flag off
	occ, err := s.Reservations.Occupancy(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !booking.WaitlistOpen(event.WaitlistActive, occ.RemainingCapacity) {
		return nil, fmt.Errorf("waitlist is not open for this event, %d seats remaining", occ.RemainingCapacity)
	}

	entry := &models.WaitlistEntry{
		EventID:         req.EventID,
		Status:          models.WaitlistPending,
		ContactPerson:   req.ContactPerson,
		Email:           strings.ToLower(req.Email),
		Phone:           req.Phone,
		NumberOfPersons: req.NumberOfPersons,
		Notes:           req.Notes,
	}

	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	cache.InvalidateReservationCaches(ctx)
	s.AuditService.Record(ctx, actor, "waitlist.added", "waitlist", entry.ID,
		fmt.Sprintf("%s, %d persons for event %d", entry.ContactPerson, entry.NumberOfPersons, entry.EventID))

	return entry, nil
}

func (s *WaitlistService) ListByEvent(ctx context.Context, eventID int) ([]*models.WaitlistEntry, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

// MarkContacted records that an admin reached out to the entry.
func (s *WaitlistService) MarkContacted(ctx context.Context, id int, actor string) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return fmt.Errorf("waitlist entry not found: %w", err)
	}

	if err := s.Repo.MarkContacted(ctx, id, timeutil.Now(), actor); err != nil {
		return err
	}

	s.AuditService.Record(ctx, actor, "waitlist.contacted", "waitlist", id, "")
	return nil
}

// Convert turns a waitlist entry into a real booking. Capacity is checked
// like any other booking; the entry keeps a pointer to the reservation it
// became.
func (s *WaitlistService) Convert(ctx context.Context, id int, req *models.CreateReservationRequest, actor string) (*models.Reservation, error) {
	entry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("waitlist entry not found: %w", err)
	}
	if entry.Status == models.WaitlistConverted {
		return nil, fmt.Errorf("waitlist entry already converted")
	}

	req.EventID = entry.EventID
	if req.ContactPerson == "" {
		req.ContactPerson = entry.ContactPerson
	}
	if req.Email == "" {
		req.Email = entry.Email
	}
	if req.Phone == "" {
		req.Phone = entry.Phone
	}
	if req.NumberOfPersons == 0 {
		req.NumberOfPersons = entry.NumberOfPersons
	}

	res, err := s.Reservations.Submit(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.MarkConverted(ctx, id, res.ID); err != nil {
		return nil, err
	}

	metrics.WaitlistConversions.Inc()
	s.AuditService.Record(ctx, actor, "waitlist.converted", "waitlist", id,
		fmt.Sprintf("became reservation %d", res.ID))

	return res, nil
}

func (s *WaitlistService) UpdateStatus(ctx context.Context, id int, status models.WaitlistStatus, actor string) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return fmt.Errorf("waitlist entry not found: %w", err)
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.AuditService.Record(ctx, actor, "waitlist.status_changed", "waitlist", id, string(status))
	return nil
}

func (s *WaitlistService) SetPriority(ctx context.Context, id, priority int, actor string) error {
	if err := s.Repo.SetPriority(ctx, id, priority); err != nil {
		return err
	}
	s.AuditService.Record(ctx, actor, "waitlist.priority_changed", "waitlist", id, fmt.Sprint(priority))
	return nil
}

// SeatsAvailableFor reports whether an entry's group currently fits the
// event, used by the admin UI to highlight convertible entries.
func (s *WaitlistService) SeatsAvailableFor(ctx context.Context, entry *models.WaitlistEntry) (bool, error) {
	event, err := s.EventRepo.Get(ctx, entry.EventID)
	if err != nil {
		return false, err
	}
	occ, err := s.Reservations.Occupancy(ctx, entry.EventID)
	if err != nil {
		return false, err
	}
	return booking.CanBook(occ.TotalBooked, entry.NumberOfPersons, event.Capacity), nil
}
