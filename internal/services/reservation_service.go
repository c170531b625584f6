package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"theater-backend/internal/booking"
	"theater-backend/internal/cache"
	"theater-backend/internal/config"
	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

type ReservationService struct {
	Repo         *repositories.ReservationRepository
	EventRepo    *repositories.EventRepository
	WaitlistRepo *repositories.WaitlistRepository
	PaymentRepo  *repositories.PaymentRepository
	ArchiveRepo  *repositories.ArchiveRepository
	MerchRepo    *repositories.MerchandiseRepository
	Pricing      *PricingService
	AuditService *AuditService

	overbookingAllowance int
	optionHoldDays       int
}

func NewReservationService(
	repo *repositories.ReservationRepository,
	eventRepo *repositories.EventRepository,
	waitlistRepo *repositories.WaitlistRepository,
	paymentRepo *repositories.PaymentRepository,
	archiveRepo *repositories.ArchiveRepository,
	merchRepo *repositories.MerchandiseRepository,
	pricing *PricingService,
	auditService *AuditService,
	cfg *config.Config,
) *ReservationService {
	allowance := cfg.Booking.OverbookingAllowance
	if allowance <= 0 {
		allowance = booking.DefaultOverbookingAllowance
	}
	holdDays := cfg.Booking.OptionHoldDays
	if holdDays <= 0 {
		holdDays = booking.DefaultOptionHoldDays
	}

	return &ReservationService{
		Repo:                 repo,
		EventRepo:            eventRepo,
		WaitlistRepo:         waitlistRepo,
		PaymentRepo:          paymentRepo,
		ArchiveRepo:          archiveRepo,
		MerchRepo:            merchRepo,
		Pricing:              pricing,
		AuditService:         auditService,
		overbookingAllowance: allowance,
		optionHoldDays:       holdDays,
	}
}

// Occupancy aggregates the capacity picture for one event.
func (s *ReservationService) Occupancy(ctx context.Context, eventID int) (*models.EventOccupancy, error) {
	key := fmt.Sprintf(cache.EventOccupancyFmt, eventID)
	if data, ok := cache.GetCached(ctx, key); ok {
		occ := &models.EventOccupancy{}
		if err := json.Unmarshal(data, occ); err == nil {
			return occ, nil
		}
	}

	event, err := s.EventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	reservations, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	waitlist, err := s.WaitlistRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	occ := booking.Occupancy(event, reservations, waitlist, timeutil.Now())

	if data, err := json.Marshal(occ); err == nil {
		cache.SetCached(ctx, key, data, time.Minute)
	}
	return &occ, nil
}

// checkCapacity gates a booking against the live occupancy. A group that
// fits always passes; a force booking may exceed capacity within the
// allowance and is flagged as over-capacity.
func checkCapacity(occ *models.EventOccupancy, event *models.Event, groupSize int, force bool, allowance int) (bool, error) {
	if booking.CanBook(occ.TotalBooked, groupSize, event.Capacity) {
		return false, nil
	}
	if !force {
		if event.WaitlistActive {
			return false, fmt.Errorf("event is full, %d seats remaining; the waitlist is open", occ.RemainingCapacity)
		}
		return false, fmt.Errorf("event is full, %d seats remaining", occ.RemainingCapacity)
	}
	if !booking.CanForceBook(occ.TotalBooked, groupSize, event.Capacity, allowance) {
		return false, fmt.Errorf("group of %d exceeds the overbooking allowance (%d booked, capacity %d + %d)",
			groupSize, occ.TotalBooked, event.Capacity, allowance)
	}
	return true, nil
}

// Submit creates a booking. Capacity is checked against the canonical
// counting statuses, and a force-booked group may exceed capacity only
// within the overbooking allowance.
func (s *ReservationService) Submit(ctx context.Context, req *models.CreateReservationRequest, actor string) (*models.Reservation, error) {
	event, err := s.EventRepo.Get(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	now := timeutil.Now()
	switch state := booking.WindowStateAt(event.Date, event.BookingOpensAt, event.BookingCutoff, event.IsActive, now); state {
	case booking.WindowOpen:
		// proceed
	case booking.WindowPast, booking.WindowInactive:
		return nil, fmt.Errorf("event is not bookable (%s)", state)
	default:
		return nil, fmt.Errorf("booking window is %s", state)
	}

	occ, err := s.Occupancy(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	overCapacity, err := checkCapacity(occ, event, req.NumberOfPersons, req.ForceBook, s.overbookingAllowance)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.Pricing.Quote(ctx, event, req)
	if err != nil {
		return nil, err
	}
	snapshot, err := breakdown.Snapshot()
	if err != nil {
		return nil, err
	}

	dueDate := event.Date.AddDate(0, 0, -14)
	res := &models.Reservation{
		PublicID:              uuid.NewString(),
		EventID:               event.ID,
		Status:                models.StatusPending,
		ContactPerson:         req.ContactPerson,
		CompanyName:           req.CompanyName,
		Email:                 strings.ToLower(req.Email),
		Phone:                 req.Phone,
		Address:               req.Address,
		City:                  req.City,
		PostalCode:            req.PostalCode,
		NumberOfPersons:       req.NumberOfPersons,
		Arrangement:           req.Arrangement,
		PreDrinkCount:         req.PreDrinkCount,
		AfterPartyCount:       req.AfterPartyCount,
		DietaryNotes:          req.DietaryNotes,
		CelebrationNote:       req.CelebrationNote,
		TotalPrice:            breakdown.Total,
		PricingSnapshot:       &snapshot,
		PaymentDueDate:        &dueDate,
		RequestedOverCapacity: overCapacity,
		Notes:                 req.Notes,
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		return nil, err
	}

	for _, sel := range req.Merchandise {
		item, err := s.MerchRepo.Get(ctx, sel.ItemID)
		if err != nil {
			log.Printf("[Reservation] merchandise item %d vanished during booking %d: %v", sel.ItemID, res.ID, err)
			continue
		}
		if err := s.MerchRepo.AddToReservation(ctx, res.ID, sel.ItemID, sel.Quantity, item.Price); err != nil {
			log.Printf("[Reservation] failed to add merchandise line to booking %d: %v", res.ID, err)
		}
	}

	metrics.ReservationsCreated.WithLabelValues(string(res.Status)).Inc()
	cache.InvalidateReservationCaches(ctx)

	detail := fmt.Sprintf("%s, %d persons, %s", res.ContactPerson, res.NumberOfPersons, res.Arrangement)
	if overCapacity {
		detail += " (force booked over capacity)"
	}
	s.AuditService.Record(ctx, actor, "reservation.created", "reservation", res.ID, detail)

	return res, nil
}

// CreateOption places a no-price capacity hold that expires after the
// configured hold period.
func (s *ReservationService) CreateOption(ctx context.Context, req *models.CreateOptionRequest, actor string) (*models.Reservation, error) {
	event, err := s.EventRepo.Get(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}

	occ, err := s.Occupancy(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !booking.CanBook(occ.TotalBooked, req.NumberOfPersons, event.Capacity) {
		return nil, fmt.Errorf("event is full, options cannot hold seats past capacity")
	}

	holdDays := req.HoldDays
	if holdDays <= 0 {
		holdDays = s.optionHoldDays
	}
	expiry := booking.OptionExpiry(timeutil.Now(), holdDays)

	res := &models.Reservation{
		PublicID:        uuid.NewString(),
		EventID:         event.ID,
		Status:          models.StatusOption,
		ContactPerson:   req.ContactPerson,
		Email:           strings.ToLower(req.Email),
		Phone:           req.Phone,
		NumberOfPersons: req.NumberOfPersons,
		Arrangement:     models.ArrangementBWF,
		Notes:           req.Notes,
		OptionExpiresAt: &expiry,
		OptionPlacedBy:  actor,
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		return nil, err
	}

	metrics.ReservationsCreated.WithLabelValues(string(res.Status)).Inc()
	cache.InvalidateReservationCaches(ctx)
	s.AuditService.Record(ctx, actor, "option.created", "reservation", res.ID,
		fmt.Sprintf("%d persons held until %s", res.NumberOfPersons, expiry.Format(timeutil.DateLayout)))

	return res, nil
}

func (s *ReservationService) Get(ctx context.Context, id int) (*models.Reservation, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ReservationService) List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	return s.Repo.List(ctx, filter)
}

func (s *ReservationService) Confirm(ctx context.Context, id int, actor string) error {
	return s.setStatus(ctx, id, models.StatusConfirmed, actor, "reservation.confirmed")
}

func (s *ReservationService) Reject(ctx context.Context, id int, actor string) error {
	return s.setStatus(ctx, id, models.StatusRejected, actor, "reservation.rejected")
}

func (s *ReservationService) Cancel(ctx context.Context, id int, actor string) error {
	return s.setStatus(ctx, id, models.StatusCancelled, actor, "reservation.cancelled")
}

func (s *ReservationService) setStatus(ctx context.Context, id int, status models.ReservationStatus, actor, action string) error {
	res, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reservation not found: %w", err)
	}
	if res.Status == status {
		return nil
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	cache.InvalidateReservationCaches(ctx)
	s.AuditService.RecordChanges(ctx, actor, action, "reservation", id, []models.FieldChange{
		{Field: "status", OldValue: string(res.Status), NewValue: string(status)},
	})
	return nil
}

// UpdateStatus applies an arbitrary status transition from the admin UI.
func (s *ReservationService) UpdateStatus(ctx context.Context, id int, status models.ReservationStatus, actor string) error {
	return s.setStatus(ctx, id, status, actor, "reservation.status_changed")
}

// Update applies a partial edit, recording a field-level audit diff. When
// the group composition changes the booking is repriced and the new total
// returned; any resulting overpayment surfaces as credit in the summary.
func (s *ReservationService) Update(ctx context.Context, id int, req *models.UpdateReservationRequest, actor string) (*models.Reservation, error) {
	res, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reservation not found: %w", err)
	}

	var changes []models.FieldChange
	setStr := func(field string, dst *string, v *string) {
		if v != nil && *v != *dst {
			changes = append(changes, models.FieldChange{Field: field, OldValue: *dst, NewValue: *v})
			*dst = *v
		}
	}
	setInt := func(field string, dst *int, v *int) {
		if v != nil && *v != *dst {
			changes = append(changes, models.FieldChange{Field: field, OldValue: fmt.Sprint(*dst), NewValue: fmt.Sprint(*v)})
			*dst = *v
		}
	}

	repriceNeeded := false

	setStr("contact_person", &res.ContactPerson, req.ContactPerson)
	setStr("company_name", &res.CompanyName, req.CompanyName)
	if req.Email != nil {
		lower := strings.ToLower(*req.Email)
		setStr("email", &res.Email, &lower)
	}
	setStr("phone", &res.Phone, req.Phone)
	setStr("address", &res.Address, req.Address)
	setStr("city", &res.City, req.City)
	setStr("postal_code", &res.PostalCode, req.PostalCode)
	setStr("dietary_notes", &res.DietaryNotes, req.DietaryNotes)
	setStr("celebration_note", &res.CelebrationNote, req.CelebrationNote)
	setStr("notes", &res.Notes, req.Notes)

	if req.NumberOfPersons != nil && *req.NumberOfPersons != res.NumberOfPersons {
		setInt("number_of_persons", &res.NumberOfPersons, req.NumberOfPersons)
		repriceNeeded = true
	}
	if req.Arrangement != nil && *req.Arrangement != res.Arrangement {
		changes = append(changes, models.FieldChange{Field: "arrangement", OldValue: string(res.Arrangement), NewValue: string(*req.Arrangement)})
		res.Arrangement = *req.Arrangement
		repriceNeeded = true
	}
	if req.PreDrinkCount != nil && *req.PreDrinkCount != res.PreDrinkCount {
		setInt("pre_drink_count", &res.PreDrinkCount, req.PreDrinkCount)
		repriceNeeded = true
	}
	if req.AfterPartyCount != nil && *req.AfterPartyCount != res.AfterPartyCount {
		setInt("after_party_count", &res.AfterPartyCount, req.AfterPartyCount)
		repriceNeeded = true
	}
	if req.PaymentDueDate != nil {
		old := ""
		if res.PaymentDueDate != nil {
			old = res.PaymentDueDate.Format(timeutil.DateLayout)
		}
		changes = append(changes, models.FieldChange{Field: "payment_due_date", OldValue: old, NewValue: req.PaymentDueDate.Format(timeutil.DateLayout)})
		res.PaymentDueDate = req.PaymentDueDate
	}
	if req.Tags != nil {
		changes = append(changes, models.FieldChange{Field: "tags", OldValue: strings.Join(res.Tags, ","), NewValue: strings.Join(*req.Tags, ",")})
		res.Tags = *req.Tags
	}

	if len(changes) == 0 {
		return res, nil
	}

	if repriceNeeded {
		event, err := s.EventRepo.Get(ctx, res.EventID)
		if err != nil {
			return nil, fmt.Errorf("event not found: %w", err)
		}
		breakdown, err := s.Pricing.Quote(ctx, event, &models.CreateReservationRequest{
			EventID:         res.EventID,
			NumberOfPersons: res.NumberOfPersons,
			Arrangement:     res.Arrangement,
			PreDrinkCount:   res.PreDrinkCount,
			AfterPartyCount: res.AfterPartyCount,
		})
		if err != nil {
			return nil, err
		}

		merchLines, err := s.MerchRepo.ListByReservation(ctx, res.ID)
		if err != nil {
			return nil, err
		}
		for _, line := range merchLines {
			breakdown.MerchandiseTotal += line.UnitPrice * float64(line.Quantity)
		}
		breakdown.Total += breakdown.MerchandiseTotal

		if breakdown.Total != res.TotalPrice {
			changes = append(changes, models.FieldChange{
				Field:    "total_price",
				OldValue: fmt.Sprintf("%.2f", res.TotalPrice),
				NewValue: fmt.Sprintf("%.2f", breakdown.Total),
			})
			res.TotalPrice = breakdown.Total
			snapshot, err := breakdown.Snapshot()
			if err != nil {
				return nil, err
			}
			res.PricingSnapshot = &snapshot
		}
	}

	if err := s.Repo.Update(ctx, res); err != nil {
		return nil, err
	}

	cache.InvalidateReservationCaches(ctx)
	s.AuditService.RecordChanges(ctx, actor, "reservation.updated", "reservation", id, changes)

	return res, nil
}

// Delete archives a full snapshot of the reservation and its ledger before
// removing the row, the archive is never mutated afterwards.
func (s *ReservationService) Delete(ctx context.Context, id int, reason, actor string) error {
	res, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reservation not found: %w", err)
	}

	payments, err := s.PaymentRepo.ListPaymentsByReservation(ctx, id)
	if err != nil {
		return err
	}
	refunds, err := s.PaymentRepo.ListRefundsByReservation(ctx, id)
	if err != nil {
		return err
	}
	merchLines, err := s.MerchRepo.ListByReservation(ctx, id)
	if err != nil {
		return err
	}

	snapshot, err := json.Marshal(map[string]any{
		"reservation": res,
		"payments":    payments,
		"refunds":     refunds,
		"merchandise": merchLines,
	})
	if err != nil {
		return fmt.Errorf("failed to build archive snapshot: %w", err)
	}

	if err := s.ArchiveRepo.Create(ctx, &models.ArchivedReservation{
		ReservationID: res.ID,
		EventID:       res.EventID,
		Email:         res.Email,
		Snapshot:      string(snapshot),
		Reason:        reason,
		ArchivedBy:    actor,
	}); err != nil {
		return fmt.Errorf("failed to archive reservation: %w", err)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	cache.InvalidateReservationCaches(ctx)
	s.AuditService.Record(ctx, actor, "reservation.deleted", "reservation", id, reason)
	return nil
}

// CheckIn marks the group as arrived on the night itself.
func (s *ReservationService) CheckIn(ctx context.Context, id int, actor string) error {
	res, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("reservation not found: %w", err)
	}
	if res.Status == models.StatusCheckedIn {
		return nil
	}
	if res.Status != models.StatusConfirmed {
		return fmt.Errorf("only confirmed reservations can be checked in, status is %s", res.Status)
	}

	if err := s.Repo.SetCheckedIn(ctx, id, timeutil.Now(), actor); err != nil {
		return err
	}

	cache.InvalidateReservationCaches(ctx)
	s.AuditService.Record(ctx, actor, "reservation.checked_in", "reservation", id, "")
	return nil
}

// ExpireOptions releases capacity held by options whose expiry has passed.
// Called by the background sweeper.
func (s *ReservationService) ExpireOptions(ctx context.Context) (int, error) {
	expired, err := s.Repo.ListExpiredOptions(ctx, timeutil.Now())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, res := range expired {
		if err := s.Repo.UpdateStatus(ctx, res.ID, models.StatusCancelled); err != nil {
			log.Printf("[Options] failed to expire option %d: %v", res.ID, err)
			continue
		}
		metrics.OptionsExpired.Inc()
		s.AuditService.Record(ctx, "system", "option.expired", "reservation", res.ID,
			fmt.Sprintf("%d persons released", res.NumberOfPersons))
		released++
	}

	if released > 0 {
		cache.InvalidateReservationCaches(ctx)
	}
	return released, nil
}

// StartOptionSweeper runs ExpireOptions on an interval until ctx is done.
func (s *ReservationService) StartOptionSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.ExpireOptions(ctx); err != nil {
					log.Printf("[Options] sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("[Options] released %d expired option(s)", n)
				}
			}
		}
	}()
}
