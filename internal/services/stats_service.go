package services

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"theater-backend/internal/cache"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

// DashboardStats is the aggregate block on the admin landing page.
type DashboardStats struct {
	UpcomingEvents    int     `json:"upcoming_events"`
	PendingCount      int     `json:"pending_count"`
	ConfirmedCount    int     `json:"confirmed_count"`
	OptionCount       int     `json:"option_count"`
	RequestCount      int     `json:"request_count"`
	PersonsThisMonth  int     `json:"persons_this_month"`
	RevenueThisMonth  float64 `json:"revenue_this_month"`
	RefundedThisMonth float64 `json:"refunded_this_month"`
	NetThisMonth      float64 `json:"net_this_month"`
}

type StatsService struct {
	ReservationRepo *repositories.ReservationRepository
	EventRepo       *repositories.EventRepository
	PaymentRepo     *repositories.PaymentRepository
}

func NewStatsService(reservationRepo *repositories.ReservationRepository, eventRepo *repositories.EventRepository, paymentRepo *repositories.PaymentRepository) *StatsService {
	return &StatsService{ReservationRepo: reservationRepo, EventRepo: eventRepo, PaymentRepo: paymentRepo}
}

// Dashboard fans the independent queries out concurrently and caches the
// combined block briefly.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.DashboardStatsKey); ok {
		stats := &DashboardStats{}
		if err := json.Unmarshal(data, stats); err == nil {
			return stats, nil
		}
	}

	now := timeutil.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.Venue)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := s.EventRepo.ListUpcoming(gctx, now)
		if err != nil {
			return err
		}
		stats.UpcomingEvents = len(events)
		return nil
	})

	g.Go(func() error {
		reservations, err := s.ReservationRepo.List(gctx, models.ReservationFilter{})
		if err != nil {
			return err
		}
		for _, r := range reservations {
			switch r.Status {
			case models.StatusPending:
				stats.PendingCount++
			case models.StatusConfirmed:
				stats.ConfirmedCount++
			case models.StatusOption:
				if r.IsActiveOption(now) {
					stats.OptionCount++
				}
			case models.StatusRequest:
				stats.RequestCount++
			}
			if !r.EventDate.Before(monthStart) && r.EventDate.Before(monthEnd) &&
				(r.Status == models.StatusConfirmed || r.Status == models.StatusCheckedIn) {
				stats.PersonsThisMonth += r.NumberOfPersons
			}
		}
		return nil
	})

	g.Go(func() error {
		paid, refunded, err := s.PaymentRepo.RevenueBetween(gctx, monthStart, monthEnd)
		if err != nil {
			return err
		}
		stats.RevenueThisMonth = paid
		stats.RefundedThisMonth = refunded
		stats.NetThisMonth = paid - refunded
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.DashboardStatsKey, data, 2*time.Minute)
	}
	return stats, nil
}
