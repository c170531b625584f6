package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"theater-backend/internal/cache"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

// CustomerService projects reservations into customer profiles. There is no
// customers table, the email address is the identity.
type CustomerService struct {
	ReservationRepo *repositories.ReservationRepository
}

func NewCustomerService(reservationRepo *repositories.ReservationRepository) *CustomerService {
	return &CustomerService{ReservationRepo: reservationRepo}
}

// Profiles aggregates all reservations by email, newest booker first.
func (s *CustomerService) Profiles(ctx context.Context) ([]*models.CustomerProfile, error) {
	if data, ok := cache.GetCached(ctx, cache.CustomerProfilesKey); ok {
		var profiles []*models.CustomerProfile
		if err := json.Unmarshal(data, &profiles); err == nil {
			return profiles, nil
		}
	}

	reservations, err := s.ReservationRepo.List(ctx, models.ReservationFilter{})
	if err != nil {
		return nil, err
	}

	byEmail := make(map[string]*models.CustomerProfile)
	arrangements := make(map[string]map[models.Arrangement]int)
	persons := make(map[string]int)

	for _, r := range reservations {
		p, ok := byEmail[r.Email]
		if !ok {
			p = &models.CustomerProfile{
				Email:         r.Email,
				ContactPerson: r.ContactPerson,
				CompanyName:   r.CompanyName,
				Phone:         r.Phone,
				FirstBooking:  r.CreatedAt,
				LastBooking:   r.CreatedAt,
			}
			byEmail[r.Email] = p
			arrangements[r.Email] = make(map[models.Arrangement]int)
		}

		p.TotalBookings++
		p.TotalSpent += r.TotalPrice
		persons[r.Email] += r.NumberOfPersons
		arrangements[r.Email][r.Arrangement]++

		if r.CreatedAt.Before(p.FirstBooking) {
			p.FirstBooking = r.CreatedAt
		}
		if r.CreatedAt.After(p.LastBooking) {
			p.LastBooking = r.CreatedAt
			p.ContactPerson = r.ContactPerson
			if r.CompanyName != "" {
				p.CompanyName = r.CompanyName
			}
			if r.Phone != "" {
				p.Phone = r.Phone
			}
		}
	}

	profiles := make([]*models.CustomerProfile, 0, len(byEmail))
	for email, p := range byEmail {
		p.AverageGroupSize = float64(persons[email]) / float64(p.TotalBookings)

		best, bestCount := models.Arrangement(""), 0
		for arr, count := range arrangements[email] {
			if count > bestCount {
				best, bestCount = arr, count
			}
		}
		p.PreferredArrangement = best
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].LastBooking.After(profiles[j].LastBooking)
	})

	if data, err := json.Marshal(profiles); err == nil {
		cache.SetCached(ctx, cache.CustomerProfilesKey, data, 10*time.Minute)
	}
	return profiles, nil
}

// Detail returns one profile with the full booking history.
func (s *CustomerService) Detail(ctx context.Context, email string) (*models.CustomerDetail, error) {
	reservations, err := s.ReservationRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, nil
	}

	detail := &models.CustomerDetail{Reservations: reservations}
	detail.Email = email

	totalPersons := 0
	arrangements := make(map[models.Arrangement]int)
	detail.FirstBooking = reservations[0].CreatedAt
	detail.LastBooking = reservations[0].CreatedAt

	for _, r := range reservations {
		detail.TotalBookings++
		detail.TotalSpent += r.TotalPrice
		totalPersons += r.NumberOfPersons
		arrangements[r.Arrangement]++

		if r.CreatedAt.Before(detail.FirstBooking) {
			detail.FirstBooking = r.CreatedAt
		}
		if !r.CreatedAt.Before(detail.LastBooking) {
			detail.LastBooking = r.CreatedAt
			detail.ContactPerson = r.ContactPerson
			detail.CompanyName = r.CompanyName
			detail.Phone = r.Phone
		}
	}

	detail.AverageGroupSize = float64(totalPersons) / float64(detail.TotalBookings)

	best, bestCount := models.Arrangement(""), 0
	for arr, count := range arrangements {
		if count > bestCount {
			best, bestCount = arr, count
		}
	}
	detail.PreferredArrangement = best

	return detail, nil
}
