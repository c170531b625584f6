package services

import (
	"context"
	"encoding/json"
	"fmt"

	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

// PriceTable maps event type to per-arrangement person price.
type PriceTable map[models.EventType]map[models.Arrangement]float64

// AddOnPrices are the per-person prices for the optional extras.
type AddOnPrices struct {
	PreDrink   float64 `json:"pre_drink"`
	AfterParty float64 `json:"after_party"`
}

// PriceBreakdown is stored on the reservation as the pricing snapshot, so
// later price changes never alter the agreed total.
type PriceBreakdown struct {
	PersonPrice      float64 `json:"person_price"`
	PersonsTotal     float64 `json:"persons_total"`
	PreDrinkTotal    float64 `json:"pre_drink_total"`
	AfterPartyTotal  float64 `json:"after_party_total"`
	MerchandiseTotal float64 `json:"merchandise_total"`
	Total            float64 `json:"total"`
}

type PricingService struct {
	SettingRepo *repositories.SystemSettingRepository
	MerchRepo   *repositories.MerchandiseRepository
}

func NewPricingService(settingRepo *repositories.SystemSettingRepository, merchRepo *repositories.MerchandiseRepository) *PricingService {
	return &PricingService{SettingRepo: settingRepo, MerchRepo: merchRepo}
}

func (s *PricingService) loadPriceTable(ctx context.Context) (PriceTable, error) {
	setting, err := s.SettingRepo.Get(ctx, models.SettingKeyPricing)
	if err != nil {
		return nil, fmt.Errorf("pricing not configured: %w", err)
	}

	var table PriceTable
	if err := json.Unmarshal([]byte(setting.SettingValue), &table); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	return table, nil
}

func (s *PricingService) loadAddOnPrices(ctx context.Context) (AddOnPrices, error) {
	setting, err := s.SettingRepo.Get(ctx, models.SettingKeyAddOns)
	if err != nil {
		// Add-ons are optional, missing config means they are free-disabled
		return AddOnPrices{}, nil
	}

	var prices AddOnPrices
	if err := json.Unmarshal([]byte(setting.SettingValue), &prices); err != nil {
		return AddOnPrices{}, fmt.Errorf("invalid addon config: %w", err)
	}
	return prices, nil
}

// Quote prices a booking request against the current configuration and the
// merchandise catalog.
func (s *PricingService) Quote(ctx context.Context, event *models.Event, req *models.CreateReservationRequest) (*PriceBreakdown, error) {
	table, err := s.loadPriceTable(ctx)
	if err != nil {
		return nil, err
	}

	addOns, err := s.loadAddOnPrices(ctx)
	if err != nil {
		return nil, err
	}

	var merchTotal float64
	for _, sel := range req.Merchandise {
		item, err := s.MerchRepo.Get(ctx, sel.ItemID)
		if err != nil {
			return nil, fmt.Errorf("merchandise item %d not found: %w", sel.ItemID, err)
		}
		if !item.IsActive {
			return nil, fmt.Errorf("merchandise item %q is not available", item.Name)
		}
		merchTotal += item.Price * float64(sel.Quantity)
	}

	return buildBreakdown(table, addOns, event.Type, req, merchTotal)
}

// buildBreakdown computes the pricing snapshot from loaded configuration.
func buildBreakdown(table PriceTable, addOns AddOnPrices, eventType models.EventType, req *models.CreateReservationRequest, merchTotal float64) (*PriceBreakdown, error) {
	byArrangement, ok := table[eventType]
	if !ok {
		return nil, fmt.Errorf("no pricing for event type %q", eventType)
	}
	personPrice, ok := byArrangement[req.Arrangement]
	if !ok {
		return nil, fmt.Errorf("no pricing for arrangement %q on event type %q", req.Arrangement, eventType)
	}

	breakdown := &PriceBreakdown{
		PersonPrice:      personPrice,
		PersonsTotal:     personPrice * float64(req.NumberOfPersons),
		PreDrinkTotal:    addOns.PreDrink * float64(req.PreDrinkCount),
		AfterPartyTotal:  addOns.AfterParty * float64(req.AfterPartyCount),
		MerchandiseTotal: merchTotal,
	}
	breakdown.Total = breakdown.PersonsTotal + breakdown.PreDrinkTotal + breakdown.AfterPartyTotal + breakdown.MerchandiseTotal
	return breakdown, nil
}

// Snapshot serializes a breakdown for storage on the reservation.
func (b *PriceBreakdown) Snapshot() (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
