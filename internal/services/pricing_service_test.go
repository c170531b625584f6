package services

import (
	"encoding/json"
	"strings"
	"testing"

	"theater-backend/internal/models"
)

func testPriceTable() PriceTable {
	return PriceTable{
		models.EventWeekend: {
			models.ArrangementBWF:  82.50,
			models.ArrangementBWFM: 105.00,
		},
		models.EventMatinee: {
			models.ArrangementBWF: 64.00,
		},
	}
}

func TestBuildBreakdownPersonsTotal(t *testing.T) {
	req := &models.CreateReservationRequest{
		Arrangement:     models.ArrangementBWFM,
		NumberOfPersons: 4,
	}

	b, err := buildBreakdown(testPriceTable(), AddOnPrices{}, models.EventWeekend, req, 0)
	if err != nil {
		t.Fatalf("buildBreakdown: %v", err)
	}
	if b.PersonPrice != 105.00 {
		t.Errorf("PersonPrice = %v, want 105.00", b.PersonPrice)
	}
	if b.PersonsTotal != 420.00 {
		t.Errorf("PersonsTotal = %v, want 420.00", b.PersonsTotal)
	}
	if b.Total != 420.00 {
		t.Errorf("Total = %v, want 420.00", b.Total)
	}
}

func TestBuildBreakdownPriceVariesByEventType(t *testing.T) {
	req := &models.CreateReservationRequest{
		Arrangement:     models.ArrangementBWF,
		NumberOfPersons: 2,
	}

	weekend, err := buildBreakdown(testPriceTable(), AddOnPrices{}, models.EventWeekend, req, 0)
	if err != nil {
		t.Fatalf("weekend quote: %v", err)
	}
	matinee, err := buildBreakdown(testPriceTable(), AddOnPrices{}, models.EventMatinee, req, 0)
	if err != nil {
		t.Fatalf("matinee quote: %v", err)
	}

	if weekend.PersonPrice != 82.50 || matinee.PersonPrice != 64.00 {
		t.Errorf("person prices = %v / %v, want 82.50 / 64.00", weekend.PersonPrice, matinee.PersonPrice)
	}
}

func TestBuildBreakdownAddOnsAndMerchandise(t *testing.T) {
	req := &models.CreateReservationRequest{
		Arrangement:     models.ArrangementBWF,
		NumberOfPersons: 2,
		PreDrinkCount:   2,
		AfterPartyCount: 1,
	}
	addOns := AddOnPrices{PreDrink: 12.50, AfterParty: 17.50}

	b, err := buildBreakdown(testPriceTable(), addOns, models.EventWeekend, req, 45.00)
	if err != nil {
		t.Fatalf("buildBreakdown: %v", err)
	}

	if b.PreDrinkTotal != 25.00 {
		t.Errorf("PreDrinkTotal = %v, want 25.00", b.PreDrinkTotal)
	}
	if b.AfterPartyTotal != 17.50 {
		t.Errorf("AfterPartyTotal = %v, want 17.50", b.AfterPartyTotal)
	}
	if b.MerchandiseTotal != 45.00 {
		t.Errorf("MerchandiseTotal = %v, want 45.00", b.MerchandiseTotal)
	}
	want := 2*82.50 + 25.00 + 17.50 + 45.00
	if b.Total != want {
		t.Errorf("Total = %v, want %v", b.Total, want)
	}
}

func TestBuildBreakdownUnknownEventType(t *testing.T) {
	req := &models.CreateReservationRequest{Arrangement: models.ArrangementBWF, NumberOfPersons: 2}

	_, err := buildBreakdown(testPriceTable(), AddOnPrices{}, models.EventType("gala"), req, 0)
	if err == nil || !strings.Contains(err.Error(), "no pricing for event type") {
		t.Errorf("err = %v, want missing event type error", err)
	}
}

func TestBuildBreakdownUnknownArrangement(t *testing.T) {
	req := &models.CreateReservationRequest{Arrangement: models.ArrangementBWFM, NumberOfPersons: 2}

	_, err := buildBreakdown(testPriceTable(), AddOnPrices{}, models.EventMatinee, req, 0)
	if err == nil || !strings.Contains(err.Error(), "no pricing for arrangement") {
		t.Errorf("err = %v, want missing arrangement error", err)
	}
}

func TestPriceBreakdownSnapshot(t *testing.T) {
	b := &PriceBreakdown{PersonPrice: 82.50, PersonsTotal: 165.00, Total: 165.00}

	raw, err := b.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	var restored PriceBreakdown
	if err := json.Unmarshal([]byte(raw), &restored); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if restored != *b {
		t.Errorf("restored = %+v, want %+v", restored, *b)
	}
}
