package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"theater-backend/internal/models"
)

func occupancyFor(totalBooked, capacity int) *models.EventOccupancy {
	return &models.EventOccupancy{
		Capacity:          capacity,
		TotalBooked:       totalBooked,
		RemainingCapacity: capacity - totalBooked,
	}
}

func TestCheckCapacityGroupFits(t *testing.T) {
	event := &models.Event{Capacity: 100}

	over, err := checkCapacity(occupancyFor(90, 100), event, 10, false, 20)
	if err != nil {
		t.Fatalf("checkCapacity: %v", err)
	}
	if over {
		t.Error("group that exactly fills the event must not be flagged over-capacity")
	}
}

func TestCheckCapacityFullEventRejects(t *testing.T) {
	event := &models.Event{Capacity: 100}

	_, err := checkCapacity(occupancyFor(100, 100), event, 2, false, 20)
	if err == nil || !strings.Contains(err.Error(), "event is full") {
		t.Errorf("err = %v, want full-event rejection", err)
	}
}

func TestCheckCapacityFullEventMentionsOpenWaitlist(t *testing.T) {
	event := &models.Event{Capacity: 100, WaitlistActive: true}

	_, err := checkCapacity(occupancyFor(100, 100), event, 2, false, 20)
	if err == nil || !strings.Contains(err.Error(), "waitlist is open") {
		t.Errorf("err = %v, want rejection pointing at the waitlist", err)
	}
}

// A waitlist conversion re-runs the same gate as a fresh booking: seats
// must have been freed since the entry joined.
func TestCheckCapacityRecheckAfterSeatsFreed(t *testing.T) {
	event := &models.Event{Capacity: 100, WaitlistActive: true}

	// Still full, conversion must fail.
	if _, err := checkCapacity(occupancyFor(100, 100), event, 4, false, 20); err == nil {
		t.Fatal("conversion into a full event must be rejected")
	}

	// A cancellation freed six seats, the same group now fits.
	over, err := checkCapacity(occupancyFor(94, 100), event, 4, false, 20)
	if err != nil {
		t.Fatalf("checkCapacity after seats freed: %v", err)
	}
	if over {
		t.Error("group within capacity must not be flagged over-capacity")
	}
}

func TestCheckCapacityForceWithinAllowance(t *testing.T) {
	event := &models.Event{Capacity: 100}

	over, err := checkCapacity(occupancyFor(98, 100), event, 10, true, 20)
	if err != nil {
		t.Fatalf("checkCapacity: %v", err)
	}
	if !over {
		t.Error("force booking past capacity must be flagged over-capacity")
	}
}

// The sweeper owns its goroutine, the caller must get control back at once.
func TestStartOptionSweeperDoesNotBlockCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		(&ReservationService{}).StartOptionSweeper(ctx, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StartOptionSweeper blocked the caller")
	}
}

func TestCheckCapacityForceBeyondAllowance(t *testing.T) {
	event := &models.Event{Capacity: 100}

	_, err := checkCapacity(occupancyFor(115, 100), event, 10, true, 20)
	if err == nil || !strings.Contains(err.Error(), "overbooking allowance") {
		t.Errorf("err = %v, want allowance rejection", err)
	}
}
