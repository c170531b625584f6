package services

import (
	"context"
	"errors"
	"testing"
)

// The batch must keep going past a failing item and report every failure,
// never abort early.
func TestBulkApplyContinuesPastFailures(t *testing.T) {
	s := &BulkService{}

	var attempted []int
	result := s.apply(context.Background(), []int{1, 2, 3}, func(ctx context.Context, id int) error {
		attempted = append(attempted, id)
		if id == 2 {
			return errors.New("backend unavailable")
		}
		return nil
	})

	if len(attempted) != 3 {
		t.Fatalf("attempted %d items, want all 3", len(attempted))
	}
	if result.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", result.Succeeded)
	}
	if len(result.Failures) != 1 || result.Failures[0].ID != 2 {
		t.Errorf("Failures = %+v, want single failure for id 2", result.Failures)
	}
	if result.Requested != 3 {
		t.Errorf("Requested = %d, want 3", result.Requested)
	}
}

func TestBulkApplyAllSucceed(t *testing.T) {
	s := &BulkService{}

	result := s.apply(context.Background(), []int{10, 20}, func(ctx context.Context, id int) error {
		return nil
	})

	if result.Succeeded != 2 || len(result.Failures) != 0 {
		t.Errorf("result = %+v, want 2 successes and no failures", result)
	}
	if got := result.Summary(); got != "2 of 2 succeeded" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestBulkApplyEmpty(t *testing.T) {
	s := &BulkService{}

	result := s.apply(context.Background(), nil, func(ctx context.Context, id int) error {
		t.Fatal("action called for empty batch")
		return nil
	})

	if result.Requested != 0 || result.Succeeded != 0 || len(result.Failures) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestBulkResultSummaryWithFailures(t *testing.T) {
	r := BulkResult{Requested: 3, Succeeded: 2, Failures: []BulkFailure{{ID: 2, Error: "x"}}}
	if got := r.Summary(); got != "2 of 3 succeeded, 1 failed" {
		t.Errorf("Summary() = %q", got)
	}
}
