package entity

import (
	"testing"
	"time"

	"github.com/Akius1/cv-review-sub000/core/errors"

	"github.com/google/uuid"
)

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusScheduled, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusRescheduled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	actor := uuid.New()
	reason := "schedule conflict"

	b := &Booking{Status: StatusScheduled}
	if err := b.Cancel(actor, &reason, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusCancelled {
		t.Errorf("status = %q, want %q", b.Status, StatusCancelled)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Errorf("cancelled_at = %v, want %v", b.CancelledAt, now)
	}
	if b.CancelledBy == nil || *b.CancelledBy != actor {
		t.Errorf("cancelled_by = %v, want %v", b.CancelledBy, actor)
	}
	if b.CancellationReason == nil || *b.CancellationReason != reason {
		t.Errorf("cancellation_reason = %v, want %q", b.CancellationReason, reason)
	}
}

func TestCancelFromTerminalStates(t *testing.T) {
	now := time.Now()
	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled, StatusRescheduled} {
		b := &Booking{Status: status}
		err := b.Cancel(uuid.New(), nil, now)
		if err == nil {
			t.Fatalf("Cancel from %q succeeded, want conflict", status)
		}
		appErr, ok := err.(*errors.AppError)
		if !ok || appErr.Code != errors.ErrConflict {
			t.Errorf("Cancel from %q returned %v, want conflict AppError", status, err)
		}
		if b.Status != status {
			t.Errorf("status mutated to %q on failed cancel", b.Status)
		}
	}
}

func TestComplete(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	b := &Booking{Status: StatusScheduled}
	if err := b.Complete(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", b.Status, StatusCompleted)
	}

	if err := b.Complete(now); err == nil {
		t.Error("second Complete succeeded, want conflict")
	}
}

func TestCompleteFromCancelled(t *testing.T) {
	b := &Booking{Status: StatusCancelled}
	err := b.Complete(time.Now())
	if err == nil {
		t.Fatal("Complete from cancelled succeeded, want conflict")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrConflict {
		t.Errorf("got %v, want conflict AppError", err)
	}
}
