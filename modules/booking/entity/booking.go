package entity

import (
	"fmt"
	"time"

	coreEntity "github.com/Akius1/cv-review-sub000/core/entity"
	"github.com/Akius1/cv-review-sub000/core/errors"

	"github.com/google/uuid"
)

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	StatusScheduled   BookingStatus = "scheduled"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Terminal reports whether no further transition is allowed. rescheduled
// is terminal and carries no link to a successor booking.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRescheduled
}

// Booking is a counterpart's reservation against an availability slot.
// The meeting window is a denormalized copy of the slot's window at
// booking time.
type Booking struct {
	SlotID             uuid.UUID     `db:"slot_id" json:"slot_id"`
	OwnerID            uuid.UUID     `db:"owner_id" json:"owner_id"`
	CounterpartID      uuid.UUID     `db:"counterpart_id" json:"counterpart_id"`
	MeetingDate        string        `db:"meeting_date" json:"meeting_date"`
	StartTime          string        `db:"start_time" json:"start_time"`
	EndTime            string        `db:"end_time" json:"end_time"`
	Status             BookingStatus `db:"status" json:"status"`
	MeetingType        string        `db:"meeting_type" json:"meeting_type"`
	MeetingLink        string        `db:"meeting_link" json:"meeting_link"`
	CalendarEventID    *string       `db:"calendar_event_id" json:"calendar_event_id,omitempty"`
	Title              string        `db:"title" json:"title"`
	Description        *string       `db:"description" json:"description,omitempty"`
	CancelledAt        *time.Time    `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy        *uuid.UUID    `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason *string       `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	coreEntity.BaseEntity
}

// CanCancel guards the scheduled -> cancelled transition.
func CanCancel(current BookingStatus) error {
	if current != StatusScheduled {
		return errors.NewAppError(errors.ErrConflict,
			fmt.Sprintf("booking cannot be cancelled: current status is %q", current), nil)
	}
	return nil
}

// CanComplete guards the scheduled -> completed transition.
func CanComplete(current BookingStatus) error {
	if current != StatusScheduled {
		return errors.NewAppError(errors.ErrConflict,
			fmt.Sprintf("booking cannot be completed: current status is %q", current), nil)
	}
	return nil
}

// Cancel applies the cancellation transition in place. Never touches the
// slot row; capacity recovery is the status engine excluding cancelled
// bookings from the active count.
func (b *Booking) Cancel(actorID uuid.UUID, reason *string, now time.Time) error {
	if err := CanCancel(b.Status); err != nil {
		return err
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = &actorID
	b.CancellationReason = reason
	return nil
}

// Complete applies the completion transition in place.
func (b *Booking) Complete(now time.Time) error {
	if err := CanComplete(b.Status); err != nil {
		return err
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now
	return nil
}

func InitialStatus() BookingStatus {
	return StatusScheduled
}
