package service

import (
	"time"

	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/modules/availability/entity"
	bookingEntity "github.com/Akius1/cv-review-sub000/modules/booking/entity"
)

// DerivedAvailability is the status engine's output for one slot.
type DerivedAvailability struct {
	Status         entity.SlotStatus
	AvailableSpots int
	Summary        entity.BookingSummary
}

// DeriveAvailability computes a slot's bookability from the slot, its
// bookings and now. Pure; recomputed on every read so freed capacity
// shows up immediately after a cancellation.
//
// Precedence (first match wins):
// expired -> fully_booked -> recently_available -> available.
func DeriveAvailability(slot *entity.AvailabilitySlot, bookings []bookingEntity.Booking, now time.Time) DerivedAvailability {
	var summary entity.BookingSummary
	recentlyCancelled := false

	localNow := now.In(slot.Location())

	for i := range bookings {
		b := &bookings[i]
		summary.Total++
		switch b.Status {
		case bookingEntity.StatusScheduled:
			summary.Scheduled++
		case bookingEntity.StatusCancelled:
			summary.Cancelled++
			if b.CancelledAt != nil {
				since := now.Sub(*b.CancelledAt)
				if since >= 0 && since <= constants.RecentlyAvailableWindow {
					recentlyCancelled = true
				}
			}
		case bookingEntity.StatusCompleted:
			summary.Completed++
		}
	}

	spots := slot.MaxBookings - summary.Scheduled
	if spots < 0 {
		spots = 0
	}

	out := DerivedAvailability{
		AvailableSpots: spots,
		Summary:        summary,
	}

	switch {
	case isExpired(slot, localNow):
		out.Status = entity.SlotStatusExpired
	case spots <= 0:
		out.Status = entity.SlotStatusFullyBooked
	case recentlyCancelled:
		out.Status = entity.SlotStatusRecentlyAvailable
	default:
		out.Status = entity.SlotStatusAvailable
	}
	return out
}

// isExpired: past date, or today with a start at or before now. String
// comparison is exact for the fixed layouts.
func isExpired(slot *entity.AvailabilitySlot, localNow time.Time) bool {
	today := localNow.Format(constants.DateLayout)
	if slot.Date < today {
		return true
	}
	return slot.Date == today && slot.StartTime <= localNow.Format(constants.TimeLayout)
}
