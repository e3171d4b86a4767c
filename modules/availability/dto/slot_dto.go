package dto

import (
	"github.com/Akius1/cv-review-sub000/modules/availability/entity"
	bookingEntity "github.com/Akius1/cv-review-sub000/modules/booking/entity"
)

// SlotInput is one slot in a batch-create request.
type SlotInput struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Timezone    string `json:"timezone"`
	MaxBookings int    `json:"max_bookings"`
}

type CreateSlotsRequest struct {
	Slots []SlotInput `json:"slots"`
}

// UpdateSlotRequest carries only the fields being changed.
type UpdateSlotRequest struct {
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
	MaxBookings *int    `json:"max_bookings,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// ListSlotsQuery filters the listing: an explicit date range or a named
// period. Explicit bounds win over the period.
type ListSlotsQuery struct {
	OwnerID string `query:"owner_id"`
	Period  string `query:"period"` // day|week|month|all
	From    string `query:"from"`
	To      string `query:"to"`
}

// SlotResponse is a slot enriched with its derived status.
type SlotResponse struct {
	entity.AvailabilitySlot
	Status         entity.SlotStatus      `json:"status"`
	AvailableSpots int                    `json:"available_spots"`
	BookingSummary entity.BookingSummary  `json:"booking_summary"`
	Bookings       []bookingEntity.Booking `json:"bookings,omitempty"`
}

// ListMeta is the per-category count block list endpoints return.
type ListMeta struct {
	Total             int `json:"total"`
	Available         int `json:"available"`
	FullyBooked       int `json:"fully_booked"`
	RecentlyAvailable int `json:"recently_available"`
	Expired           int `json:"expired"`
}
