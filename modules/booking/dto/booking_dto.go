package dto

import (
	"github.com/Akius1/cv-review-sub000/modules/booking/entity"

	"github.com/google/uuid"
)

type BookRequest struct {
	SlotID      uuid.UUID `json:"slot_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	OwnerEmail  string    `json:"owner_email"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MeetingType string    `json:"meeting_type"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type BookingResponse struct {
	entity.Booking
	// Method records how the meeting link was provisioned on creation.
	Method string `json:"provision_method,omitempty"`
}

type ListBookingsQuery struct {
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
}
