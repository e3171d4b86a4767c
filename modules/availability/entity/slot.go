package entity

import (
	"time"

	"github.com/Akius1/cv-review-sub000/core/constants"
	coreEntity "github.com/Akius1/cv-review-sub000/core/entity"

	"github.com/google/uuid"
)

// AvailabilitySlot is an owner-defined bookable window. Date and times
// are stored as text in the slot's timezone (constants.DateLayout /
// constants.TimeLayout).
type AvailabilitySlot struct {
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Date        string    `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Timezone    string    `db:"timezone" json:"timezone"`
	MaxBookings int       `db:"max_bookings" json:"max_bookings"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	coreEntity.BaseEntity
}

// Overlaps reports whether [start,end) intersects this slot's window.
// Adjacent windows do not overlap. Lexicographic comparison is exact for
// the fixed HH:MM layout.
func (s *AvailabilitySlot) Overlaps(start, end string) bool {
	return start < s.EndTime && end > s.StartTime
}

// Location resolves the slot's timezone, falling back to UTC when the
// stored name is unknown.
func (s *AvailabilitySlot) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StartAt returns the slot's start as a wall-clock instant in its
// timezone.
func (s *AvailabilitySlot) StartAt() (time.Time, error) {
	return time.ParseInLocation(
		constants.DateLayout+" "+constants.TimeLayout,
		s.Date+" "+s.StartTime,
		s.Location(),
	)
}
