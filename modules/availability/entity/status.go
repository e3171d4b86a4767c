package entity

// SlotStatus is derived on every read from the slot, its bookings and
// the caller's clock. It is never persisted.
type SlotStatus string

const (
	SlotStatusExpired           SlotStatus = "expired"
	SlotStatusFullyBooked       SlotStatus = "fully_booked"
	SlotStatusRecentlyAvailable SlotStatus = "recently_available"
	SlotStatusAvailable         SlotStatus = "available"
)

// BookingSummary aggregates a slot's bookings by status for
// observability.
type BookingSummary struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}
