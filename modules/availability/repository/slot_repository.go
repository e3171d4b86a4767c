package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/modules/availability/entity"
	bookingEntity "github.com/Akius1/cv-review-sub000/modules/booking/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SlotWithBookings pairs a slot with all its bookings (every status),
// the read shape the status engine consumes.
type SlotWithBookings struct {
	Slot     entity.AvailabilitySlot
	Bookings []bookingEntity.Booking
}

// SlotRepository handles availability_slots database operations
type SlotRepository struct {
	DB database.Database
}

func NewSlotRepository(db database.Database) *SlotRepository {
	return &SlotRepository{DB: db}
}

// SlotRepositoryInterface defines the repository contract
type SlotRepositoryInterface interface {
	CreateSlots(ctx context.Context, slots []*entity.AvailabilitySlot) error
	GetOwnedByID(ctx context.Context, slotID, ownerID uuid.UUID) (*entity.AvailabilitySlot, error)
	ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]entity.AvailabilitySlot, error)
	List(ctx context.Context, ownerID *uuid.UUID, fromDate, toDate string) ([]SlotWithBookings, error)
	GetOpenSlotWithBookings(ctx context.Context, slotID, ownerID uuid.UUID) (*SlotWithBookings, error)
	CountScheduled(ctx context.Context, slotID uuid.UUID) (int, error)
	UpdateSlot(ctx context.Context, slot *entity.AvailabilitySlot) error
	DeleteSlot(ctx context.Context, slotID, ownerID uuid.UUID) error
}

const slotColumns = `id, owner_id, date, start_time, end_time, timezone, max_bookings, is_available, created_at, updated_at`

const bookingColumns = `id, slot_id, owner_id, counterpart_id, meeting_date, start_time, end_time, status,
       meeting_type, meeting_link, calendar_event_id, title, description,
       cancelled_at, cancelled_by, cancellation_reason, created_at, updated_at`

// CreateSlots inserts a validated batch atomically. Validation happens
// in the service; any insert failure rolls back the whole batch.
func (r *SlotRepository) CreateSlots(ctx context.Context, slots []*entity.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (id, owner_id, date, start_time, end_time, timezone, max_bookings, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		for _, slot := range slots {
			err := tx.QueryRowContext(ctx, query,
				slot.ID, slot.OwnerID, slot.Date, slot.StartTime, slot.EndTime,
				slot.Timezone, slot.MaxBookings, slot.IsAvailable,
			).Scan(&slot.CreatedAt, &slot.UpdatedAt)
			if err != nil {
				logger.Error("SlotRepository:CreateSlots", err)
				return err
			}
		}
		return nil
	})
}

func (r *SlotRepository) GetOwnedByID(ctx context.Context, slotID, ownerID uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1 AND owner_id = $2`

	var slot entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &slot, query, slotID, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetOwnedByID", err)
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]entity.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE owner_id = $1 AND date = $2 ORDER BY start_time`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, ownerID, date)
	if err != nil {
		logger.Error("SlotRepository:ListByOwnerAndDate", err)
		return nil, err
	}
	return slots, nil
}

// List returns slots (all owners when ownerID is nil) within the
// optional date range, each paired with its bookings. Reads go directly
// to the authoritative store; there is deliberately no cache in front.
func (r *SlotRepository) List(ctx context.Context, ownerID *uuid.UUID, fromDate, toDate string) ([]SlotWithBookings, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE 1=1`
	args := []any{}

	if ownerID != nil {
		args = append(args, *ownerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if fromDate != "" {
		args = append(args, fromDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date, start_time"

	var slots []entity.AvailabilitySlot
	if err := r.DB.SelectContext(ctx, &slots, query, args...); err != nil {
		logger.Error("SlotRepository:List:Slots", err)
		return nil, err
	}
	if len(slots) == 0 {
		return []SlotWithBookings{}, nil
	}

	ids := make([]uuid.UUID, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}

	bookingsBySlot, err := r.bookingsForSlots(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]SlotWithBookings, len(slots))
	for i, s := range slots {
		out[i] = SlotWithBookings{
			Slot:     s,
			Bookings: bookingsBySlot[s.ID],
		}
	}
	return out, nil
}

// GetOpenSlotWithBookings loads one slot scoped to (id, owner,
// is_available) together with its current bookings. Returns nil when
// absent or mismatched.
func (r *SlotRepository) GetOpenSlotWithBookings(ctx context.Context, slotID, ownerID uuid.UUID) (*SlotWithBookings, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1 AND owner_id = $2 AND is_available = true`

	var slot entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &slot, query, slotID, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetOpenSlotWithBookings", err)
		return nil, err
	}

	bookingsBySlot, err := r.bookingsForSlots(ctx, []uuid.UUID{slot.ID})
	if err != nil {
		return nil, err
	}

	return &SlotWithBookings{Slot: slot, Bookings: bookingsBySlot[slot.ID]}, nil
}

func (r *SlotRepository) CountScheduled(ctx context.Context, slotID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE slot_id = $1 AND status = 'scheduled'`
	if err := r.DB.GetContext(ctx, &count, query, slotID); err != nil {
		logger.Error("SlotRepository:CountScheduled", err)
		return 0, err
	}
	return count, nil
}

func (r *SlotRepository) UpdateSlot(ctx context.Context, slot *entity.AvailabilitySlot) error {
	query := `
		UPDATE availability_slots
		SET date = $3, start_time = $4, end_time = $5, timezone = $6,
		    max_bookings = $7, is_available = $8, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
	`
	err := r.DB.ExecContext(ctx, query,
		slot.ID, slot.OwnerID, slot.Date, slot.StartTime, slot.EndTime,
		slot.Timezone, slot.MaxBookings, slot.IsAvailable)
	if err != nil {
		logger.Error("SlotRepository:UpdateSlot", err)
		return err
	}
	return nil
}

func (r *SlotRepository) DeleteSlot(ctx context.Context, slotID, ownerID uuid.UUID) error {
	query := `DELETE FROM availability_slots WHERE id = $1 AND owner_id = $2`
	if err := r.DB.ExecContext(ctx, query, slotID, ownerID); err != nil {
		logger.Error("SlotRepository:DeleteSlot", err)
		return err
	}
	return nil
}

func (r *SlotRepository) bookingsForSlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]bookingEntity.Booking, error) {
	query, args, err := sqlx.In(`SELECT `+bookingColumns+` FROM bookings WHERE slot_id IN (?) ORDER BY created_at`, slotIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.SQLx().Rebind(query)

	var bookings []bookingEntity.Booking
	if err := r.DB.SelectContext(ctx, &bookings, query, args...); err != nil {
		logger.Error("SlotRepository:bookingsForSlots", err)
		return nil, err
	}

	out := make(map[uuid.UUID][]bookingEntity.Booking, len(slotIDs))
	for _, b := range bookings {
		out[b.SlotID] = append(out[b.SlotID], b)
	}
	return out, nil
}
