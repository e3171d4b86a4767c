package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/modules/booking/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Storage-level guard violations. The in-process checks in the service
// are advisory; these are the errors the database raises when two
// writers race past them.
var (
	ErrSlotFull         = stderrors.New("slot capacity exhausted")
	ErrDuplicateBooking = stderrors.New("counterpart already holds a scheduled booking for this slot")
)

type BookingRepository struct {
	DB database.Database
}

func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{DB: db}
}

type BookingRepositoryInterface interface {
	CreateScheduled(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	ListByCounterpart(ctx context.Context, counterpartID uuid.UUID, status, fromDate, toDate string) ([]entity.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status, fromDate, toDate string) ([]entity.Booking, error)
}

const bookingColumns = `id, slot_id, owner_id, counterpart_id, meeting_date, start_time, end_time, status,
       meeting_type, meeting_link, calendar_event_id, title, description,
       cancelled_at, cancelled_by, cancellation_reason, created_at, updated_at`

// CreateScheduled inserts a scheduled booking under the slot's capacity
// guard. The slot row is locked for the duration of the transaction so
// concurrent inserts serialize on the capacity count; the partial unique
// index on (slot_id, counterpart_id) rejects duplicate active bookings.
// Returns ErrSlotFull or ErrDuplicateBooking when a guard fires.
func (r *BookingRepository) CreateScheduled(ctx context.Context, booking *entity.Booking) error {
	err := r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		var maxBookings int
		lockQuery := `SELECT max_bookings FROM availability_slots WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRowContext(ctx, lockQuery, booking.SlotID).Scan(&maxBookings); err != nil {
			return err
		}

		var scheduled int
		countQuery := `SELECT COUNT(*) FROM bookings WHERE slot_id = $1 AND status = 'scheduled'`
		if err := tx.QueryRowContext(ctx, countQuery, booking.SlotID).Scan(&scheduled); err != nil {
			return err
		}
		if scheduled >= maxBookings {
			return ErrSlotFull
		}

		insertQuery := `
			INSERT INTO bookings (id, slot_id, owner_id, counterpart_id, meeting_date, start_time, end_time,
			                      status, meeting_type, meeting_link, calendar_event_id, title, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at, updated_at
		`
		return tx.QueryRowContext(ctx, insertQuery,
			booking.ID, booking.SlotID, booking.OwnerID, booking.CounterpartID,
			booking.MeetingDate, booking.StartTime, booking.EndTime,
			booking.Status, booking.MeetingType, booking.MeetingLink,
			booking.CalendarEventID, booking.Title, booking.Description,
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	})
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateBooking
		}
		if err != ErrSlotFull {
			logger.Error("BookingRepository:CreateScheduled", err)
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}
	return &booking, nil
}

// Update persists a lifecycle transition. Only mutable columns move; the
// original row, slot reference, and meeting window are preserved.
func (r *BookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, cancelled_at = $3, cancelled_by = $4, cancellation_reason = $5, updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		booking.ID, booking.Status, booking.CancelledAt, booking.CancelledBy, booking.CancellationReason)
	if err != nil {
		logger.Error("BookingRepository:Update", err)
		return err
	}
	return nil
}

func (r *BookingRepository) ListByCounterpart(ctx context.Context, counterpartID uuid.UUID, status, fromDate, toDate string) ([]entity.Booking, error) {
	return r.list(ctx, "counterpart_id", counterpartID, status, fromDate, toDate)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status, fromDate, toDate string) ([]entity.Booking, error) {
	return r.list(ctx, "owner_id", ownerID, status, fromDate, toDate)
}

func (r *BookingRepository) list(ctx context.Context, column string, userID uuid.UUID, status, fromDate, toDate string) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`
	args := []any{userID}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if fromDate != "" {
		args = append(args, fromDate)
		query += fmt.Sprintf(" AND meeting_date >= $%d", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		query += fmt.Sprintf(" AND meeting_date <= $%d", len(args))
	}
	query += ` ORDER BY meeting_date, start_time`

	var bookings []entity.Booking
	if err := r.DB.SelectContext(ctx, &bookings, query, args...); err != nil {
		logger.Error("BookingRepository:list", err)
		return nil, err
	}
	return bookings, nil
}
