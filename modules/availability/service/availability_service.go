package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/modules/availability/dto"
	"github.com/Akius1/cv-review-sub000/modules/availability/entity"
	"github.com/Akius1/cv-review-sub000/modules/availability/repository"
	bookingEntity "github.com/Akius1/cv-review-sub000/modules/booking/entity"

	"github.com/google/uuid"
)

// AvailabilityService manages slots and their derived status.
type AvailabilityServiceInterface interface {
	CreateSlots(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSlotsRequest) ([]dto.SlotResponse, *errors.AppError)
	UpdateSlot(ctx context.Context, slotID, ownerID uuid.UUID, req *dto.UpdateSlotRequest) (*dto.SlotResponse, *errors.AppError)
	DeleteSlot(ctx context.Context, slotID, ownerID uuid.UUID) *errors.AppError
	ListSlots(ctx context.Context, query dto.ListSlotsQuery) ([]dto.SlotResponse, *dto.ListMeta, *errors.AppError)
}

type availabilityService struct {
	repo repository.SlotRepositoryInterface
	clk  clock.Clock
}

func NewAvailabilityService(repo repository.SlotRepositoryInterface, clk clock.Clock) AvailabilityServiceInterface {
	return &availabilityService{repo: repo, clk: clk}
}

// CreateSlots validates and persists a batch of slots for one owner.
// Each slot is checked against persisted same-owner/same-date rows and
// against the rest of the batch; any invalid slot aborts the whole
// batch before anything is inserted.
func (s *availabilityService) CreateSlots(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSlotsRequest) ([]dto.SlotResponse, *errors.AppError) {
	logger.Info("AvailabilityService:CreateSlots:Start", "owner_id", ownerID, "count", len(req.Slots))

	if len(req.Slots) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "at least one slot is required", nil)
	}

	slots := make([]*entity.AvailabilitySlot, 0, len(req.Slots))
	for i, in := range req.Slots {
		slot, appErr := s.validateSlotInput(ownerID, in, i)
		if appErr != nil {
			return nil, appErr
		}
		slots = append(slots, slot)
	}

	// Cross-validate the batch in memory before any insert, so two
	// mutually overlapping new slots cannot both slip past the
	// persisted-rows check.
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Date == slots[j].Date && slots[i].Overlaps(slots[j].StartTime, slots[j].EndTime) {
				return nil, errors.NewAppError(errors.ErrConflict,
					fmt.Sprintf("slots %d and %d in this batch overlap (%s %s-%s vs %s-%s)",
						i+1, j+1, slots[i].Date,
						slots[i].StartTime, slots[i].EndTime,
						slots[j].StartTime, slots[j].EndTime), nil)
			}
		}
	}

	// Validate against persisted rows, one lookup per distinct date.
	seen := map[string][]entity.AvailabilitySlot{}
	for i, slot := range slots {
		existing, ok := seen[slot.Date]
		if !ok {
			var err error
			existing, err = s.repo.ListByOwnerAndDate(ctx, ownerID, slot.Date)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing slots", err)
			}
			seen[slot.Date] = existing
		}
		for _, ex := range existing {
			if ex.Overlaps(slot.StartTime, slot.EndTime) {
				return nil, errors.NewAppError(errors.ErrConflict,
					fmt.Sprintf("slot %d (%s %s-%s) overlaps an existing slot (%s-%s)",
						i+1, slot.Date, slot.StartTime, slot.EndTime, ex.StartTime, ex.EndTime), nil)
			}
		}
	}

	if err := s.repo.CreateSlots(ctx, slots); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create slots", err)
	}

	now := s.clk.Now()
	out := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = toSlotResponse(*slot, nil, now)
	}

	logger.Info("AvailabilityService:CreateSlots:Success", "owner_id", ownerID, "count", len(out))
	return out, nil
}

// UpdateSlot changes a slot's window, capacity or visibility. Rejected
// with Conflict while any scheduled booking references the slot.
func (s *availabilityService) UpdateSlot(ctx context.Context, slotID, ownerID uuid.UUID, req *dto.UpdateSlotRequest) (*dto.SlotResponse, *errors.AppError) {
	slot, err := s.repo.GetOwnedByID(ctx, slotID, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}

	if appErr := s.requireNoScheduledBookings(ctx, slotID, "updated"); appErr != nil {
		return nil, appErr
	}

	if req.Date != nil {
		slot.Date = *req.Date
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.Timezone != nil {
		slot.Timezone = *req.Timezone
	}
	if req.MaxBookings != nil {
		slot.MaxBookings = *req.MaxBookings
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}

	if appErr := s.validateWindow(slot.Date, slot.StartTime, slot.EndTime, slot.Timezone, slot.MaxBookings, -1); appErr != nil {
		return nil, appErr
	}

	// Re-check overlap against the owner's other slots on that date.
	existing, lerr := s.repo.ListByOwnerAndDate(ctx, ownerID, slot.Date)
	if lerr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing slots", lerr)
	}
	for _, ex := range existing {
		if ex.ID == slot.ID {
			continue
		}
		if ex.Overlaps(slot.StartTime, slot.EndTime) {
			return nil, errors.NewAppError(errors.ErrConflict,
				fmt.Sprintf("updated window %s %s-%s overlaps an existing slot (%s-%s)",
					slot.Date, slot.StartTime, slot.EndTime, ex.StartTime, ex.EndTime), nil)
		}
	}

	if uerr := s.repo.UpdateSlot(ctx, slot); uerr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update slot", uerr)
	}

	resp := toSlotResponse(*slot, nil, s.clk.Now())
	return &resp, nil
}

// DeleteSlot removes a slot that has no scheduled bookings.
func (s *availabilityService) DeleteSlot(ctx context.Context, slotID, ownerID uuid.UUID) *errors.AppError {
	slot, err := s.repo.GetOwnedByID(ctx, slotID, ownerID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}

	if appErr := s.requireNoScheduledBookings(ctx, slotID, "deleted"); appErr != nil {
		return appErr
	}

	if derr := s.repo.DeleteSlot(ctx, slotID, ownerID); derr != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete slot", derr)
	}

	logger.Info("AvailabilityService:DeleteSlot:Success", "slot_id", slotID, "owner_id", ownerID)
	return nil
}

// ListSlots returns slots with derived status plus per-category counts.
// Status is recomputed on every read; nothing here is cached.
func (s *availabilityService) ListSlots(ctx context.Context, query dto.ListSlotsQuery) ([]dto.SlotResponse, *dto.ListMeta, *errors.AppError) {
	var ownerID *uuid.UUID
	if query.OwnerID != "" {
		id, err := uuid.Parse(query.OwnerID)
		if err != nil {
			return nil, nil, errors.NewAppError(errors.ErrInvalidInput, "owner_id must be a valid UUID", err)
		}
		ownerID = &id
	}

	from, to, appErr := s.resolveRange(query)
	if appErr != nil {
		return nil, nil, appErr
	}

	rows, err := s.repo.List(ctx, ownerID, from, to)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to list slots", err)
	}

	now := s.clk.Now()
	meta := &dto.ListMeta{Total: len(rows)}
	out := make([]dto.SlotResponse, len(rows))
	for i, row := range rows {
		resp := toSlotResponse(row.Slot, row.Bookings, now)
		out[i] = resp
		switch resp.Status {
		case entity.SlotStatusAvailable:
			meta.Available++
		case entity.SlotStatusFullyBooked:
			meta.FullyBooked++
		case entity.SlotStatusRecentlyAvailable:
			meta.RecentlyAvailable++
		case entity.SlotStatusExpired:
			meta.Expired++
		}
	}

	return out, meta, nil
}

func (s *availabilityService) requireNoScheduledBookings(ctx context.Context, slotID uuid.UUID, verb string) *errors.AppError {
	count, err := s.repo.CountScheduled(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to count bookings", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrConflict,
			fmt.Sprintf("slot cannot be %s: it has %d scheduled booking(s)", verb, count), nil)
	}
	return nil
}

func (s *availabilityService) validateSlotInput(ownerID uuid.UUID, in dto.SlotInput, index int) (*entity.AvailabilitySlot, *errors.AppError) {
	if appErr := s.validateWindow(in.Date, in.StartTime, in.EndTime, in.Timezone, in.MaxBookings, index); appErr != nil {
		return nil, appErr
	}

	slot := &entity.AvailabilitySlot{
		OwnerID:     ownerID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Timezone:    in.Timezone,
		MaxBookings: in.MaxBookings,
		IsAvailable: true,
	}
	slot.ID = uuid.New()

	// Only future dates may be published.
	today := s.clk.Now().In(slot.Location()).Format(constants.DateLayout)
	if slot.Date < today {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("slot %d: date %s is in the past", index+1, slot.Date), nil)
	}

	return slot, nil
}

func (s *availabilityService) validateWindow(date, start, end, tz string, capacity, index int) *errors.AppError {
	pos := ""
	if index >= 0 {
		pos = fmt.Sprintf("slot %d: ", index+1)
	}

	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, pos+"date must be formatted YYYY-MM-DD", err)
	}
	if _, err := time.Parse(constants.TimeLayout, start); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, pos+"start_time must be formatted HH:MM", err)
	}
	if _, err := time.Parse(constants.TimeLayout, end); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, pos+"end_time must be formatted HH:MM", err)
	}
	if start >= end {
		return errors.NewAppError(errors.ErrInvalidInput, pos+"start_time must be before end_time", nil)
	}
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, pos+fmt.Sprintf("unknown timezone %q", tz), err)
		}
	}
	if capacity < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, pos+"max_bookings must be at least 1", nil)
	}
	return nil
}

// resolveRange turns a named period or explicit bounds into a date
// range. Explicit from/to override the period.
func (s *availabilityService) resolveRange(query dto.ListSlotsQuery) (string, string, *errors.AppError) {
	if query.From != "" || query.To != "" {
		for _, d := range []string{query.From, query.To} {
			if d == "" {
				continue
			}
			if _, err := time.Parse(constants.DateLayout, d); err != nil {
				return "", "", errors.NewAppError(errors.ErrInvalidInput, "from/to must be formatted YYYY-MM-DD", err)
			}
		}
		return query.From, query.To, nil
	}

	today := s.clk.Now()
	switch query.Period {
	case "", "all":
		return "", "", nil
	case "day":
		d := today.Format(constants.DateLayout)
		return d, d, nil
	case "week":
		return today.Format(constants.DateLayout), today.AddDate(0, 0, 6).Format(constants.DateLayout), nil
	case "month":
		return today.Format(constants.DateLayout), today.AddDate(0, 1, 0).Format(constants.DateLayout), nil
	default:
		return "", "", errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("unknown period %q: expected day, week, month or all", query.Period), nil)
	}
}

func toSlotResponse(slot entity.AvailabilitySlot, bookings []bookingEntity.Booking, now time.Time) dto.SlotResponse {
	derived := DeriveAvailability(&slot, bookings, now)
	return dto.SlotResponse{
		AvailabilitySlot: slot,
		Status:           derived.Status,
		AvailableSpots:   derived.AvailableSpots,
		BookingSummary:   derived.Summary,
		Bookings:         bookings,
	}
}
