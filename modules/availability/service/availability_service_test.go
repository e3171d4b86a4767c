package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/modules/availability/dto"
	"github.com/Akius1/cv-review-sub000/modules/availability/entity"
	"github.com/Akius1/cv-review-sub000/modules/availability/repository"
	bookingEntity "github.com/Akius1/cv-review-sub000/modules/booking/entity"

	"github.com/google/uuid"
)

type stubSlotRepo struct {
	slots     []entity.AvailabilitySlot
	rows      []repository.SlotWithBookings
	scheduled map[uuid.UUID]int
	created   []*entity.AvailabilitySlot
	updated   *entity.AvailabilitySlot
	deleted   bool
}

func (r *stubSlotRepo) CreateSlots(ctx context.Context, slots []*entity.AvailabilitySlot) error {
	r.created = append(r.created, slots...)
	return nil
}

func (r *stubSlotRepo) GetOwnedByID(ctx context.Context, slotID, ownerID uuid.UUID) (*entity.AvailabilitySlot, error) {
	for i := range r.slots {
		if r.slots[i].ID == slotID && r.slots[i].OwnerID == ownerID {
			s := r.slots[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *stubSlotRepo) ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]entity.AvailabilitySlot, error) {
	var out []entity.AvailabilitySlot
	for _, s := range r.slots {
		if s.OwnerID == ownerID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSlotRepo) List(ctx context.Context, ownerID *uuid.UUID, fromDate, toDate string) ([]repository.SlotWithBookings, error) {
	return r.rows, nil
}

func (r *stubSlotRepo) GetOpenSlotWithBookings(ctx context.Context, slotID, ownerID uuid.UUID) (*repository.SlotWithBookings, error) {
	for i := range r.rows {
		if r.rows[i].Slot.ID == slotID && r.rows[i].Slot.OwnerID == ownerID {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (r *stubSlotRepo) CountScheduled(ctx context.Context, slotID uuid.UUID) (int, error) {
	return r.scheduled[slotID], nil
}

func (r *stubSlotRepo) UpdateSlot(ctx context.Context, slot *entity.AvailabilitySlot) error {
	r.updated = slot
	return nil
}

func (r *stubSlotRepo) DeleteSlot(ctx context.Context, slotID, ownerID uuid.UUID) error {
	r.deleted = true
	return nil
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubSlotRepo) AvailabilityServiceInterface {
	return NewAvailabilityService(repo, clock.Fixed(testNow))
}

func slotInput(date, start, end string, max int) dto.SlotInput {
	return dto.SlotInput{Date: date, StartTime: start, EndTime: end, Timezone: "UTC", MaxBookings: max}
}

func TestCreateSlotsValidation(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		input   dto.SlotInput
		wantMsg string
	}{
		{"bad date format", slotInput("03-01-2025", "09:00", "09:30", 1), "date must be formatted"},
		{"bad start format", slotInput("2025-03-02", "9am", "09:30", 1), "start_time must be formatted"},
		{"start not before end", slotInput("2025-03-02", "09:30", "09:00", 1), "start_time must be before end_time"},
		{"start equal to end", slotInput("2025-03-02", "09:00", "09:00", 1), "start_time must be before end_time"},
		{"zero capacity", slotInput("2025-03-02", "09:00", "09:30", 0), "max_bookings must be at least 1"},
		{"past date", slotInput("2025-02-28", "09:00", "09:30", 1), "is in the past"},
		{"unknown timezone", dto.SlotInput{Date: "2025-03-02", StartTime: "09:00", EndTime: "09:30", Timezone: "Mars/Olympus", MaxBookings: 1}, "unknown timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubSlotRepo{})
			_, appErr := svc.CreateSlots(context.Background(), ownerID, &dto.CreateSlotsRequest{
				Slots: []dto.SlotInput{tt.input},
			})
			if appErr == nil {
				t.Fatal("expected validation error")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Errorf("code = %q, want %q", appErr.Code, errors.ErrInvalidInput)
			}
			if !strings.Contains(appErr.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestCreateSlotsEmptyBatch(t *testing.T) {
	svc := newTestService(&stubSlotRepo{})
	_, appErr := svc.CreateSlots(context.Background(), uuid.New(), &dto.CreateSlotsRequest{})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("appErr = %v, want invalid input", appErr)
	}
}

func TestCreateSlotsBatchOverlap(t *testing.T) {
	svc := newTestService(&stubSlotRepo{})
	_, appErr := svc.CreateSlots(context.Background(), uuid.New(), &dto.CreateSlotsRequest{
		Slots: []dto.SlotInput{
			slotInput("2025-03-02", "09:00", "10:00", 1),
			slotInput("2025-03-02", "09:30", "10:30", 1),
		},
	})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("appErr = %v, want conflict", appErr)
	}
}

func TestCreateSlotsOverlapWithExisting(t *testing.T) {
	ownerID := uuid.New()
	existing := entity.AvailabilitySlot{
		OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00",
		Timezone: "UTC", MaxBookings: 1, IsAvailable: true,
	}
	existing.ID = uuid.New()

	repo := &stubSlotRepo{slots: []entity.AvailabilitySlot{existing}}
	svc := newTestService(repo)

	_, appErr := svc.CreateSlots(context.Background(), ownerID, &dto.CreateSlotsRequest{
		Slots: []dto.SlotInput{slotInput("2025-03-02", "09:30", "10:30", 1)},
	})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("appErr = %v, want conflict", appErr)
	}
	if len(repo.created) != 0 {
		t.Errorf("created %d slots, want none", len(repo.created))
	}
}

func TestCreateSlotsAdjacentWindows(t *testing.T) {
	ownerID := uuid.New()
	existing := entity.AvailabilitySlot{
		OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00",
		Timezone: "UTC", MaxBookings: 1, IsAvailable: true,
	}
	existing.ID = uuid.New()

	repo := &stubSlotRepo{slots: []entity.AvailabilitySlot{existing}}
	svc := newTestService(repo)

	// Back to back windows share a boundary instant but do not overlap.
	out, appErr := svc.CreateSlots(context.Background(), ownerID, &dto.CreateSlotsRequest{
		Slots: []dto.SlotInput{
			slotInput("2025-03-02", "10:00", "11:00", 1),
			slotInput("2025-03-02", "11:00", "12:00", 2),
		},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(out) != 2 {
		t.Fatalf("created %d slots, want 2", len(out))
	}
	if out[0].Status != entity.SlotStatusAvailable {
		t.Errorf("status = %q, want %q", out[0].Status, entity.SlotStatusAvailable)
	}
	if len(repo.created) != 2 {
		t.Errorf("persisted %d slots, want 2", len(repo.created))
	}
}

func TestUpdateSlotWithScheduledBookings(t *testing.T) {
	ownerID := uuid.New()
	slot := entity.AvailabilitySlot{
		OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00",
		Timezone: "UTC", MaxBookings: 1, IsAvailable: true,
	}
	slot.ID = uuid.New()

	repo := &stubSlotRepo{
		slots:     []entity.AvailabilitySlot{slot},
		scheduled: map[uuid.UUID]int{slot.ID: 2},
	}
	svc := newTestService(repo)

	newEnd := "11:00"
	_, appErr := svc.UpdateSlot(context.Background(), slot.ID, ownerID, &dto.UpdateSlotRequest{EndTime: &newEnd})
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("appErr = %v, want conflict", appErr)
	}
	if !strings.Contains(appErr.Message, "2 scheduled booking(s)") {
		t.Errorf("message = %q, want it to name the booking count", appErr.Message)
	}
}

func TestUpdateSlotNotFound(t *testing.T) {
	svc := newTestService(&stubSlotRepo{})
	newEnd := "11:00"
	_, appErr := svc.UpdateSlot(context.Background(), uuid.New(), uuid.New(), &dto.UpdateSlotRequest{EndTime: &newEnd})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("appErr = %v, want not found", appErr)
	}
}

func TestUpdateSlotSuccess(t *testing.T) {
	ownerID := uuid.New()
	slot := entity.AvailabilitySlot{
		OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00",
		Timezone: "UTC", MaxBookings: 1, IsAvailable: true,
	}
	slot.ID = uuid.New()

	repo := &stubSlotRepo{slots: []entity.AvailabilitySlot{slot}, scheduled: map[uuid.UUID]int{}}
	svc := newTestService(repo)

	maxBookings := 3
	out, appErr := svc.UpdateSlot(context.Background(), slot.ID, ownerID, &dto.UpdateSlotRequest{MaxBookings: &maxBookings})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if out.MaxBookings != 3 {
		t.Errorf("max bookings = %d, want 3", out.MaxBookings)
	}
	if repo.updated == nil {
		t.Error("update was not persisted")
	}
}

func TestDeleteSlotWithScheduledBookings(t *testing.T) {
	ownerID := uuid.New()
	slot := entity.AvailabilitySlot{OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00", Timezone: "UTC", MaxBookings: 1}
	slot.ID = uuid.New()

	repo := &stubSlotRepo{
		slots:     []entity.AvailabilitySlot{slot},
		scheduled: map[uuid.UUID]int{slot.ID: 1},
	}
	svc := newTestService(repo)

	appErr := svc.DeleteSlot(context.Background(), slot.ID, ownerID)
	if appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("appErr = %v, want conflict", appErr)
	}
	if repo.deleted {
		t.Error("slot was deleted despite scheduled bookings")
	}
}

func TestDeleteSlotSuccess(t *testing.T) {
	ownerID := uuid.New()
	slot := entity.AvailabilitySlot{OwnerID: ownerID, Date: "2025-03-02", StartTime: "09:00", EndTime: "10:00", Timezone: "UTC", MaxBookings: 1}
	slot.ID = uuid.New()

	repo := &stubSlotRepo{slots: []entity.AvailabilitySlot{slot}, scheduled: map[uuid.UUID]int{}}
	svc := newTestService(repo)

	if appErr := svc.DeleteSlot(context.Background(), slot.ID, ownerID); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !repo.deleted {
		t.Error("slot was not deleted")
	}
}

func TestListSlotsMetaCounts(t *testing.T) {
	available := makeSlot("2025-03-02", "09:00", "09:30", 1)
	expired := makeSlot("2025-02-28", "09:00", "09:30", 1)
	full := makeSlot("2025-03-02", "10:00", "10:30", 1)
	recent := makeSlot("2025-03-02", "11:00", "11:30", 1)

	repo := &stubSlotRepo{rows: []repository.SlotWithBookings{
		{Slot: available},
		{Slot: expired},
		{Slot: full, Bookings: []bookingEntity.Booking{scheduled()}},
		{Slot: recent, Bookings: []bookingEntity.Booking{cancelledAt(testNow.Add(-time.Hour))}},
	}}
	svc := newTestService(repo)

	out, meta, appErr := svc.ListSlots(context.Background(), dto.ListSlotsQuery{Period: "all"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(out) != 4 {
		t.Fatalf("got %d slots, want 4", len(out))
	}
	if meta.Total != 4 || meta.Available != 1 || meta.Expired != 1 || meta.FullyBooked != 1 || meta.RecentlyAvailable != 1 {
		t.Errorf("meta = %+v, want one slot per category", meta)
	}
}

func TestListSlotsInvalidPeriod(t *testing.T) {
	svc := newTestService(&stubSlotRepo{})
	_, _, appErr := svc.ListSlots(context.Background(), dto.ListSlotsQuery{Period: "fortnight"})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("appErr = %v, want invalid input", appErr)
	}
}

func TestListSlotsInvalidOwnerID(t *testing.T) {
	svc := newTestService(&stubSlotRepo{})
	_, _, appErr := svc.ListSlots(context.Background(), dto.ListSlotsQuery{OwnerID: "not-a-uuid"})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("appErr = %v, want invalid input", appErr)
	}
}
