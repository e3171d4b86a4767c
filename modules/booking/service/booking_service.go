package service

import (
	"context"
	"fmt"

	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/errors"
	"github.com/Akius1/cv-review-sub000/core/logger"
	availabilityEntity "github.com/Akius1/cv-review-sub000/modules/availability/entity"
	availabilityRepo "github.com/Akius1/cv-review-sub000/modules/availability/repository"
	availabilityService "github.com/Akius1/cv-review-sub000/modules/availability/service"
	"github.com/Akius1/cv-review-sub000/modules/booking/dto"
	"github.com/Akius1/cv-review-sub000/modules/booking/entity"
	"github.com/Akius1/cv-review-sub000/modules/booking/repository"
	meetingService "github.com/Akius1/cv-review-sub000/modules/meeting/service"
	notificationDto "github.com/Akius1/cv-review-sub000/modules/notification/dto"
	notificationEntity "github.com/Akius1/cv-review-sub000/modules/notification/entity"
	notificationService "github.com/Akius1/cv-review-sub000/modules/notification/service"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	Book(ctx context.Context, counterpartID uuid.UUID, counterpartEmail string, req dto.BookRequest) (*dto.BookingResponse, *errors.AppError)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, req dto.CancelRequest) (*entity.Booking, *errors.AppError)
	Complete(ctx context.Context, bookingID, actorID uuid.UUID) (*entity.Booking, *errors.AppError)
	GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*entity.Booking, *errors.AppError)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, query dto.ListBookingsQuery) ([]entity.Booking, *errors.AppError)
	ListForCounterpart(ctx context.Context, counterpartID uuid.UUID, query dto.ListBookingsQuery) ([]entity.Booking, *errors.AppError)
}

type bookingService struct {
	repo        repository.BookingRepositoryInterface
	slotRepo    availabilityRepo.SlotRepositoryInterface
	provisioner meetingService.Provisioner
	notifier    notificationService.Notifier
	clk         clock.Clock
}

func NewBookingService(
	repo repository.BookingRepositoryInterface,
	slotRepo availabilityRepo.SlotRepositoryInterface,
	provisioner meetingService.Provisioner,
	notifier notificationService.Notifier,
	clk clock.Clock,
) BookingServiceInterface {
	return &bookingService{
		repo:        repo,
		slotRepo:    slotRepo,
		provisioner: provisioner,
		notifier:    notifier,
		clk:         clk,
	}
}

// Book reserves a spot on an availability slot for the counterpart. The
// pre-insert status checks are advisory; the storage-level guards in the
// repository are authoritative, so a race between two counterparts is
// settled there, never by overbooking.
func (s *bookingService) Book(ctx context.Context, counterpartID uuid.UUID, counterpartEmail string, req dto.BookRequest) (*dto.BookingResponse, *errors.AppError) {
	logger.Info("BookingService:Book:Start", "slot_id", req.SlotID, "counterpart_id", counterpartID)

	if appErr := s.validateBookRequest(counterpartID, req); appErr != nil {
		return nil, appErr
	}

	slotWithBookings, err := s.slotRepo.GetOpenSlotWithBookings(ctx, req.SlotID, req.OwnerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load slot", err)
	}
	if slotWithBookings == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}
	slot := slotWithBookings.Slot

	if req.Date != slot.Date || req.StartTime != slot.StartTime || req.EndTime != slot.EndTime {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"requested meeting window does not match the slot", nil)
	}

	now := s.clk.Now()
	derived := availabilityService.DeriveAvailability(&slot, slotWithBookings.Bookings, now)
	switch derived.Status {
	case availabilityEntity.SlotStatusExpired:
		return nil, errors.NewAppError(errors.ErrConflict, "slot is in the past", nil)
	case availabilityEntity.SlotStatusFullyBooked:
		return nil, errors.NewAppError(errors.ErrConflict, "slot is fully booked", nil)
	}
	for _, b := range slotWithBookings.Bookings {
		if b.CounterpartID == counterpartID && b.Status == entity.StatusScheduled {
			return nil, errors.NewAppError(errors.ErrConflict,
				"you already have a scheduled booking for this slot", nil)
		}
	}

	meeting := s.provisioner.Provision(ctx, meetingService.ProvisionRequest{
		OwnerID:          req.OwnerID,
		OwnerName:        req.OwnerName,
		OwnerEmail:       req.OwnerEmail,
		CounterpartEmail: counterpartEmail,
		Title:            req.Title,
		Description:      derefOrEmpty(req.Description),
		Date:             slot.Date,
		StartTime:        slot.StartTime,
		EndTime:          slot.EndTime,
		Timezone:         slot.Timezone,
	})

	booking := &entity.Booking{
		SlotID:          slot.ID,
		OwnerID:         slot.OwnerID,
		CounterpartID:   counterpartID,
		MeetingDate:     slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Status:          entity.InitialStatus(),
		MeetingType:     req.MeetingType,
		MeetingLink:     meeting.Link,
		CalendarEventID: meeting.EventID,
		Title:           req.Title,
		Description:     req.Description,
	}
	booking.ID = uuid.New()

	if err := s.repo.CreateScheduled(ctx, booking); err != nil {
		if meeting.EventID != nil {
			logger.Error("BookingService:Book:OrphanedCalendarEvent",
				"event_id", *meeting.EventID, "slot_id", slot.ID, "error", err)
		}
		switch err {
		case repository.ErrSlotFull:
			return nil, errors.NewAppError(errors.ErrConflict, "slot is fully booked", nil)
		case repository.ErrDuplicateBooking:
			return nil, errors.NewAppError(errors.ErrConflict,
				"you already have a scheduled booking for this slot", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create booking", err)
	}

	s.notifyBooked(ctx, booking, meeting, counterpartEmail, req.OwnerEmail)

	logger.Info("BookingService:Book:Success", "booking_id", booking.ID, "method", meeting.Method)
	return &dto.BookingResponse{Booking: *booking, Method: string(meeting.Method)}, nil
}

// Cancel transitions a scheduled booking to cancelled. The row is kept;
// the slot regains the spot because the status engine only counts
// scheduled bookings.
func (s *bookingService) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, req dto.CancelRequest) (*entity.Booking, *errors.AppError) {
	logger.Info("BookingService:Cancel:Start", "booking_id", bookingID, "actor_id", actorID)

	booking, appErr := s.loadForActor(ctx, bookingID, actorID)
	if appErr != nil {
		return nil, appErr
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	if err := booking.Cancel(actorID, reason, s.clk.Now()); err != nil {
		return nil, asAppError(err)
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to cancel booking", err)
	}

	s.notifyCancelled(ctx, booking, actorID, req.Reason)

	logger.Info("BookingService:Cancel:Success", "booking_id", booking.ID)
	return booking, nil
}

// Complete marks a finished consultation. Owner only.
func (s *bookingService) Complete(ctx context.Context, bookingID, actorID uuid.UUID) (*entity.Booking, *errors.AppError) {
	logger.Info("BookingService:Complete:Start", "booking_id", bookingID, "actor_id", actorID)

	booking, appErr := s.loadForActor(ctx, bookingID, actorID)
	if appErr != nil {
		return nil, appErr
	}
	if booking.OwnerID != actorID {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "only the slot owner can complete a booking", nil)
	}

	if err := booking.Complete(s.clk.Now()); err != nil {
		return nil, asAppError(err)
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to complete booking", err)
	}

	logger.Info("BookingService:Complete:Success", "booking_id", booking.ID)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*entity.Booking, *errors.AppError) {
	return s.loadForActor(ctx, bookingID, actorID)
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID, query dto.ListBookingsQuery) ([]entity.Booking, *errors.AppError) {
	bookings, err := s.repo.ListByOwner(ctx, ownerID, query.Status, query.From, query.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListForCounterpart(ctx context.Context, counterpartID uuid.UUID, query dto.ListBookingsQuery) ([]entity.Booking, *errors.AppError) {
	bookings, err := s.repo.ListByCounterpart(ctx, counterpartID, query.Status, query.From, query.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list bookings", err)
	}
	return bookings, nil
}

// loadForActor fetches a booking and checks the actor is a party to it.
func (s *bookingService) loadForActor(ctx context.Context, bookingID, actorID uuid.UUID) (*entity.Booking, *errors.AppError) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if booking.OwnerID != actorID && booking.CounterpartID != actorID {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "you are not a party to this booking", nil)
	}
	return booking, nil
}

func (s *bookingService) validateBookRequest(counterpartID uuid.UUID, req dto.BookRequest) *errors.AppError {
	if req.SlotID == uuid.Nil {
		return errors.NewAppError(errors.ErrInvalidInput, "slot_id is required", nil)
	}
	if req.OwnerID == uuid.Nil {
		return errors.NewAppError(errors.ErrInvalidInput, "owner_id is required", nil)
	}
	if req.OwnerID == counterpartID {
		return errors.NewAppError(errors.ErrInvalidInput, "you cannot book your own slot", nil)
	}
	if req.Title == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	return nil
}

// notifyBooked dispatches the post-booking notifications. Failures are
// logged and swallowed: the booking is already committed.
func (s *bookingService) notifyBooked(ctx context.Context, booking *entity.Booking, meeting meetingService.ProvisionedMeeting, counterpartEmail, ownerEmail string) {
	details := notificationDto.MeetingDetails{
		BookingID:   booking.ID.String(),
		Title:       booking.Title,
		Date:        booking.MeetingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		MeetingLink: booking.MeetingLink,
		Method:      string(meeting.Method),
	}

	if err := s.notifier.Notify(ctx, booking.CounterpartID, counterpartEmail,
		"Booking confirmed",
		fmt.Sprintf("Your booking %q on %s at %s is confirmed.", booking.Title, booking.MeetingDate, booking.StartTime),
		notificationEntity.TypeBookingConfirmed, details); err != nil {
		logger.Error("BookingService:notifyBooked:Counterpart", err)
	}

	if err := s.notifier.Notify(ctx, booking.OwnerID, ownerEmail,
		"New booking received",
		fmt.Sprintf("You received a booking %q on %s at %s.", booking.Title, booking.MeetingDate, booking.StartTime),
		notificationEntity.TypeBookingReceived, details); err != nil {
		logger.Error("BookingService:notifyBooked:Owner", err)
	}
}

func (s *bookingService) notifyCancelled(ctx context.Context, booking *entity.Booking, actorID uuid.UUID, reason string) {
	recipient := booking.OwnerID
	if actorID == booking.OwnerID {
		recipient = booking.CounterpartID
	}

	details := notificationDto.MeetingDetails{
		BookingID: booking.ID.String(),
		Title:     booking.Title,
		Date:      booking.MeetingDate,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Reason:    reason,
	}

	if err := s.notifier.Notify(ctx, recipient, "",
		"Booking cancelled",
		fmt.Sprintf("The booking %q on %s at %s was cancelled.", booking.Title, booking.MeetingDate, booking.StartTime),
		notificationEntity.TypeBookingCancelled, details); err != nil {
		logger.Error("BookingService:notifyCancelled", err)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func asAppError(err error) *errors.AppError {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.NewAppError(errors.ErrConflict, err.Error(), err)
}
