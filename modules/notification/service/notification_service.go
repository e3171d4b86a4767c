package service

import (
	"context"
	"encoding/json"
	"time"

	coreEntity "github.com/Akius1/cv-review-sub000/core/entity"
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/core/params"
	"github.com/Akius1/cv-review-sub000/modules/notification/dto"
	"github.com/Akius1/cv-review-sub000/modules/notification/entity"
	"github.com/Akius1/cv-review-sub000/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Notifier is the best-effort dispatch contract the booking subsystem
// calls. Errors are for the caller's log line only; they must never be
// treated as fatal.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, email, title, message, notifType string, details dto.MeetingDetails) error
}

type NotificationService struct {
	repo        *repository.NotificationRepository
	asynqClient *asynq.Client
}

// NewNotificationService wires the persisted notification store and the
// optional email queue. A nil client disables email dispatch.
func NewNotificationService(repo *repository.NotificationRepository, asynqClient *asynq.Client) *NotificationService {
	return &NotificationService{repo: repo, asynqClient: asynqClient}
}

// Notify persists a notification row and enqueues a best-effort email.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, email, title, message, notifType string, details dto.MeetingDetails) error {
	data := entity.JSONB{
		"booking_id":   details.BookingID,
		"title":        details.Title,
		"date":         details.Date,
		"start_time":   details.StartTime,
		"end_time":     details.EndTime,
		"meeting_link": details.MeetingLink,
	}
	if details.Method != "" {
		data["method"] = details.Method
	}
	if details.Reason != "" {
		data["reason"] = details.Reason
	}

	notif := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data:    data,
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return err
	}

	if s.asynqClient == nil || email == "" {
		return nil
	}

	payload, err := json.Marshal(dto.EmailTaskPayload{
		Email:   email,
		Subject: title,
		Body:    message + "\n\nMeeting link: " + details.MeetingLink,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(constants.TaskTypeNotificationEmail, payload)
	if _, err := s.asynqClient.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("NotificationService:Notify:Enqueue:Error:", err)
		return err
	}

	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
