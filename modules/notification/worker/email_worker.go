package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/core/utils"
	"github.com/Akius1/cv-review-sub000/modules/notification/dto"

	"github.com/hibiken/asynq"
)

// RegisterHandlers attaches the notification task handlers to the asynq mux.
func RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeNotificationEmail, HandleEmailTask)
}

// HandleEmailTask delivers a queued notification email over SMTP.
func HandleEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload dto.EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("Worker:HandleEmailTask:Unmarshal:Error:", err)
		return fmt.Errorf("unmarshal email payload: %w", err)
	}

	if err := utils.SendEmail([]string{payload.Email}, payload.Subject, payload.Body); err != nil {
		logger.Error("Worker:HandleEmailTask:Send:Error:", err)
		return err
	}

	logger.Info("Worker:HandleEmailTask:Sent", "email", payload.Email)
	return nil
}
