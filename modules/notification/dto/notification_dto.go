package dto

// MeetingDetails is the structured payload attached to booking
// notifications and rendered into the dispatched email.
type MeetingDetails struct {
	BookingID   string `json:"booking_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MeetingLink string `json:"meeting_link"`
	Method      string `json:"method,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

// EmailTaskPayload is the asynq task body for the email worker.
type EmailTaskPayload struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
