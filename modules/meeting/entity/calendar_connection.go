package entity

import (
	"time"

	coreEntity "github.com/Akius1/cv-review-sub000/core/entity"

	"github.com/google/uuid"
)

const ProviderGoogle = "google"

// CalendarConnection is a stored OAuth credential for an owner's
// calendar provider.
type CalendarConnection struct {
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	Provider       string     `db:"provider" json:"provider"`
	Email          string     `db:"email" json:"email"`
	AccessToken    string     `db:"access_token" json:"-"`
	RefreshToken   *string    `db:"refresh_token" json:"-"`
	TokenExpiresAt *time.Time `db:"token_expires_at" json:"token_expires_at,omitempty"`
	coreEntity.BaseEntity
}
