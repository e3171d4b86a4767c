package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Roles carried in the session token.
const (
	RoleOwner       = "owner"
	RoleCounterpart = "counterpart"
)

// Wire formats for slot dates and times. Slots store these as text and
// every parse site uses the same layouts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Timeouts
const (
	DefaultTimeout   = 15 * time.Second
	ProvisionTimeout = 10 * time.Second
)

// RecentlyAvailableWindow is how long after a cancellation a slot with
// open spots is reported as recently_available instead of available.
const RecentlyAvailableWindow = 24 * time.Hour

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
)

// Asynq task types
const (
	TaskTypeNotificationEmail = "notification:email"
)
