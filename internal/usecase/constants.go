package usecase

import "time"

const (
	// NotificationTimeout bounds a single fire-and-forget notification send.
	NotificationTimeout = 5 * time.Second

	// RateTimeout bounds a single rate provider call.
	RateTimeout = 5 * time.Second

	// DefaultActivityPageSize is used when a listing request gives no limit.
	DefaultActivityPageSize = 20

	// MaxActivityPageSize caps activity listing pages.
	MaxActivityPageSize = 100
)
