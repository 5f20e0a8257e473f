package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "quickcourt"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr            = ""
	DefaultRedisDB              = 0
	DefaultAvailabilityCacheTTL = 30 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultSlotMinutes    = 60
	DefaultMinSlotMinutes        = 30
	DefaultMaxSlotMinutes        = 240
	DefaultSlotLockTTL           = 10 * time.Second
	DefaultMaxAdvanceBookingDays = 90
	DefaultDefaultOpenTime       = "08:00"
	DefaultDefaultCloseTime      = "22:00"

	DefaultPaginationLimit = 100
)
