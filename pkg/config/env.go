package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr            = "REDIS_ADDR"
	EnvRedisDB              = "REDIS_DB"
	EnvAvailabilityCacheTTL = "AVAILABILITY_CACHE_TTL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultSlotMinutes    = "DEFAULT_SLOT_MINUTES"
	EnvMinSlotMinutes        = "MIN_SLOT_MINUTES"
	EnvMaxSlotMinutes        = "MAX_SLOT_MINUTES"
	EnvSlotLockTTL           = "SLOT_LOCK_TTL"
	EnvMaxAdvanceBookingDays = "MAX_ADVANCE_BOOKING_DAYS"
	EnvDefaultOpenTime       = "DEFAULT_OPEN_TIME"
	EnvDefaultCloseTime      = "DEFAULT_CLOSE_TIME"
)
