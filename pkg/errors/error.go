package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// ErrInvalidPrice represents an error when an order price is zero or malformed.
	ErrInvalidPrice ErrorCode = "invalid_price"
	// ErrInvalidQty represents an error when an order quantity is zero or malformed.
	ErrInvalidQty ErrorCode = "invalid_qty"
	// ErrInvalidUserID represents an error when an order user id is zero or malformed.
	ErrInvalidUserID ErrorCode = "invalid_user_id"
	// ErrInvalidSide represents an error when an order side is neither Buy nor Sell.
	ErrInvalidSide ErrorCode = "invalid_side"
	// ErrInvalidOrderID represents an error when an order id is missing or non-numeric.
	ErrInvalidOrderID ErrorCode = "invalid_order_id"
	// ErrOrderNotFound represents an error when a cancelled order id is unknown to the book.
	ErrOrderNotFound ErrorCode = "order_not_found"

	// SnapshotStoreError represents an error when persisting a depth snapshot to Redis.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotPublishError represents an error when publishing a depth snapshot to a Redis channel.
	SnapshotPublishError ErrorCode = "snapshot_publish_error"
	// DepthPublishError represents an error when publishing a depth update to Kafka.
	DepthPublishError ErrorCode = "depth_publish_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)
