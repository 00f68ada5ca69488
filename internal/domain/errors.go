package domain

import "errors"

var (
	// ErrEmptyText is returned when a request carries no text.
	ErrEmptyText = errors.New("text is empty")

	// ErrTextTooLong is returned when the text exceeds the service's byte limit.
	ErrTextTooLong = errors.New("text exceeds the size limit")

	// ErrUnknownConfig is returned for a configuration name that is neither
	// built in nor loaded from the presets file.
	ErrUnknownConfig = errors.New("unknown configuration")

	// ErrUnknownEntityType is returned when an extract request names a type
	// that does not exist.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrUnknownValidation is returned for an unsupported validation kind.
	ErrUnknownValidation = errors.New("unknown validation kind")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
