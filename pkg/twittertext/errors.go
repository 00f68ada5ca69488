package twittertext

import "errors"

// ErrInvalidConfiguration is returned when a weighting configuration cannot
// be decoded or fails validation.
var ErrInvalidConfiguration = errors.New("invalid configuration")
