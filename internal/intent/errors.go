package intent

import "errors"

var (
	ErrNoPatterns     = errors.New("no intent patterns configured")
	ErrUnknownIntent  = errors.New("pattern references unknown intent")
	ErrEmptyTriggers  = errors.New("pattern has no trigger phrases")
	ErrPatternsLoaded = errors.New("patterns file could not be read")
)
