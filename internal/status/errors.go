package status

import "errors"

var (
	ErrAuthFailed = errors.New("exgratia API authentication failed")
	ErrNotFound   = errors.New("application not found")
	ErrAPI        = errors.New("exgratia API error")
)
