package submission

import "errors"

var (
	ErrPersist = errors.New("failed to persist submission")
)
