package fallback

import "errors"

var (
	// ErrTimeout means the completion service did not answer within the
	// configured deadline. Recovered by the dispatcher as unclassified.
	ErrTimeout = errors.New("classification timed out")

	// ErrTransport covers connection and protocol failures.
	ErrTransport = errors.New("classification transport error")

	// ErrUnparseable means the completion did not map to a known intent
	// tag. Recovered as unclassified, never a crash.
	ErrUnparseable = errors.New("classification response unparseable")
)
