package dispatcher

import (
	"context"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/status"
)

// Dispatcher turns one inbound user event into one response. It never
// fails: every degraded path inside resolves to a usable reply.
type Dispatcher interface {
	Handle(ctx context.Context, scope model.Scope, in model.Inbound) model.Response
}

// FallbackClassifier is the slow classification path, consulted only after
// the fast classifier declined and the intent cache missed.
type FallbackClassifier interface {
	Classify(ctx context.Context, text string, lang model.Language) (intent.Classification, error)
}

// StatusChecker looks up one ex-gratia application by reference number.
type StatusChecker interface {
	CheckStatus(ctx context.Context, referenceNo string) (*status.Application, error)
}
