package dispatcher

import (
	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/language"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/observe"
	"smartgov-assistant/internal/session"
	"smartgov-assistant/internal/submission"
	"smartgov-assistant/pkg/cache"
	pkgLog "smartgov-assistant/pkg/log"
)

// Dependencies are the collaborators the dispatcher orchestrates. All are
// required except Status, which may be nil when the upstream API is not
// configured; status lookups then report the service as unavailable.
type Dependencies struct {
	Sessions      *session.Store
	Detector      *language.Detector
	Fast          *intent.FastClassifier
	Fallback      FallbackClassifier
	IntentCache   *cache.Cache[intent.Classification]
	ResponseCache *cache.Cache[model.Response]
	Submissions   submission.UseCase
	Status        StatusChecker
	Events        observe.Sink
}

type implDispatcher struct {
	l             pkgLog.Logger
	sessions      *session.Store
	detector      *language.Detector
	fast          *intent.FastClassifier
	fallback      FallbackClassifier
	intentCache   *cache.Cache[intent.Classification]
	responseCache *cache.Cache[model.Response]
	submissions   submission.UseCase
	status        StatusChecker
	events        observe.Sink
}

// New creates the dispatcher.
func New(l pkgLog.Logger, deps Dependencies) Dispatcher {
	return &implDispatcher{
		l:             l,
		sessions:      deps.Sessions,
		detector:      deps.Detector,
		fast:          deps.Fast,
		fallback:      deps.Fallback,
		intentCache:   deps.IntentCache,
		responseCache: deps.ResponseCache,
		submissions:   deps.Submissions,
		status:        deps.Status,
		events:        deps.Events,
	}
}
