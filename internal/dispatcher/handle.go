package dispatcher

import (
	"context"
	"errors"
	"time"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/observe"
	"smartgov-assistant/internal/session"
	"smartgov-assistant/internal/status"
	"smartgov-assistant/internal/workflow"
)

func (d *implDispatcher) Handle(ctx context.Context, scope model.Scope, in model.Inbound) model.Response {
	start := time.Now()

	sess := d.sessions.GetOrCreate(scope.UserID)
	sess.Lock()
	defer sess.Unlock()
	d.sessions.Touch(sess)

	resp, ev := d.handle(ctx, scope, sess, in)
	ev.UserID = scope.UserID
	ev.LatencyMs = time.Since(start).Milliseconds()
	d.events.Record(ctx, ev)
	return resp
}

// handle runs the pipeline with the session lock held:
// location routing, language detection, the active workflow, then
// classification (fast, cache, fallback) and intent dispatch.
func (d *implDispatcher) handle(ctx context.Context, scope model.Scope, sess *session.Session, in model.Inbound) (model.Response, observe.Event) {
	if in.Location != nil {
		return d.handleLocation(ctx, sess, *in.Location)
	}

	det := d.detector.Detect(in.Text, sess.Language)
	if det.Persist {
		d.l.Infof(ctx, "language preference for user %s set to %s (score %.1f)", sess.UserID, det.Language, det.Score)
		sess.Language = det.Language
	}
	lang := det.Language

	// An active workflow consumes every text input. Cancellation and
	// confirmation words are interpreted by the machine itself.
	if sess.Active != nil && !sess.Active.Terminal() {
		return d.stepWorkflow(ctx, sess, in.Text)
	}

	cls, ev := d.classify(ctx, in.Text, lang)
	if cls == nil {
		return d.static(replyUnclassified, lang, nil), ev
	}
	ev.Intent = string(cls.Intent)

	return d.dispatch(ctx, scope, sess, lang, cls.Intent), ev
}

func (d *implDispatcher) handleLocation(ctx context.Context, sess *session.Session, loc model.Location) (model.Response, observe.Event) {
	ev := observe.Event{Stage: "location"}
	lang := sess.Language.OrDefault()

	if !sess.AwaitingLocation() {
		return d.static(replyUnexpectedLocation, lang, nil), ev
	}

	res, err := sess.Active.StepLocation(ctx, loc)
	if err != nil {
		return model.Response{Text: res.Prompt}, ev
	}
	if sess.Active.Terminal() {
		sess.Active = nil
	}
	return model.Response{Text: res.Prompt}, ev
}

func (d *implDispatcher) stepWorkflow(ctx context.Context, sess *session.Session, text string) (model.Response, observe.Event) {
	ev := observe.Event{Stage: "workflow"}

	if err := sess.Active.CheckInvariants(); err != nil {
		d.l.Errorf(ctx, "session %s corrupted, resetting: %v", sess.UserID, err)
		lang := sess.Active.Language()
		d.sessions.Reset(sess)
		sess.Active = nil
		return d.static(replyCorrupted, lang, nil), ev
	}

	res, err := sess.Active.StepText(ctx, text)
	switch {
	case err == nil, errors.Is(err, workflow.ErrValidation), errors.Is(err, workflow.ErrSubmit):
		// The prompt already carries the retry or failure message.
	case errors.Is(err, workflow.ErrTerminal):
		sess.Active = nil
		return d.static(replyUnclassified, sess.Language.OrDefault(), nil), ev
	default:
		d.l.Errorf(ctx, "workflow step failed for user %s: %v", sess.UserID, err)
	}

	if sess.Active != nil && sess.Active.Terminal() {
		sess.Active = nil
	}
	return model.Response{Text: res.Prompt}, ev
}

// classify resolves the intent of free text: fast rules first, then the
// intent cache, then the remote fallback. A nil result means even the
// fallback could not help and the caller should send the guidance reply.
func (d *implDispatcher) classify(ctx context.Context, text string, lang model.Language) (*intent.Classification, observe.Event) {
	normalized := intent.Normalize(text)

	// Inline keyboard callbacks deliver the intent tag itself.
	if tag, ok := intent.Known(normalized); ok {
		return &intent.Classification{Intent: tag, Confidence: 1, Source: intent.SourceFast},
			observe.Event{Stage: "fast"}
	}

	if hit := d.fast.Classify(text); hit != nil {
		return hit, observe.Event{Stage: "fast"}
	}

	if cached, ok := d.intentCache.Get(normalized); ok {
		cached.Source = intent.SourceCached
		return &cached, observe.Event{Stage: "cache", CacheHit: true}
	}

	result, err := d.fallback.Classify(ctx, text, lang)
	if err != nil {
		d.l.Warnf(ctx, "fallback classification failed: %v", err)
		return nil, observe.Event{Stage: "unclassified"}
	}
	return &result, observe.Event{Stage: "fallback"}
}

func (d *implDispatcher) dispatch(ctx context.Context, scope model.Scope, sess *session.Session, lang model.Language, tag intent.Intent) model.Response {
	switch tag {
	case intent.IntentGreeting:
		return d.static(replyWelcome, lang, menuButtons(lang))
	case intent.IntentHelp:
		return d.static(replyHelp, lang, menuButtons(lang))
	case intent.IntentNorms:
		return d.static(replyNorms, lang, nil)
	case intent.IntentProcedure:
		return d.static(replyProcedure, lang, nil)
	case intent.IntentEmergency:
		return d.static(replyEmergency, lang, nil)
	case intent.IntentContacts:
		return d.static(replyContacts, lang, nil)
	case intent.IntentCancel:
		// Reachable only without an active workflow.
		return d.static(replyNothingToCancel, lang, nil)
	case intent.IntentApply:
		return d.startWorkflow(sess, scope, lang, workflow.ReliefSpec())
	case intent.IntentStatus:
		return d.startWorkflow(sess, scope, lang, workflow.StatusSpec())
	case intent.IntentFeedback:
		return d.startWorkflow(sess, scope, lang, workflow.FeedbackSpec())
	default:
		return d.static(replyUnclassified, lang, nil)
	}
}

func (d *implDispatcher) startWorkflow(sess *session.Session, scope model.Scope, lang model.Language, spec workflow.KindSpec) model.Response {
	m := workflow.NewMachine(spec, lang, d.submitterFor(spec.Kind, scope))
	sess.Active = m
	return model.Response{Text: m.Start().Prompt}
}

// submitterFor binds the kind's finalization to its collaborator: lookups
// go to the status API, everything else is persisted through the
// submission use case.
func (d *implDispatcher) submitterFor(kind workflow.Kind, scope model.Scope) workflow.Submitter {
	if kind == workflow.KindStatus {
		return workflow.SubmitterFunc(func(ctx context.Context, _ workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
			if d.status == nil {
				return renderStatusUnavailable(lang), nil
			}
			app, err := d.status.CheckStatus(ctx, fields["application_id"])
			if errors.Is(err, status.ErrNotFound) {
				return renderStatusNotFound(lang, fields["application_id"]), nil
			}
			if err != nil {
				d.l.Errorf(ctx, "status lookup for %s failed: %v", fields["application_id"], err)
				return renderStatusUnavailable(lang), nil
			}
			return renderStatus(lang, app), nil
		})
	}

	return workflow.SubmitterFunc(func(ctx context.Context, kind workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
		return d.submissions.Submit(ctx, kind, scope, lang, fields)
	})
}

// static serves a fixed per-language reply through the response cache.
func (d *implDispatcher) static(key replyKey, lang model.Language, buttons [][]model.Button) model.Response {
	cacheKey := string(key) + "|" + string(lang)
	if hit, ok := d.responseCache.Get(cacheKey); ok {
		return hit
	}
	resp := model.Response{Text: replyText(key, lang), Buttons: buttons}
	d.responseCache.Put(cacheKey, resp)
	return resp
}
