package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/submission"
	"smartgov-assistant/internal/workflow"
)

func (uc *implUseCase) Submit(ctx context.Context, kind workflow.Kind, scope model.Scope, lang model.Language, fields map[string]string) (string, error) {
	trackingID := newTrackingID(kind)

	record := &submission.Record{
		TrackingID:  trackingID,
		Kind:        kind,
		UserID:      scope.UserID,
		Username:    scope.Username,
		Language:    lang,
		Fields:      orderedFields(kind, fields),
		SubmittedAt: time.Now(),
	}

	if err := uc.repo.Append(ctx, record); err != nil {
		uc.l.Errorf(ctx, "submission.Submit: append %s failed: %v", trackingID, err)
		return "", fmt.Errorf("%w: %v", submission.ErrPersist, err)
	}

	uc.l.Infof(ctx, "submission.Submit: persisted %s kind=%s user=%s", trackingID, kind, scope.UserID)
	return trackingID, nil
}

// newTrackingID builds the citizen-facing reference. Ex-gratia applications
// follow the district office numbering scheme; other kinds get an opaque
// short reference.
func newTrackingID(kind workflow.Kind) string {
	switch kind {
	case workflow.KindRelief:
		return fmt.Sprintf("24EXG%s%04d", time.Now().Format("060102"), uuid.New().ID()%10000)
	default:
		return "FB-" + strings.ToUpper(uuid.NewString()[:8])
	}
}

// orderedFields lines values up with the kind's declared field order so
// every persisted row has the same column layout. Unknown keys are appended
// at the end rather than dropped.
func orderedFields(kind workflow.Kind, fields map[string]string) []submission.Field {
	spec := specFor(kind)
	seen := make(map[string]struct{}, len(fields))
	out := make([]submission.Field, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		out = append(out, submission.Field{Name: f.Name, Value: fields[f.Name]})
		seen[f.Name] = struct{}{}
	}
	for name, value := range fields {
		if _, ok := seen[name]; !ok {
			out = append(out, submission.Field{Name: name, Value: value})
		}
	}
	return out
}

func specFor(kind workflow.Kind) workflow.KindSpec {
	switch kind {
	case workflow.KindRelief:
		return workflow.ReliefSpec()
	case workflow.KindStatus:
		return workflow.StatusSpec()
	default:
		return workflow.FeedbackSpec()
	}
}
