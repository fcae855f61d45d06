package submission

import (
	"time"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/workflow"
)

// Field is one collected value, kept in collection order so persisted rows
// line up with the form schema.
type Field struct {
	Name  string
	Value string
}

// Record is one completed form ready for persistence.
type Record struct {
	TrackingID  string
	Kind        workflow.Kind
	UserID      string
	Username    string
	Language    model.Language
	Fields      []Field
	SubmittedAt time.Time
}
