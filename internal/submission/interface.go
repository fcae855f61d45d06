package submission

import (
	"context"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/workflow"
)

// Repository appends completed records to durable storage.
type Repository interface {
	Append(ctx context.Context, record *Record) error
}

// UseCase finalizes completed workflows: it assigns a tracking identifier
// and hands the record to the repository.
type UseCase interface {
	Submit(ctx context.Context, kind workflow.Kind, scope model.Scope, lang model.Language, fields map[string]string) (string, error)
}
