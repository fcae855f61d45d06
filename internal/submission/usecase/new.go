package usecase

import (
	"smartgov-assistant/internal/submission"
	pkgLog "smartgov-assistant/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo submission.Repository
}

// New creates the submission use case.
func New(l pkgLog.Logger, repo submission.Repository) submission.UseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
