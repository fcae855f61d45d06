package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"smartgov-assistant/internal/submission"
	pkgLog "smartgov-assistant/pkg/log"
)

// Config locates the spreadsheet and the service account credentials.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

type implRepository struct {
	l   pkgLog.Logger
	svc *sheets.Service
	cfg Config
}

// New creates a Google Sheets repository from a service account JSON file.
func New(ctx context.Context, l pkgLog.Logger, cfg Config) (submission.Repository, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	if cfg.SheetName == "" {
		cfg.SheetName = "Submissions"
	}

	return &implRepository{l: l, svc: svc, cfg: cfg}, nil
}
