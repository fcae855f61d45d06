package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"

	"smartgov-assistant/internal/submission"
)

func (r *implRepository) Append(ctx context.Context, record *submission.Record) error {
	row := make([]interface{}, 0, 6+len(record.Fields))
	row = append(row,
		record.SubmittedAt.Format(time.RFC3339),
		record.TrackingID,
		string(record.Kind),
		record.UserID,
		record.Username,
		string(record.Language),
	)
	for _, f := range record.Fields {
		row = append(row, f.Value)
	}

	_, err := r.svc.Spreadsheets.Values.
		Append(r.cfg.SpreadsheetID, r.cfg.SheetName, &sheets.ValueRange{
			Values: [][]interface{}{row},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to sheet: %w", err)
	}

	r.l.Debugf(ctx, "sheets.Append: wrote %s to %s", record.TrackingID, r.cfg.SheetName)
	return nil
}
