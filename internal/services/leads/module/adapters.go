package module

import (
	"context"

	"caseflow/internal/adapters/dispatch"
	"caseflow/internal/adapters/sheets"
	"caseflow/internal/adapters/tracker"
	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
)

// defaultSheetColumns places webhook forward fields on the intake spreadsheet
// 1-based columns, override with a custom mapping when the sheet layout changes
var defaultSheetColumns = map[string]int{
	"task_id":      1,
	"task_name":    2,
	"link_intake":  3,
	"status":       4,
	"url":          5,
	"date_created": 6,
	"date_updated": 7,
}

// FromConfig builds the outbound adapters from the environment
// TRACKER_TOKEN is required, the dispatch and sheets legs stay nil when
// their endpoints are not configured
func FromConfig(ctx context.Context, cfg config.Conf) Adapters {
	log := logger.Named("leads")

	trackerCfg := cfg.Prefix("TRACKER_")
	ads := Adapters{
		Tracker: tracker.NewClient(tracker.Options{
			BaseURL: trackerCfg.MayString("BASE_URL", ""),
			Token:   trackerCfg.MustString("TOKEN"),
		}),
		ListID: trackerCfg.MayString("LIST_ID", ""),
	}

	if secret := trackerCfg.MayString("WEBHOOK_SECRET", ""); secret != "" {
		ads.Verifier = tracker.NewVerifier(secret)
	} else {
		log.Warn().Msg("webhook signature verification disabled, set TRACKER_WEBHOOK_SECRET")
	}

	if url := cfg.MayString("DISPATCH_URL", ""); url != "" {
		ads.Dispatch = dispatch.New(dispatch.Options{URL: url})
	}

	sheetsCfg := cfg.Prefix("SHEETS_")
	if id := sheetsCfg.MayString("SPREADSHEET_ID", ""); id != "" {
		client, err := sheets.NewClient(ctx, sheets.Options{
			SpreadsheetID:   id,
			SheetName:       sheetsCfg.MayString("SHEET_NAME", ""),
			CredentialsJSON: sheetsCfg.MayString("CREDENTIALS_JSON", ""),
			FieldMapping:    defaultSheetColumns,
		})
		if err != nil {
			log.Warn().Err(err).Msg("sheets client init failed, append leg disabled")
		} else {
			ads.Sheets = client
		}
	}

	return ads
}
