// Package sheets appends qualifying intake rows to a Google spreadsheet
package sheets

import (
	"context"
	"fmt"

	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"

	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"
)

// Options configures the sheets client
type Options struct {
	SpreadsheetID string
	SheetName     string

	// FieldMapping maps data keys to 1-based spreadsheet columns
	FieldMapping map[string]int

	// CredentialsJSON holds a service account key, empty means
	// Application Default Credentials (Cloud Run identity or local gcloud)
	CredentialsJSON string
}

// Client wraps the sheets API for row appends
type Client struct {
	svc  *gsheets.Service
	opts Options
	log  logger.Logger
}

// NewClient authenticates and builds a Client
// ADC is preferred, a service account key is the fallback
func NewClient(ctx context.Context, o Options) (*Client, error) {
	if o.SpreadsheetID == "" {
		return nil, perr.InvalidArgf("sheets spreadsheet id required")
	}
	if o.SheetName == "" {
		o.SheetName = "Sheet1"
	}

	var opts []option.ClientOption
	if o.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(o.CredentialsJSON)))
	} else {
		creds, err := google.FindDefaultCredentials(ctx, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets default credentials")
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets service init")
	}

	return &Client{
		svc:  svc,
		opts: o,
		log:  *logger.Named("sheets"),
	}, nil
}

// AppendRow writes one row, placing data values by the configured column mapping
// keys missing from data leave their column blank, keys missing from the
// mapping are ignored
func (c *Client) AppendRow(ctx context.Context, data map[string]string) error {
	if len(c.opts.FieldMapping) == 0 {
		return perr.InvalidArgf("sheets field mapping required")
	}

	maxCol := 0
	for _, col := range c.opts.FieldMapping {
		if col > maxCol {
			maxCol = col
		}
	}

	row := make([]any, maxCol)
	for i := range row {
		row[i] = ""
	}
	for key, col := range c.opts.FieldMapping {
		if col < 1 || col > maxCol {
			continue
		}
		if v, ok := data[key]; ok {
			row[col-1] = v
		}
	}

	vr := &gsheets.ValueRange{Values: [][]any{row}}
	rangeRef := fmt.Sprintf("%s!A1", c.opts.SheetName)

	_, err := c.svc.Spreadsheets.Values.
		Append(c.opts.SpreadsheetID, rangeRef, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets append row")
	}

	c.log.Debug().Str("spreadsheet", c.opts.SpreadsheetID).Str("sheet", c.opts.SheetName).Msg("sheets row appended")
	return nil
}
