package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/okulpanel/rehberlik-api/pkg/config"
)

// SheetsClient talks to one configured Google Sheets document using service
// account credentials.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsClient authenticates against the Sheets API.
func NewSheetsClient(ctx context.Context, cfg config.SheetsConfig) (*SheetsClient, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if strings.TrimSpace(cfg.CredentialsFile) == "" {
		return nil, fmt.Errorf("sheets credentials file is required")
	}

	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsClient{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// ReadRange fetches cell values for an A1 range. A missing sheet tab is
// reported as a *ProviderError with the API's 400 status so callers can
// decide to create it.
func (c *SheetsClient) ReadRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, wrapSheetsError(err, "read range")
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds rows after the last non-empty row of the range.
func (c *SheetsClient) Append(ctx context.Context, rangeA1 string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rangeA1, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return wrapSheetsError(err, "append rows")
	}
	return nil
}

// CreateSheet adds a new tab with the given title to the document.
func (c *SheetsClient) CreateSheet(ctx context.Context, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return wrapSheetsError(err, "create sheet")
	}
	return nil
}

func wrapSheetsError(err error, op string) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		return &ProviderError{
			StatusCode: gerr.Code,
			Body:       gerr.Message,
			Message:    fmt.Sprintf("sheets %s failed", op),
			Cause:      err,
		}
	}
	return &ProviderError{Message: fmt.Sprintf("sheets %s failed", op), Cause: err}
}
