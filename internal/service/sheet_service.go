package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/provider"
)

// SheetClient is the slice of the spreadsheet provider the log needs.
type SheetClient interface {
	ReadRange(ctx context.Context, rangeA1 string) ([][]string, error)
	Append(ctx context.Context, rangeA1 string, rows [][]string) error
	CreateSheet(ctx context.Context, title string) error
}

// sheetHeader is the fixed 7-column header row of the referral log.
var sheetHeader = []string{"TarihSaat", "Öğretmen", "Sınıf/Şube", "Öğrenci", "Neden", "Not", "ReferralID"}

const sheetTimestampLayout = "02.01.2006 15:04"

// classDisplaySuffix is stripped from the class column of the spreadsheet
// rows only; other channels keep the full display string.
const classDisplaySuffix = " Şubesi"

// SheetService appends one row per referred student to the remote
// spreadsheet, creating the sheet tab and header row on first use.
type SheetService struct {
	client    SheetClient
	sheetName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewSheetService constructs the spreadsheet dispatcher.
func NewSheetService(client SheetClient, sheetName string, logger *zap.Logger) *SheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetService{
		client:    client,
		sheetName: sheetName,
		logger:    logger,
		now:       time.Now,
	}
}

// Append writes the batch to the sheet. refIDs is parallel to items and
// carries each persisted referral's id. Every row shares one timestamp
// captured when the append begins. Any failing step fails the whole append;
// rows already flushed by the remote service stay put.
func (s *SheetService) Append(ctx context.Context, items []dto.ReferralItem, refIDs []string) error {
	if len(items) == 0 {
		return nil
	}

	if err := s.ensureHeader(ctx); err != nil {
		return err
	}

	stamp := s.now().Format(sheetTimestampLayout)
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		refID := ""
		if i < len(refIDs) {
			refID = refIDs[i]
		}
		rows = append(rows, []string{
			stamp,
			item.TeacherName,
			strings.TrimSuffix(item.ClassDisplay, classDisplaySuffix),
			item.StudentName,
			item.Reason,
			item.Note,
			refID,
		})
	}

	dataRange := fmt.Sprintf("%s!A:G", s.sheetName)
	if err := s.client.Append(ctx, dataRange, rows); err != nil {
		return fmt.Errorf("append referral rows: %w", err)
	}
	return nil
}

// ensureHeader writes the header row once. Re-running against a sheet that
// already carries the header is a no-op; a missing sheet tab is created
// first.
func (s *SheetService) ensureHeader(ctx context.Context) error {
	headerRange := fmt.Sprintf("%s!A1:G1", s.sheetName)

	rows, err := s.client.ReadRange(ctx, headerRange)
	if err != nil {
		if !isMissingSheet(err) {
			return fmt.Errorf("read header row: %w", err)
		}
		s.logger.Info("creating referral log sheet", zap.String("sheet", s.sheetName))
		if err := s.client.CreateSheet(ctx, s.sheetName); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		rows = nil
	}

	if len(rows) > 0 && headerMatches(rows[0]) {
		return nil
	}

	if err := s.client.Append(ctx, headerRange, [][]string{sheetHeader}); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return nil
}

func headerMatches(row []string) bool {
	if len(row) != len(sheetHeader) {
		return false
	}
	for i, cell := range row {
		if cell != sheetHeader[i] {
			return false
		}
	}
	return true
}

// isMissingSheet recognises the API's "unable to parse range" rejection for
// a sheet tab that does not exist yet.
func isMissingSheet(err error) bool {
	var perr *provider.ProviderError
	if errors.As(err, &perr) {
		return perr.StatusCode == http.StatusBadRequest
	}
	return false
}
