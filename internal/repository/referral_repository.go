package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/okulpanel/rehberlik-api/internal/models"
)

// ReferralRepository manages persistence for referral records.
type ReferralRepository struct {
	db *sqlx.DB
}

// NewReferralRepository constructs a new repository.
func NewReferralRepository(db *sqlx.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// BulkInsert writes one row per referred student in a single statement.
func (r *ReferralRepository) BulkInsert(ctx context.Context, referrals []models.Referral) error {
	if len(referrals) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range referrals {
		if referrals[i].ID == "" {
			referrals[i].ID = uuid.NewString()
		}
		if referrals[i].Source == "" {
			referrals[i].Source = models.ReferralSourceWeb
		}
		if referrals[i].CreatedAt.IsZero() {
			referrals[i].CreatedAt = now
		}
	}
	query := `INSERT INTO referrals (id, teacher_name, class_key, class_display, student_name, reason, note, source, created_at)
VALUES (:id, :teacher_name, :class_key, :class_display, :student_name, :reason, :note, :source, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, referrals); err != nil {
		return fmt.Errorf("bulk insert referrals: %w", err)
	}
	return nil
}

// List returns referral history per provided filter.
func (r *ReferralRepository) List(ctx context.Context, filter models.ReferralFilter) ([]models.Referral, int, error) {
	base := "FROM referrals"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.TeacherName != "" {
		where = append(where, fmt.Sprintf("teacher_name = $%d", len(args)+1))
		args = append(args, filter.TeacherName)
	}
	if filter.ClassKey != "" {
		where = append(where, fmt.Sprintf("class_key = $%d", len(args)+1))
		args = append(args, filter.ClassKey)
	}
	if filter.Student != "" {
		where = append(where, fmt.Sprintf("student_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Student+"%")
	}
	if filter.Reason != "" {
		where = append(where, fmt.Sprintf("reason = $%d", len(args)+1))
		args = append(args, filter.Reason)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, teacher_name, class_key, class_display, student_name, reason, note, source, created_at
%s WHERE %s ORDER BY created_at %s LIMIT %d OFFSET %d`, base, whereClause, order, size, offset)
	var referrals []models.Referral
	if err := r.db.SelectContext(ctx, &referrals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list referrals: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count referrals: %w", err)
	}
	return referrals, total, nil
}

// Delete removes one referral record.
func (r *ReferralRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM referrals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats aggregates referral counts per reason and per class.
func (r *ReferralRepository) Stats(ctx context.Context) (*models.ReferralStats, error) {
	stats := &models.ReferralStats{}

	var first, last sql.NullTime
	if err := r.db.QueryRowxContext(ctx,
		"SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM referrals").
		Scan(&stats.Total, &first, &last); err != nil {
		return nil, fmt.Errorf("referral totals: %w", err)
	}
	if first.Valid {
		stats.FirstSeen = &first.Time
	}
	if last.Valid {
		stats.LastSeen = &last.Time
	}

	if err := r.db.SelectContext(ctx, &stats.ByReason,
		"SELECT reason, COUNT(*) AS count FROM referrals GROUP BY reason ORDER BY count DESC"); err != nil {
		return nil, fmt.Errorf("referrals by reason: %w", err)
	}
	if err := r.db.SelectContext(ctx, &stats.ByClass,
		"SELECT class_display, COUNT(*) AS count FROM referrals GROUP BY class_display ORDER BY count DESC"); err != nil {
		return nil, fmt.Errorf("referrals by class: %w", err)
	}
	return stats, nil
}
