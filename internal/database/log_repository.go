package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studytrack/pkg/models"
)

// LogRepository handles database operations for the append-only activity
// log. Rows are inserted and bulk-deleted, never updated.
type LogRepository struct{}

// Insert appends one activity-log row and fills in its generated id.
func (r LogRepository) Insert(ctx context.Context, q sqlx.ExtContext, l *models.ActivityLog) error {
	res, err := q.ExecContext(ctx,
		"INSERT INTO activity_logs (date, problem_id, is_correct) VALUES (?, ?, ?)",
		l.Date, l.ProblemID, l.IsCorrect)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get log id: %w", err)
	}
	l.ID = id
	return nil
}

// GetAll returns every activity-log row.
func (r LogRepository) GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := sqlx.SelectContext(ctx, q, &logs,
		"SELECT id, date, problem_id, is_correct FROM activity_logs")
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}
	return logs, nil
}

// CountForProblem returns the number of log rows referencing a problem.
func (r LogRepository) CountForProblem(ctx context.Context, q sqlx.ExtContext, problemID int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count,
		"SELECT COUNT(*) FROM activity_logs WHERE problem_id = ?", problemID)
	if err != nil {
		return 0, fmt.Errorf("failed to count logs for problem: %w", err)
	}
	return count, nil
}

// CountSince returns the number of log rows stamped at or after the
// given ms-epoch timestamp. The reminder scheduler uses this to decide
// whether any practice happened today.
func (r LogRepository) CountSince(ctx context.Context, q sqlx.ExtContext, sinceMillis int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count,
		"SELECT COUNT(*) FROM activity_logs WHERE date >= ?", sinceMillis)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent logs: %w", err)
	}
	return count, nil
}

// DeleteAll removes every activity-log row.
func (r LogRepository) DeleteAll(ctx context.Context, q sqlx.ExtContext) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM activity_logs"); err != nil {
		return fmt.Errorf("failed to delete activity logs: %w", err)
	}
	return nil
}
