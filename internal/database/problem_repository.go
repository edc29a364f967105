package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studytrack/pkg/models"
)

// ProblemRepository handles database operations for problems.
type ProblemRepository struct{}

// InsertBatch creates all problem rows in one statement so a unit's
// problems appear atomically within the surrounding transaction. Ids are
// filled in on the passed slice.
func (r ProblemRepository) InsertBatch(ctx context.Context, q sqlx.ExtContext, problems []models.Problem) error {
	if len(problems) == 0 {
		return nil
	}

	query := "INSERT INTO problems (unit_id, problem_index, level, correct_count, wrong_count) VALUES "
	args := make([]interface{}, 0, len(problems)*5)
	for i, p := range problems {
		if i > 0 {
			query += ", "
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, p.UnitID, p.ProblemIndex, p.Level, p.CorrectCount, p.WrongCount)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert problems: %w", err)
	}

	// SQLite's LastInsertId is the id of the final row of the batch;
	// rows in a multi-values insert get consecutive ids.
	last, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get problem ids: %w", err)
	}
	first := last - int64(len(problems)) + 1
	for i := range problems {
		problems[i].ID = first + int64(i)
	}
	return nil
}

// GetByID returns a problem by id, or nil when it does not exist.
func (r ProblemRepository) GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*models.Problem, error) {
	var p models.Problem
	err := sqlx.GetContext(ctx, q, &p,
		"SELECT id, unit_id, problem_index, level, correct_count, wrong_count FROM problems WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &p, nil
}

// GetAll returns every problem across all units.
func (r ProblemRepository) GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.Problem, error) {
	var problems []models.Problem
	err := sqlx.SelectContext(ctx, q, &problems,
		"SELECT id, unit_id, problem_index, level, correct_count, wrong_count FROM problems")
	if err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}
	return problems, nil
}

// GetForUnit returns a unit's problems ordered by their index.
func (r ProblemRepository) GetForUnit(ctx context.Context, q sqlx.ExtContext, unitID int64) ([]models.Problem, error) {
	var problems []models.Problem
	err := sqlx.SelectContext(ctx, q, &problems,
		"SELECT id, unit_id, problem_index, level, correct_count, wrong_count FROM problems WHERE unit_id = ? ORDER BY problem_index ASC",
		unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get problems for unit: %w", err)
	}
	return problems, nil
}

// Update persists a problem's mutable fields (level and counters).
func (r ProblemRepository) Update(ctx context.Context, q sqlx.ExtContext, p models.Problem) error {
	res, err := q.ExecContext(ctx,
		"UPDATE problems SET level = ?, correct_count = ?, wrong_count = ? WHERE id = ?",
		p.Level, p.CorrectCount, p.WrongCount, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update problem: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteForUnit removes all problems owned by a unit.
func (r ProblemRepository) DeleteForUnit(ctx context.Context, q sqlx.ExtContext, unitID int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM problems WHERE unit_id = ?", unitID); err != nil {
		return fmt.Errorf("failed to delete problems for unit: %w", err)
	}
	return nil
}

// DeleteForProject removes all problems owned by any unit of a project.
func (r ProblemRepository) DeleteForProject(ctx context.Context, q sqlx.ExtContext, projectID int64) error {
	_, err := q.ExecContext(ctx,
		"DELETE FROM problems WHERE unit_id IN (SELECT id FROM units WHERE project_id = ?)", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete problems for project: %w", err)
	}
	return nil
}

// DeleteAll removes every problem row.
func (r ProblemRepository) DeleteAll(ctx context.Context, q sqlx.ExtContext) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM problems"); err != nil {
		return fmt.Errorf("failed to delete problems: %w", err)
	}
	return nil
}
