package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/studytrack/pkg/models"
)

// UnitRepository handles database operations for study units.
type UnitRepository struct{}

// Insert creates a unit row and fills in its generated id.
func (r UnitRepository) Insert(ctx context.Context, q sqlx.ExtContext, u *models.StudyUnit) error {
	res, err := q.ExecContext(ctx,
		"INSERT INTO units (project_id, name, problem_count, sort_order) VALUES (?, ?, ?, ?)",
		u.ProjectID, u.Name, u.ProblemCount, u.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert unit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get unit id: %w", err)
	}
	u.ID = id
	return nil
}

// GetAll returns every unit across all projects.
func (r UnitRepository) GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.StudyUnit, error) {
	var units []models.StudyUnit
	err := sqlx.SelectContext(ctx, q, &units,
		"SELECT id, project_id, name, problem_count, sort_order FROM units")
	if err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}
	return units, nil
}

// GetForProject returns the units of one project in display order.
func (r UnitRepository) GetForProject(ctx context.Context, q sqlx.ExtContext, projectID int64) ([]models.StudyUnit, error) {
	var units []models.StudyUnit
	err := sqlx.SelectContext(ctx, q, &units,
		"SELECT id, project_id, name, problem_count, sort_order FROM units WHERE project_id = ? ORDER BY sort_order ASC",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get units for project: %w", err)
	}
	return units, nil
}

// Delete removes a single unit row.
func (r UnitRepository) Delete(ctx context.Context, q sqlx.ExtContext, id int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM units WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

// DeleteForProject removes all units owned by a project.
func (r UnitRepository) DeleteForProject(ctx context.Context, q sqlx.ExtContext, projectID int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM units WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("failed to delete units for project: %w", err)
	}
	return nil
}

// DeleteAll removes every unit row.
func (r UnitRepository) DeleteAll(ctx context.Context, q sqlx.ExtContext) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM units"); err != nil {
		return fmt.Errorf("failed to delete units: %w", err)
	}
	return nil
}
