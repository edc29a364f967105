package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/studytrack/pkg/models"
)

// ProjectRepository handles database operations for projects. Methods
// take an ExtContext so they run either on the plain handle or inside a
// transaction.
type ProjectRepository struct{}

// Insert creates a project row and fills in its generated id.
func (r ProjectRepository) Insert(ctx context.Context, q sqlx.ExtContext, p *models.Project) error {
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixMilli()
	}
	res, err := q.ExecContext(ctx,
		"INSERT INTO projects (name, is_active, created_at) VALUES (?, ?, ?)",
		p.Name, p.IsActive, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get project id: %w", err)
	}
	p.ID = id
	return nil
}

// GetAll returns all projects, newest first.
func (r ProjectRepository) GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.Project, error) {
	var projects []models.Project
	err := sqlx.SelectContext(ctx, q, &projects,
		"SELECT id, name, is_active, created_at FROM projects ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// GetActive returns the active project, or nil when none is active.
func (r ProjectRepository) GetActive(ctx context.Context, q sqlx.ExtContext) (*models.Project, error) {
	var p models.Project
	err := sqlx.GetContext(ctx, q, &p,
		"SELECT id, name, is_active, created_at FROM projects WHERE is_active = 1 LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active project: %w", err)
	}
	return &p, nil
}

// GetByID returns a project by id, or nil when it does not exist.
func (r ProjectRepository) GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*models.Project, error) {
	var p models.Project
	err := sqlx.GetContext(ctx, q, &p,
		"SELECT id, name, is_active, created_at FROM projects WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// DeactivateAll clears the active flag on every project.
func (r ProjectRepository) DeactivateAll(ctx context.Context, q sqlx.ExtContext) error {
	if _, err := q.ExecContext(ctx, "UPDATE projects SET is_active = 0"); err != nil {
		return fmt.Errorf("failed to deactivate projects: %w", err)
	}
	return nil
}

// Activate marks one project active. Callers deactivate the rest first,
// inside the same transaction.
func (r ProjectRepository) Activate(ctx context.Context, q sqlx.ExtContext, id int64) error {
	if _, err := q.ExecContext(ctx, "UPDATE projects SET is_active = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to activate project: %w", err)
	}
	return nil
}

// Delete removes a single project row. Children are deleted first by the
// service layer.
func (r ProjectRepository) Delete(ctx context.Context, q sqlx.ExtContext, id int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// DeleteAll removes every project row.
func (r ProjectRepository) DeleteAll(ctx context.Context, q sqlx.ExtContext) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("failed to delete projects: %w", err)
	}
	return nil
}
