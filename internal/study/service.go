// Package study is the core service layer. It owns every mutating
// operation of the application and guarantees the multi-statement
// sequences the data model depends on (mark-result's problem+log pair,
// provisioning's project+units+problems batch, the deactivate-then-
// activate switch, parent-last cascade deletes) each run in a single
// store transaction.
package study

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/proficiency"
	"github.com/example/studytrack/internal/provision"
	"github.com/example/studytrack/pkg/apperrors"
	"github.com/example/studytrack/pkg/models"
)

// Service exposes the command surface consumed by the presentation
// collaborator. All methods are synchronous and return errors as values;
// callers that need fire-and-forget semantics run them in their own
// goroutines and observe results through the live queries.
type Service struct {
	store  *database.Store
	logger *zap.Logger
}

// NewService wires a service over an open store.
func NewService(store *database.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store for live-query composition.
func (s *Service) Store() *database.Store { return s.store }

// MarkResult records one practice attempt: the problem's level moves
// through the proficiency state machine, its correct/wrong counter is
// incremented, and exactly one activity-log row is appended — all in one
// transaction so the log count always matches the problem's totals.
// A missing problem id returns apperrors.ErrNotFound with no writes.
func (s *Service) MarkResult(ctx context.Context, problemID int64, isCorrect bool) error {
	var level int

	// The read happens inside the transaction so concurrent marks on the
	// same problem serialize and no counter increment is lost.
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		problem, err := s.store.Problems.GetByID(ctx, tx, problemID)
		if err != nil {
			return err
		}
		if problem == nil {
			return apperrors.ErrNotFound
		}

		proficiency.Apply(problem, isCorrect)
		level = problem.Level

		if err := s.store.Problems.Update(ctx, tx, *problem); err != nil {
			return err
		}
		log := models.ActivityLog{
			Date:      time.Now().UnixMilli(),
			ProblemID: problemID,
			IsCorrect: isCorrect,
		}
		return s.store.Logs.Insert(ctx, tx, &log)
	}, database.TableProblems, database.TableLogs)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.Storage("mark result", err)
	}

	s.logger.Debug("marked result",
		zap.Int64("problem_id", problemID),
		zap.Bool("correct", isCorrect),
		zap.Int("level", level))
	return nil
}

// CreateProjectWithUnits validates and provisions a complete problem
// set: the project row, one unit per parsed definition (sort order =
// input position) and every constituent problem (indexes 1..count).
// When autoActivate is set the new project becomes the single active one
// inside the same transaction. Validation failures occur before any
// write; storage failures roll the whole batch back.
func (s *Service) CreateProjectWithUnits(ctx context.Context, name, definitionsText string, autoActivate bool) (int64, error) {
	defs := provision.ParseUnitDefinitions(definitionsText)
	if err := provision.Validate(name, defs); err != nil {
		return 0, err
	}
	return s.createProject(ctx, strings.TrimSpace(name), defs, autoActivate)
}

// CreateProjectFromDefinitions provisions a project from already-parsed
// definitions (e.g. an Excel import). Validation is identical to
// CreateProjectWithUnits.
func (s *Service) CreateProjectFromDefinitions(ctx context.Context, name string, defs []provision.UnitDefinition, autoActivate bool) (int64, error) {
	if err := provision.Validate(name, defs); err != nil {
		return 0, err
	}
	return s.createProject(ctx, strings.TrimSpace(name), defs, autoActivate)
}

func (s *Service) createProject(ctx context.Context, name string, defs []provision.UnitDefinition, autoActivate bool) (int64, error) {
	project := models.Project{Name: name, IsActive: autoActivate}

	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if autoActivate {
			if err := s.store.Projects.DeactivateAll(ctx, tx); err != nil {
				return err
			}
		}
		if err := s.store.Projects.Insert(ctx, tx, &project); err != nil {
			return err
		}

		for i, def := range defs {
			unit := models.StudyUnit{
				ProjectID:    project.ID,
				Name:         def.Name,
				ProblemCount: def.Count,
				SortOrder:    i,
			}
			if err := s.store.Units.Insert(ctx, tx, &unit); err != nil {
				return err
			}

			problems := make([]models.Problem, def.Count)
			for j := range problems {
				problems[j] = models.Problem{UnitID: unit.ID, ProblemIndex: j + 1}
			}
			if err := s.store.Problems.InsertBatch(ctx, tx, problems); err != nil {
				return err
			}
		}
		return nil
	}, database.TableProjects, database.TableUnits, database.TableProblems)
	if err != nil {
		return 0, apperrors.Storage("create project", err)
	}

	s.logger.Info("created project",
		zap.Int64("project_id", project.ID),
		zap.String("name", name),
		zap.Int("units", len(defs)))
	return project.ID, nil
}

// ActivateProject makes the given project the single active one. The
// deactivate-all and activate steps share a transaction, so readers
// never observe two active projects.
func (s *Service) ActivateProject(ctx context.Context, projectID int64) error {
	project, err := s.store.Projects.GetByID(ctx, s.store.DB(), projectID)
	if err != nil {
		return apperrors.Storage("load project", err)
	}
	if project == nil {
		return apperrors.ErrNotFound
	}

	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.store.Projects.DeactivateAll(ctx, tx); err != nil {
			return err
		}
		return s.store.Projects.Activate(ctx, tx, projectID)
	}, database.TableProjects)
	if err != nil {
		return apperrors.Storage("activate project", err)
	}
	return nil
}

// DeleteProject removes a project and everything it owns, children
// first: problems, then units, then the project row.
func (s *Service) DeleteProject(ctx context.Context, projectID int64) error {
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.store.Problems.DeleteForProject(ctx, tx, projectID); err != nil {
			return err
		}
		if err := s.store.Units.DeleteForProject(ctx, tx, projectID); err != nil {
			return err
		}
		return s.store.Projects.Delete(ctx, tx, projectID)
	}, database.TableProjects, database.TableUnits, database.TableProblems)
	if err != nil {
		return apperrors.Storage("delete project", err)
	}

	s.logger.Info("deleted project", zap.Int64("project_id", projectID))
	return nil
}

// DeleteUnit removes a unit and its problems, children first.
func (s *Service) DeleteUnit(ctx context.Context, unitID int64) error {
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.store.Problems.DeleteForUnit(ctx, tx, unitID); err != nil {
			return err
		}
		return s.store.Units.Delete(ctx, tx, unitID)
	}, database.TableUnits, database.TableProblems)
	if err != nil {
		return apperrors.Storage("delete unit", err)
	}

	s.logger.Info("deleted unit", zap.Int64("unit_id", unitID))
	return nil
}

// ClearAllData wipes every table: logs, problems, units, projects.
func (s *Service) ClearAllData(ctx context.Context) error {
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.store.Logs.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.store.Problems.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.store.Units.DeleteAll(ctx, tx); err != nil {
			return err
		}
		return s.store.Projects.DeleteAll(ctx, tx)
	}, database.TableProjects, database.TableUnits, database.TableProblems, database.TableLogs)
	if err != nil {
		return apperrors.Storage("clear all data", err)
	}

	s.logger.Warn("cleared all data")
	return nil
}
