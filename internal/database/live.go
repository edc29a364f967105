package database

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/studytrack/pkg/models"
)

// Watch turns a query into a live query: it emits a full snapshot
// immediately, then again after every committed write to any of the
// watched tables, until ctx is cancelled.
//
// Delivery is latest-wins through a 1-buffered channel: a consumer that
// falls behind skips intermediate snapshots but never observes stale
// data after a newer snapshot exists. A failed re-query is logged and
// skipped, leaving the consumer on its last-known-good snapshot.
func Watch[T any](ctx context.Context, s *Store, tables []Table, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	changes, cancel := s.broker.Subscribe(tables...)

	go func() {
		defer close(out)
		defer cancel()

		for {
			snap, err := query(ctx)
			switch {
			case err != nil && ctx.Err() != nil:
				return
			case err != nil:
				s.logger.Warn("live query failed, keeping last snapshot", zap.Error(err))
			default:
				// drop an unconsumed pending snapshot, then publish
				select {
				case <-out:
				default:
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-changes:
			}
		}
	}()

	return out
}

// WatchAllProjects emits all projects, newest first.
func (s *Store) WatchAllProjects(ctx context.Context) <-chan []models.Project {
	return Watch(ctx, s, []Table{TableProjects}, func(ctx context.Context) ([]models.Project, error) {
		return s.Projects.GetAll(ctx, s.db)
	})
}

// WatchActiveProject emits the active project, or nil when none is
// active.
func (s *Store) WatchActiveProject(ctx context.Context) <-chan *models.Project {
	return Watch(ctx, s, []Table{TableProjects}, func(ctx context.Context) (*models.Project, error) {
		return s.Projects.GetActive(ctx, s.db)
	})
}

// WatchAllUnits emits every unit across all projects.
func (s *Store) WatchAllUnits(ctx context.Context) <-chan []models.StudyUnit {
	return Watch(ctx, s, []Table{TableUnits}, func(ctx context.Context) ([]models.StudyUnit, error) {
		return s.Units.GetAll(ctx, s.db)
	})
}

// WatchUnitsForProject emits one project's units in display order.
func (s *Store) WatchUnitsForProject(ctx context.Context, projectID int64) <-chan []models.StudyUnit {
	return Watch(ctx, s, []Table{TableUnits}, func(ctx context.Context) ([]models.StudyUnit, error) {
		return s.Units.GetForProject(ctx, s.db, projectID)
	})
}

// WatchAllProblems emits every problem across all units.
func (s *Store) WatchAllProblems(ctx context.Context) <-chan []models.Problem {
	return Watch(ctx, s, []Table{TableProblems}, func(ctx context.Context) ([]models.Problem, error) {
		return s.Problems.GetAll(ctx, s.db)
	})
}

// WatchProblemsForUnit emits one unit's problems ordered by index.
func (s *Store) WatchProblemsForUnit(ctx context.Context, unitID int64) <-chan []models.Problem {
	return Watch(ctx, s, []Table{TableProblems}, func(ctx context.Context) ([]models.Problem, error) {
		return s.Problems.GetForUnit(ctx, s.db, unitID)
	})
}

// WatchAllLogs emits the full activity log.
func (s *Store) WatchAllLogs(ctx context.Context) <-chan []models.ActivityLog {
	return Watch(ctx, s, []Table{TableLogs}, func(ctx context.Context) ([]models.ActivityLog, error) {
		return s.Logs.GetAll(ctx, s.db)
	})
}
