package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Connect(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConnectCreatesSchema(t *testing.T) {
	s := newTestStore(t)

	var tables []string
	err := s.DB().Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	assert.Contains(t, tables, "projects")
	assert.Contains(t, tables, "units")
	assert.Contains(t, tables, "problems")
	assert.Contains(t, tables, "activity_logs")
}

func TestLegacyMigrationBackfillsDefaultProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// Seed a v1 database: units without project scoping, no projects table.
	legacy, err := sqlx.Connect("sqlite3", path)
	require.NoError(t, err)
	_, err = legacy.Exec(`CREATE TABLE units (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		problem_count INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = legacy.Exec("INSERT INTO units (name, problem_count) VALUES ('U1', 3), ('U2', 2)")
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	s, err := Connect(path, nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	units, err := s.Units.GetAll(ctx, s.DB())
	require.NoError(t, err)
	require.Len(t, units, 2)
	for _, u := range units {
		assert.Equal(t, int64(0), u.ProjectID)
	}

	project, err := s.Projects.GetByID(ctx, s.DB(), 0)
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "Default", project.Name)
	assert.True(t, project.IsActive)
}

func TestProblemBatchInsertAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	problems := []models.Problem{
		{UnitID: 1, ProblemIndex: 1},
		{UnitID: 1, ProblemIndex: 2},
		{UnitID: 1, ProblemIndex: 3},
	}
	require.NoError(t, s.Problems.InsertBatch(ctx, s.DB(), problems))

	for i, p := range problems {
		assert.Equal(t, problems[0].ID+int64(i), p.ID)
	}

	stored, err := s.Problems.GetForUnit(ctx, s.DB(), 1)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, p := range stored {
		assert.Equal(t, i+1, p.ProblemIndex)
	}
}

func TestBrokerCoalescesAndCancels(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(TableProblems)

	b.Notify(TableProblems)
	b.Notify(TableProblems) // coalesced into the pending signal
	b.Notify(TableProjects) // not watched

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("signals must coalesce")
	default:
	}

	cancel()
	b.Notify(TableProblems)
	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive")
	default:
	}
}

func TestWatchEmitsInitialAndChangedSnapshots(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	projects := s.WatchAllProjects(ctx)

	initial := receive(t, projects)
	assert.Empty(t, initial)

	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.Projects.Insert(ctx, tx, &models.Project{Name: "Calculus"})
	}, TableProjects)
	require.NoError(t, err)

	next := receive(t, projects)
	require.Len(t, next, 1)
	assert.Equal(t, "Calculus", next[0].Name)
}

func TestWithTxRollsBackAndSuppressesNotification(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch, cancelSub := s.broker.Subscribe(TableProjects)
	defer cancelSub()

	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.Projects.Insert(ctx, tx, &models.Project{Name: "Doomed"}); err != nil {
			return err
		}
		return assert.AnError
	}, TableProjects)
	require.Error(t, err)

	select {
	case <-ch:
		t.Fatal("rolled-back transaction must not notify")
	default:
	}

	all, err := s.Projects.GetAll(ctx, s.DB())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		panic("unreachable")
	}
}
