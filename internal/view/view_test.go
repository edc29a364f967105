package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/study"
)

func newTestService(t *testing.T) *study.Service {
	t.Helper()
	store, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return study.NewService(store, nil)
}

// waitFor consumes snapshots until one satisfies cond. Emissions are
// coalescing, so intermediate states may be skipped; polling for the
// target condition is the reliable way to observe the stream.
func waitFor[T any](t *testing.T, ch <-chan T, cond func(T) bool) T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				t.Fatal("stream closed before condition was met")
			}
			if cond(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot condition")
		}
	}
}

func TestWatchHomeEmptyThenPopulated(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	home := WatchHome(ctx, svc.Store())

	empty := waitFor(t, home, func(s HomeState) bool { return s.Phase == PhaseEmpty })
	assert.Nil(t, empty.ActiveProject)
	assert.Empty(t, empty.Units)

	_, err := svc.CreateProjectWithUnits(ctx, "Calculus", "U1: 3\nU2: 2", true)
	require.NoError(t, err)

	populated := waitFor(t, home, func(s HomeState) bool {
		return s.Phase == PhasePopulated && len(s.Units) == 2 &&
			len(s.Projects) == 1 && s.Projects[0].UnitCount == 2 &&
			s.Projects[0].TotalProblems == 5
	})
	require.NotNil(t, populated.ActiveProject)
	assert.Equal(t, "Calculus", populated.ActiveProject.Name)

	require.Len(t, populated.Projects, 1)
	assert.Equal(t, 2, populated.Projects[0].UnitCount)
	assert.Equal(t, 5, populated.Projects[0].TotalProblems)

	assert.Equal(t, "U1", populated.Units[0].Unit.Name)
	assert.Equal(t, 3, populated.Units[0].TotalProblems)
	assert.Equal(t, "U2", populated.Units[1].Unit.Name)
	assert.Equal(t, 2, populated.Units[1].TotalProblems)
}

func TestWatchHomeResubscribesOnActiveProjectSwitch(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := svc.CreateProjectWithUnits(ctx, "A", "A1: 1\nA2: 1\nA3: 1", true)
	require.NoError(t, err)
	b, err := svc.CreateProjectWithUnits(ctx, "B", "B1: 1", false)
	require.NoError(t, err)

	home := WatchHome(ctx, svc.Store())

	onA := waitFor(t, home, func(s HomeState) bool {
		return s.Phase == PhasePopulated && s.ActiveProject != nil && s.ActiveProject.ID == a
	})
	require.Len(t, onA.Units, 3)

	require.NoError(t, svc.ActivateProject(ctx, b))

	onB := waitFor(t, home, func(s HomeState) bool {
		return s.Phase == PhasePopulated && s.ActiveProject != nil && s.ActiveProject.ID == b
	})
	require.Len(t, onB.Units, 1)
	assert.Equal(t, "B1", onB.Units[0].Unit.Name)
	assert.Equal(t, b, onB.Units[0].Unit.ProjectID)
}

func TestWatchGridLabelsFollowPreference(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.CreateProjectWithUnits(ctx, "P", "U1: 2", true)
	require.NoError(t, err)

	units, err := svc.Store().Units.GetAll(ctx, svc.Store().DB())
	require.NoError(t, err)
	require.Len(t, units, 1)
	unitID := units[0].ID

	prefs := NewPreferences()
	grid := WatchGrid(ctx, svc.Store(), prefs, unitID)

	dash := waitFor(t, grid, func(s GridState) bool { return s.Phase == PhasePopulated })
	require.Len(t, dash.Problems, 2)
	assert.Equal(t, "U1-1", dash.Problems[0].Label)
	assert.Equal(t, "untried", dash.Problems[0].LevelLabel)

	prefs.SetLabelFormat(LabelHash)
	hash := waitFor(t, grid, func(s GridState) bool {
		return len(s.Problems) > 0 && s.Problems[0].Label == "U1#1"
	})
	assert.Equal(t, "U1#2", hash.Problems[1].Label)
}

func TestWatchGridMissingUnitDegrades(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	grid := WatchGrid(ctx, svc.Store(), NewPreferences(), 999)
	state := waitFor(t, grid, func(s GridState) bool { return s.Phase == PhaseEmpty })
	assert.Equal(t, "Unit", state.UnitName)
	assert.Nil(t, state.Unit)
	assert.Empty(t, state.Problems)
}

func TestWatchStatsAndMonthNavigation(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.CreateProjectWithUnits(ctx, "P", "U1: 1", true)
	require.NoError(t, err)
	problems, err := svc.Store().Problems.GetAll(ctx, svc.Store().DB())
	require.NoError(t, err)
	require.NoError(t, svc.MarkResult(ctx, problems[0].ID, true))
	require.NoError(t, svc.MarkResult(ctx, problems[0].ID, false))

	view := WatchStats(ctx, svc.Store(), 2024, time.June)

	populated := waitFor(t, view.States(), func(s StatsState) bool {
		return s.Phase == PhasePopulated && s.TotalDone == 2
	})
	assert.Equal(t, 50, populated.Accuracy)
	assert.NotEmpty(t, populated.LastActiveDate)
	// Jun 1 2024 is a Saturday: six placeholders then 30 days
	require.Len(t, populated.CalendarDays, 36)

	view.NextMonth()
	july := waitFor(t, view.States(), func(s StatsState) bool { return s.Month == time.July })
	assert.Equal(t, 2024, july.Year)

	view.PrevMonth()
	view.PrevMonth()
	may := waitFor(t, view.States(), func(s StatsState) bool { return s.Month == time.May })
	assert.Equal(t, 2024, may.Year)
}

func TestLabelFormatParsing(t *testing.T) {
	f, err := ParseLabelFormat("decimal")
	require.NoError(t, err)
	assert.Equal(t, LabelDecimal, f)

	f, err = ParseLabelFormat("")
	require.NoError(t, err)
	assert.Equal(t, LabelUnitDash, f)

	_, err = ParseLabelFormat("bogus")
	assert.Error(t, err)
}
