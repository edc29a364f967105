package view

import (
	"context"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/stats"
	"github.com/example/studytrack/pkg/models"
)

// Phase is the lifecycle of a screen state: Loading until the first full
// snapshot is assembled, then Populated or Empty on every emission.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePopulated
	PhaseEmpty
)

// HomeState is the complete snapshot behind the home screen: the active
// project, rollups for every project (for the project switcher) and
// rollups for the active project's units.
type HomeState struct {
	Phase         Phase
	ActiveProject *models.Project
	Projects      []stats.ProjectRollup
	Units         []stats.UnitRollup
}

type homeInputs struct {
	active       *models.Project
	haveActive   bool
	projects     []models.Project
	haveProjects bool
	allUnits     []models.StudyUnit
	haveAllUnits bool
	problems     []models.Problem
	haveProblems bool
	units        []models.StudyUnit
	haveUnits    bool
}

func (in homeInputs) complete() bool {
	return in.haveActive && in.haveProjects && in.haveAllUnits && in.haveProblems && in.haveUnits
}

// WatchHome combines the active project, all projects, all units and all
// problems into HomeState snapshots. The active project's units are a
// dependent subscription: whenever the active project changes, the
// previous units subscription is cancelled and a fresh one starts, so an
// abandoned subscription can never deliver another project's units.
func WatchHome(ctx context.Context, store *database.Store) <-chan HomeState {
	out := make(chan HomeState, 1)
	out <- HomeState{Phase: PhaseLoading}

	go func() {
		defer close(out)

		activeCh := store.WatchActiveProject(ctx)
		projectsCh := store.WatchAllProjects(ctx)
		allUnitsCh := store.WatchAllUnits(ctx)
		problemsCh := store.WatchAllProblems(ctx)

		var (
			in          homeInputs
			unitsCh     <-chan []models.StudyUnit
			unitsCancel context.CancelFunc
		)
		defer func() {
			if unitsCancel != nil {
				unitsCancel()
			}
		}()

		resubscribeUnits := func() {
			if unitsCancel != nil {
				unitsCancel()
				unitsCancel = nil
			}
			if in.active == nil {
				// no active project: the home unit list is empty
				unitsCh = nil
				in.units = nil
				in.haveUnits = true
				return
			}
			subCtx, cancel := context.WithCancel(ctx)
			unitsCancel = cancel
			unitsCh = store.WatchUnitsForProject(subCtx, in.active.ID)
			in.haveUnits = false
		}

		emit := func() {
			if !in.complete() {
				return
			}
			state := buildHomeState(in)
			select {
			case <-out:
			default:
			}
			select {
			case out <- state:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case active, ok := <-activeCh:
				if !ok {
					return
				}
				changed := !in.haveActive || activeProjectID(in.active) != activeProjectID(active)
				in.active = active
				in.haveActive = true
				if changed {
					resubscribeUnits()
				}
				emit()

			case projects, ok := <-projectsCh:
				if !ok {
					return
				}
				in.projects = projects
				in.haveProjects = true
				emit()

			case units, ok := <-allUnitsCh:
				if !ok {
					return
				}
				in.allUnits = units
				in.haveAllUnits = true
				emit()

			case problems, ok := <-problemsCh:
				if !ok {
					return
				}
				in.problems = problems
				in.haveProblems = true
				emit()

			case units, ok := <-unitsCh:
				if !ok {
					// cancelled dependent subscription; a new one
					// replaces unitsCh via resubscribeUnits
					unitsCh = nil
					continue
				}
				in.units = units
				in.haveUnits = true
				emit()
			}
		}
	}()

	return out
}

func activeProjectID(p *models.Project) int64 {
	if p == nil {
		return -1
	}
	return p.ID
}

func buildHomeState(in homeInputs) HomeState {
	phase := PhasePopulated
	if in.active == nil {
		phase = PhaseEmpty
	}
	return HomeState{
		Phase:         phase,
		ActiveProject: in.active,
		Projects:      stats.BuildProjectRollups(in.projects, in.allUnits, in.problems),
		Units:         stats.BuildUnitRollups(in.units, in.problems),
	}
}
