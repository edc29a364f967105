package view

import (
	"context"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/proficiency"
	"github.com/example/studytrack/pkg/models"
)

// ProblemCell is one renderable cell of the problem grid.
type ProblemCell struct {
	Problem    models.Problem
	Label      string
	LevelLabel string
}

// GridState is the snapshot behind one unit's problem grid screen.
type GridState struct {
	Phase    Phase
	UnitName string
	Unit     *models.StudyUnit
	Problems []ProblemCell
}

// WatchGrid combines one unit's metadata, its problems and the label
// format preference into GridState snapshots. A unit that no longer
// exists degrades to a generic name and an empty grid rather than an
// error; the read pipeline never fails on a missing join.
func WatchGrid(ctx context.Context, store *database.Store, prefs *Preferences, unitID int64) <-chan GridState {
	out := make(chan GridState, 1)
	out <- GridState{Phase: PhaseLoading}

	go func() {
		defer close(out)

		unitsCh := store.WatchAllUnits(ctx)
		problemsCh := store.WatchProblemsForUnit(ctx, unitID)
		formatCh := prefs.WatchLabelFormat(ctx)

		var (
			units        []models.StudyUnit
			haveUnits    bool
			problems     []models.Problem
			haveProblems bool
			format       LabelFormat
			haveFormat   bool
		)

		emit := func() {
			if !haveUnits || !haveProblems || !haveFormat {
				return
			}
			state := buildGridState(units, problems, format, unitID)
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
			case u, ok := <-unitsCh:
				if !ok {
					return
				}
				units = u
				haveUnits = true
				emit()
			case p, ok := <-problemsCh:
				if !ok {
					return
				}
				problems = p
				haveProblems = true
				emit()
			case f, ok := <-formatCh:
				if !ok {
					return
				}
				format = f
				haveFormat = true
				emit()
			}
		}
	}()

	return out
}

func buildGridState(units []models.StudyUnit, problems []models.Problem, format LabelFormat, unitID int64) GridState {
	var unit *models.StudyUnit
	for i := range units {
		if units[i].ID == unitID {
			unit = &units[i]
			break
		}
	}

	unitName := "Unit"
	if unit != nil {
		unitName = unit.Name
	}

	cells := make([]ProblemCell, len(problems))
	for i, p := range problems {
		cells[i] = ProblemCell{
			Problem:    p,
			Label:      FormatLabel(format, unit, p),
			LevelLabel: proficiency.Label(p.Level),
		}
	}

	phase := PhasePopulated
	if len(cells) == 0 {
		phase = PhaseEmpty
	}
	return GridState{
		Phase:    phase,
		UnitName: unitName,
		Unit:     unit,
		Problems: cells,
	}
}
