// Package stats is the aggregation engine: it derives read-only summaries
// (unit and project rollups, calendar activity, accuracy) from full table
// snapshots. Everything here is pure and recomputed in full on every
// relevant change; row counts are bounded by a learner's problem set, so
// correctness wins over incremental cleverness.
package stats

import (
	"github.com/example/studytrack/internal/proficiency"
	"github.com/example/studytrack/pkg/models"
)

// UnitRollup summarises the problems of one unit.
type UnitRollup struct {
	Unit               models.StudyUnit
	TotalProblems      int
	MasteredCount      int
	ProgressPercentage float64
	LevelDistribution  map[int]int
}

// ProjectRollup summarises one project across all of its units.
type ProjectRollup struct {
	Project       models.Project
	UnitCount     int
	TotalProblems int
	MasteredCount int
}

// BuildUnitRollups computes one rollup per unit, preserving unit order.
// Empty units produce a zero progress ratio, never a division by zero.
func BuildUnitRollups(units []models.StudyUnit, problems []models.Problem) []UnitRollup {
	byUnit := make(map[int64][]models.Problem, len(units))
	for _, p := range problems {
		byUnit[p.UnitID] = append(byUnit[p.UnitID], p)
	}

	rollups := make([]UnitRollup, 0, len(units))
	for _, unit := range units {
		unitProblems := byUnit[unit.ID]

		dist := make(map[int]int)
		mastered := 0
		for _, p := range unitProblems {
			dist[p.Level]++
			if proficiency.IsMastered(p) {
				mastered++
			}
		}

		progress := 0.0
		if len(unitProblems) > 0 {
			progress = float64(mastered) / float64(len(unitProblems))
		}

		rollups = append(rollups, UnitRollup{
			Unit:               unit,
			TotalProblems:      len(unitProblems),
			MasteredCount:      mastered,
			ProgressPercentage: progress,
			LevelDistribution:  dist,
		})
	}
	return rollups
}

// BuildProjectRollups computes one rollup per project, preserving project
// order. A problem belongs to a project through its owning unit.
func BuildProjectRollups(projects []models.Project, units []models.StudyUnit, problems []models.Problem) []ProjectRollup {
	unitProject := make(map[int64]int64, len(units))
	unitCount := make(map[int64]int, len(projects))
	for _, u := range units {
		unitProject[u.ID] = u.ProjectID
		unitCount[u.ProjectID]++
	}

	total := make(map[int64]int)
	mastered := make(map[int64]int)
	for _, p := range problems {
		projectID, ok := unitProject[p.UnitID]
		if !ok {
			continue // orphaned problem, omit rather than fail
		}
		total[projectID]++
		if proficiency.IsMastered(p) {
			mastered[projectID]++
		}
	}

	rollups := make([]ProjectRollup, 0, len(projects))
	for _, project := range projects {
		rollups = append(rollups, ProjectRollup{
			Project:       project,
			UnitCount:     unitCount[project.ID],
			TotalProblems: total[project.ID],
			MasteredCount: mastered[project.ID],
		})
	}
	return rollups
}
