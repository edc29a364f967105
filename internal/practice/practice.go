// Package practice selects which problems a learner should drill next.
// The ordering favours problems that need work: never-attempted problems
// first, then the hardest non-mastered levels, with mastered problems
// last as optional review.
package practice

import (
	"sort"

	"github.com/example/studytrack/internal/proficiency"
	"github.com/example/studytrack/pkg/models"
)

// Candidate pairs a problem with its owning unit for display. Unit may
// be the zero value when the owning unit row is missing.
type Candidate struct {
	Problem models.Problem
	Unit    models.StudyUnit
}

// NextProblems returns up to limit problems in drill priority order:
//  1. untried problems (level 0)
//  2. non-mastered problems, hardest level first (4 down to 1)
//  3. mastered problems
//
// Ties break by unit sort order, then problem index, keeping sessions
// stable across invocations. A limit <= 0 returns every candidate.
func NextProblems(units []models.StudyUnit, problems []models.Problem, limit int) []Candidate {
	unitByID := make(map[int64]models.StudyUnit, len(units))
	for _, u := range units {
		unitByID[u.ID] = u
	}

	candidates := make([]Candidate, 0, len(problems))
	for _, p := range problems {
		candidates = append(candidates, Candidate{Problem: p, Unit: unitByID[p.UnitID]})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].Problem, candidates[j].Problem

		ri, rj := rank(pi.Level), rank(pj.Level)
		if ri != rj {
			return ri < rj
		}
		if candidates[i].Unit.SortOrder != candidates[j].Unit.SortOrder {
			return candidates[i].Unit.SortOrder < candidates[j].Unit.SortOrder
		}
		if pi.UnitID != pj.UnitID {
			return pi.UnitID < pj.UnitID
		}
		return pi.ProblemIndex < pj.ProblemIndex
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// rank maps a level to its drill priority bucket; lower is sooner.
func rank(level int) int {
	switch {
	case level == proficiency.LevelUntried:
		return 0
	case level == proficiency.LevelMastered:
		return 100
	default:
		// hardest first: level 4 -> 1, level 1 -> 4
		return 1 + proficiency.LevelHardest - level + 1
	}
}
