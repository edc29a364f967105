// Package proficiency implements the mastery state machine for problems.
// A problem's level is an integer 0..5: 0 means never attempted, 1-4 are
// increasing difficulty (how recently and badly it was missed), and 5 is
// mastered. Every level transition in the application goes through
// NextLevel; nothing else mutates a problem's level.
package proficiency

import "github.com/example/studytrack/pkg/models"

const (
	// LevelUntried is the initial state of a freshly created problem.
	// It is entry-only: no transition ever returns to it.
	LevelUntried = 0
	// LevelMastered is the terminal "green" state. A correct answer keeps
	// it there; a wrong answer drops back to level 1 (forgot).
	LevelMastered = 5
	// LevelHardest is the worst non-mastered state; wrong answers
	// saturate here instead of growing without bound.
	LevelHardest = 4
)

// NextLevel computes the level a problem moves to after one attempt.
//
// Correct answers at 0, 1 or 5 jump straight to mastered: a first-attempt
// or near-mastery success is rewarded fully. Correct answers at 2-4 heal
// one step toward mastery (floor 1). Wrong answers at 0-3 increase the
// difficulty one step; at 4 they saturate; at 5 they regress to 1, which
// is gentler than a fresh level-4 miss.
//
// Out-of-range input is clamped into 0..5 before the transition, so the
// result is always in 1..5.
func NextLevel(current int, isCorrect bool) int {
	if current < LevelUntried {
		current = LevelUntried
	}
	if current > LevelMastered {
		current = LevelMastered
	}

	if isCorrect {
		switch current {
		case 0, 1, 5:
			return LevelMastered
		default:
			next := current - 1
			if next < 1 {
				next = 1
			}
			return next
		}
	}

	switch current {
	case 0, 5:
		return 1
	case LevelHardest:
		return LevelHardest
	default:
		return current + 1
	}
}

// Apply records one attempt against a problem in place: the level moves
// through NextLevel and the matching cumulative counter is incremented.
// The caller is responsible for persisting the problem together with its
// activity-log row in one transaction.
func Apply(p *models.Problem, isCorrect bool) {
	p.Level = NextLevel(p.Level, isCorrect)
	if isCorrect {
		p.CorrectCount++
	} else {
		p.WrongCount++
	}
}

// IsMastered reports whether the problem is in the mastered state.
func IsMastered(p models.Problem) bool {
	return p.Level == LevelMastered
}

// Label returns a short human-readable name for a level, used by the CLI
// when describing a problem.
func Label(level int) string {
	switch level {
	case 0:
		return "untried"
	case 1:
		return "shaky"
	case 2:
		return "hard"
	case 3:
		return "harder"
	case 4:
		return "hardest"
	case 5:
		return "mastered"
	default:
		return "unknown"
	}
}
