package models

// Problem is a single trackable exercise inside a unit. ProblemIndex is
// the 1-based position within the unit, assigned sequentially at creation
// and never reused. Level is the proficiency state (0 untried .. 5
// mastered); CorrectCount and WrongCount are cumulative totals.
type Problem struct {
	ID           int64 `json:"id" db:"id"`
	UnitID       int64 `json:"unit_id" db:"unit_id"`
	ProblemIndex int   `json:"problem_index" db:"problem_index"`
	Level        int   `json:"level" db:"level"`
	CorrectCount int   `json:"correct_count" db:"correct_count"`
	WrongCount   int   `json:"wrong_count" db:"wrong_count"`
}
