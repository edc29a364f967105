package models

import "time"

// ActivityLog is one append-only record of a mark-result event. Rows are
// never updated; they are deleted only by the clear-all-data command.
type ActivityLog struct {
	ID        int64 `json:"id" db:"id"`
	Date      int64 `json:"date" db:"date"` // ms since epoch
	ProblemID int64 `json:"problem_id" db:"problem_id"`
	IsCorrect bool  `json:"is_correct" db:"is_correct"`
}

// Time returns the log timestamp as a time.Time in the local zone.
func (l ActivityLog) Time() time.Time {
	return time.UnixMilli(l.Date)
}
