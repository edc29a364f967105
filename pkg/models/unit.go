package models

// StudyUnit is a named subdivision of a project, e.g. "U1" or "Chapter 3".
// ProblemCount is advisory metadata fixed at creation time; the
// authoritative count is the number of problem rows referencing the unit.
type StudyUnit struct {
	ID           int64  `json:"id" db:"id"`
	ProjectID    int64  `json:"project_id" db:"project_id"`
	Name         string `json:"name" db:"name"`
	ProblemCount int    `json:"problem_count" db:"problem_count"`
	SortOrder    int    `json:"sort_order" db:"sort_order"`
}
