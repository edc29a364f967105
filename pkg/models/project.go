package models

// Project is a top-level named problem set, e.g. "Calculus 1000" or a
// chapter workbook. At most one project is active at a time; the home
// view shows the units of the active project.
type Project struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	CreatedAt int64  `json:"created_at" db:"created_at"` // ms since epoch
}
