package stats

import (
	"time"

	"github.com/example/studytrack/pkg/models"
)

// ISODate is the day key format used throughout the calendar aggregation.
const ISODate = "2006-01-02"

// CalendarDay is one cell of the month heatmap. A DayOfMonth of zero is a
// blank leading placeholder used to align day 1 to its weekday column.
type CalendarDay struct {
	DayOfMonth int
	Date       string // ISODate, empty for placeholders
	Count      int
}

// ActivityByDay groups activity logs by local calendar day.
func ActivityByDay(logs []models.ActivityLog) map[string]int {
	byDay := make(map[string]int)
	for _, l := range logs {
		byDay[l.Time().Format(ISODate)]++
	}
	return byDay
}

// BuildCalendarMonth produces the cell sequence for one displayed month:
// leading blank placeholders so that day 1 lands in its weekday column
// (Sunday = column 0), then one real cell per day of the month carrying
// its activity count.
func BuildCalendarMonth(year int, month time.Month, activity map[string]int) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]CalendarDay, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, CalendarDay{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format(ISODate)
		cells = append(cells, CalendarDay{
			DayOfMonth: day,
			Date:       date,
			Count:      activity[date],
		})
	}
	return cells
}

// Accuracy returns the global correct percentage over all logs, truncated
// to an integer. Zero when no logs exist.
func Accuracy(logs []models.ActivityLog) int {
	if len(logs) == 0 {
		return 0
	}
	correct := 0
	for _, l := range logs {
		if l.IsCorrect {
			correct++
		}
	}
	return correct * 100 / len(logs)
}

// LastActiveDate returns the local calendar date of the most recent log
// by an explicit max-timestamp scan. Insertion order is deliberately not
// trusted: a clock adjustment can make the tail row older than an earlier
// one. Empty string when no logs exist.
func LastActiveDate(logs []models.ActivityLog) string {
	if len(logs) == 0 {
		return ""
	}
	max := logs[0].Date
	for _, l := range logs[1:] {
		if l.Date > max {
			max = l.Date
		}
	}
	return time.UnixMilli(max).Format(ISODate)
}
